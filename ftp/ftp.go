// Description: FTP package
// This package contains the FTP server implementation: the control-channel
// protocol interpreter, the data-transfer engine and the reply catalog.

package ftp

// StatusCode is a type for FTP status codes
type StatusCode = int

const (
	// Informational codes (1xx)
	StatusFileStatusOK StatusCode = 150 // File status okay; about to open data connection

	// Success codes (2xx)
	StatusCommandOK                       StatusCode = 200 // Command okay
	StatusCommandNotImplementedHere       StatusCode = 202 // Command not implemented, superfluous at this site
	StatusDirectoryStatus                 StatusCode = 212 // Directory status
	StatusServiceReadyForNewUser          StatusCode = 220 // Service ready for new user
	StatusServiceClosingControlConnection StatusCode = 221 // Service closing control connection
	StatusDataConnectionOpen              StatusCode = 225 // Data connection open; no transfer in progress
	StatusClosingDataConnection           StatusCode = 226 // Closing data connection; requested file action successful
	StatusEnteringPassiveMode             StatusCode = 227 // Entering Passive Mode (h1,h2,h3,h4,p1,p2)
	StatusUserLoggedIn                    StatusCode = 230 // User logged in, proceed
	StatusFileActionOK                    StatusCode = 250 // Requested file action okay, completed
	StatusPathnameCreated                 StatusCode = 257 // "PATHNAME" created

	// Intermediate codes (3xx)
	StatusUsernameOK        StatusCode = 331 // User name okay, need password
	StatusFileActionPending StatusCode = 350 // Requested file action pending further information

	// Transient Negative Completion codes (4xx)
	StatusServiceNotAvailable             StatusCode = 421 // Service not available, closing control connection
	StatusCantOpenDataConnection          StatusCode = 425 // Can't open data connection
	StatusConnectionClosedTransferAborted StatusCode = 426 // Connection closed; transfer aborted
	StatusRequestedFileActionNotTaken     StatusCode = 450 // Requested file action not taken
	StatusLocalProcessingError            StatusCode = 451 // Requested action aborted: local error in processing
	StatusInsufficientStorage             StatusCode = 452 // Requested action not taken; insufficient storage space

	// Permanent Negative Completion codes (5xx)
	StatusSyntaxError                   StatusCode = 500 // Syntax error, command unrecognized
	StatusSyntaxErrorInParameters       StatusCode = 501 // Syntax error in parameters or arguments
	StatusCommandNotImplemented         StatusCode = 502 // Command not implemented
	StatusBadSequenceOfCommands         StatusCode = 503 // Bad sequence of commands
	StatusCommandNotImplementedForParam StatusCode = 504 // Command not implemented for that parameter
	StatusNotLoggedIn                   StatusCode = 530 // Not logged in
	StatusNeedAccountForStoringFiles    StatusCode = 532 // Need account for storing files
	StatusFileUnavailable               StatusCode = 550 // Requested action not taken; File unavailable
	StatusPageTypeUnknown               StatusCode = 551 // Requested action aborted: page type unknown
	StatusExceededStorageAllocation     StatusCode = 552 // Requested file action aborted; exceeded storage allocation
	StatusFileNameNotAllowed            StatusCode = 553 // Requested action not taken; file name not allowed
)

// Verb is a recognized FTP command token.
type Verb string

const (
	// Authentication and User Commands
	USER Verb = "USER" // Send username
	PASS Verb = "PASS" // Send password
	ACCT Verb = "ACCT" // Send account information (rarely used)

	// Transfer Parameter Commands
	TYPE Verb = "TYPE" // Set data transfer type (ASCII/Binary)
	MODE Verb = "MODE" // Set data transfer mode (Stream/Block/Compressed)
	STRU Verb = "STRU" // Set file structure (File/Record/Page)
	PORT Verb = "PORT" // Announce the client data endpoint
	PASV Verb = "PASV" // Switch to passive mode

	// FTP Service Commands
	RETR Verb = "RETR" // Retrieve a file
	STOR Verb = "STOR" // Store a file
	STOU Verb = "STOU" // Store a file with a unique name
	APPE Verb = "APPE" // Append to a file
	ALLO Verb = "ALLO" // Allocate storage (often unused)
	REST Verb = "REST" // Restart an interrupted transfer
	RNFR Verb = "RNFR" // Rename from (start the rename process)
	RNTO Verb = "RNTO" // Rename to   (finish the rename process)
	ABOR Verb = "ABOR" // Abort an active transfer
	DELE Verb = "DELE" // Delete a file
	CWD  Verb = "CWD"  // Change working directory
	CDUP Verb = "CDUP" // Change to parent directory
	SMNT Verb = "SMNT" // Structure mount
	REIN Verb = "REIN" // Reinitialize
	MKD  Verb = "MKD"  // Make directory
	RMD  Verb = "RMD"  // Remove directory

	// Informational Commands
	PWD  Verb = "PWD"  // Print working directory
	LIST Verb = "LIST" // List directory contents
	NLST Verb = "NLST" // Get concise list of filenames
	SITE Verb = "SITE" // Send site-specific commands (varies between servers)
	SYST Verb = "SYST" // Get operating system type
	STAT Verb = "STAT" // Get server status
	HELP Verb = "HELP" // Get help

	// Miscellaneous
	NOOP Verb = "NOOP" // No operation (often used to keep connections alive)
	QUIT Verb = "QUIT" // Disconnect from the server
)

// verbs holds every token the parser recognizes. Tokens outside this table
// are syntax errors; tokens inside it that the dispatcher does not handle
// answer 502.
var verbs = map[Verb]bool{
	USER: true, PASS: true, ACCT: true,
	TYPE: true, MODE: true, STRU: true, PORT: true, PASV: true,
	RETR: true, STOR: true, STOU: true, APPE: true, ALLO: true,
	REST: true, RNFR: true, RNTO: true, ABOR: true, DELE: true,
	CWD: true, CDUP: true, SMNT: true, REIN: true, MKD: true, RMD: true,
	PWD: true, LIST: true, NLST: true, SITE: true, SYST: true,
	STAT: true, HELP: true,
	NOOP: true, QUIT: true,
}
