package ftp

import "fmt"

// Reply is one control-channel response: a three-digit status code and its
// human-readable text. The wire form is "<code> <text>" followed by CRLF,
// which the framer appends.
type Reply struct {
	Code StatusCode
	Text string
}

func (r Reply) String() string {
	return fmt.Sprintf("%d %s", r.Code, r.Text)
}

var (
	ReplyOpeningDataConnection = Reply{StatusFileStatusOK, "Opening data connection"}

	ReplyCommandOk             = Reply{StatusCommandOK, "Command okay"}
	ReplyCommandNotImplemented = Reply{StatusCommandNotImplementedHere, "Command not implemented, superfluous at this site"}
	ReplyDirectoryStatus       = Reply{StatusDirectoryStatus, "Directory status"}
	ReplyServiceReady          = Reply{StatusServiceReadyForNewUser, "Service ready for new user"}
	ReplyServiceClosing        = Reply{StatusServiceClosingControlConnection, "Service closing control connection"}
	ReplyDataConnectionOpen    = Reply{StatusDataConnectionOpen, "Data connection open; no transfer in progress"}
	ReplyClosingDataConnection = Reply{StatusClosingDataConnection, "Closing data connection. Requested file action successful"}
	ReplyUserLoggedIn          = Reply{StatusUserLoggedIn, "User logged in, proceed"}
	ReplyFileActionOk          = Reply{StatusFileActionOK, "Requested file action okay, proceed"}

	ReplyUsernameOk                = Reply{StatusUsernameOK, "User name okay, need password"}
	ReplyPendingFurtherInformation = Reply{StatusFileActionPending, "Requested file action pending further information"}

	ReplyServiceNotAvailable      = Reply{StatusServiceNotAvailable, "Service not available, closing control connection"}
	ReplyCantOpenDataConnection   = Reply{StatusCantOpenDataConnection, "Can't open data connection"}
	ReplyConnectionClosed         = Reply{StatusConnectionClosedTransferAborted, "Connection closed; transfer aborted"}
	ReplyFileActionNotTaken       = Reply{StatusRequestedFileActionNotTaken, "Requested file action not taken. File unavailable"}
	ReplyLocalProcessingError     = Reply{StatusLocalProcessingError, "Requested action aborted: local error in processing"}
	ReplyInsufficientStorageSpace = Reply{StatusInsufficientStorage, "Requested action not taken. Insufficient storage space in system"}

	ReplySyntaxError               = Reply{StatusSyntaxError, "Syntax error, command unrecognized"}
	ReplySyntaxErrorArg            = Reply{StatusSyntaxErrorInParameters, "Syntax error in parameters or arguments"}
	ReplyNotImplemented            = Reply{StatusCommandNotImplemented, "Command not implemented"}
	ReplyBadCommandSequence        = Reply{StatusBadSequenceOfCommands, "Bad sequence of commands"}
	ReplyBadParameter              = Reply{StatusCommandNotImplementedForParam, "Command not implemented for that parameter"}
	ReplyNotLoggedIn               = Reply{StatusNotLoggedIn, "Not logged in"}
	ReplyNeedAccountForStoring     = Reply{StatusNeedAccountForStoringFiles, "Need account for storing files"}
	ReplyFileUnavailable           = Reply{StatusFileUnavailable, "Requested action not taken. File unavailable"}
	ReplyPageTypeUnknown           = Reply{StatusPageTypeUnknown, "Requested action aborted: page type unknown"}
	ReplyExceededStorageAllocation = Reply{StatusExceededStorageAllocation, "Requested file action aborted. Exceeded storage allocation"}
	ReplyFileNameNotAllowed        = Reply{StatusFileNameNotAllowed, "Requested action not taken. File name not allowed"}
)

// ReplyEnteringPassiveMode renders the 227 reply with the listener endpoint
// in the h1,h2,h3,h4,p1,p2 form.
func ReplyEnteringPassiveMode(hp HostPort) Reply {
	return Reply{StatusEnteringPassiveMode, fmt.Sprintf("Entering passive mode (%s)", hp)}
}

// ReplyCreated renders the 257 reply with the pathname in double quotes.
func ReplyCreated(pathname string) Reply {
	return Reply{StatusPathnameCreated, fmt.Sprintf("\"%s\" created", pathname)}
}
