package ftp

import (
	"net"
	"regexp"
	"testing"
)

func TestReplyRendering(t *testing.T) {
	reply := ReplyCommandOk
	if reply.String() != "200 Command okay" {
		t.Errorf("String() = %q", reply.String())
	}
	reply = ReplyEnteringPassiveMode(HostPort{IP: net.IPv4(127, 0, 0, 1), Port: 8888})
	if reply.String() != "227 Entering passive mode (127,0,0,1,34,184)" {
		t.Errorf("String() = %q", reply.String())
	}
	reply = ReplyCreated("very-important-directory")
	if reply.String() != "257 \"very-important-directory\" created" {
		t.Errorf("String() = %q", reply.String())
	}
}

func TestReplyCatalog(t *testing.T) {
	tests := []struct {
		reply Reply
		want  string
	}{
		{ReplyOpeningDataConnection, "150 Opening data connection"},
		{ReplyServiceReady, "220 Service ready for new user"},
		{ReplyServiceClosing, "221 Service closing control connection"},
		{ReplyClosingDataConnection, "226 Closing data connection. Requested file action successful"},
		{ReplyUserLoggedIn, "230 User logged in, proceed"},
		{ReplyFileActionOk, "250 Requested file action okay, proceed"},
		{ReplyUsernameOk, "331 User name okay, need password"},
		{ReplyPendingFurtherInformation, "350 Requested file action pending further information"},
		{ReplyCantOpenDataConnection, "425 Can't open data connection"},
		{ReplyConnectionClosed, "426 Connection closed; transfer aborted"},
		{ReplySyntaxError, "500 Syntax error, command unrecognized"},
		{ReplySyntaxErrorArg, "501 Syntax error in parameters or arguments"},
		{ReplyNotImplemented, "502 Command not implemented"},
		{ReplyBadCommandSequence, "503 Bad sequence of commands"},
		{ReplyBadParameter, "504 Command not implemented for that parameter"},
		{ReplyNotLoggedIn, "530 Not logged in"},
		{ReplyFileUnavailable, "550 Requested action not taken. File unavailable"},
	}
	for _, tt := range tests {
		if got := tt.reply.String(); got != tt.want {
			t.Errorf("reply %d = %q, want %q", tt.reply.Code, got, tt.want)
		}
	}
}

// Every reply must render as a three-digit code, one space and a non-empty
// single-line text.
func TestReplyWireShape(t *testing.T) {
	wire := regexp.MustCompile(`^\d{3} [^\r\n]+$`)
	replies := []Reply{
		ReplyOpeningDataConnection, ReplyCommandOk, ReplyCommandNotImplemented,
		ReplyDirectoryStatus, ReplyServiceReady, ReplyServiceClosing,
		ReplyDataConnectionOpen, ReplyClosingDataConnection, ReplyUserLoggedIn,
		ReplyFileActionOk, ReplyUsernameOk, ReplyPendingFurtherInformation,
		ReplyServiceNotAvailable, ReplyCantOpenDataConnection,
		ReplyConnectionClosed, ReplyFileActionNotTaken,
		ReplyLocalProcessingError, ReplyInsufficientStorageSpace,
		ReplySyntaxError, ReplySyntaxErrorArg, ReplyNotImplemented,
		ReplyBadCommandSequence, ReplyBadParameter, ReplyNotLoggedIn,
		ReplyNeedAccountForStoring, ReplyFileUnavailable,
		ReplyPageTypeUnknown, ReplyExceededStorageAllocation,
		ReplyFileNameNotAllowed,
		ReplyEnteringPassiveMode(HostPort{IP: net.IPv4(10, 1, 2, 3), Port: 1024}),
		ReplyCreated("/"),
	}
	for _, r := range replies {
		if !wire.MatchString(r.String()) {
			t.Errorf("reply %q does not match the wire shape", r.String())
		}
	}
}
