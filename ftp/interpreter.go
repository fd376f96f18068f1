package ftp

import (
	"errors"
	"io"
	"io/fs"
	"net"

	"github.com/telebroad/ftpd/filesystem"
	"github.com/telebroad/ftpd/metrics"
	"github.com/telebroad/ftpd/tools"
)

// handleConnection runs the protocol interpreter for one control
// connection: greeting, then a strict read-dispatch-reply loop until QUIT
// or a transport failure.
func (srv *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	metrics.ConnectionsTotal.WithLabelValues("ftp").Inc()

	logger := srv.Logger().With("remote", conn.RemoteAddr().String())
	dataAddr, err := HostPortFromAddr(conn.RemoteAddr())
	if err != nil {
		// Only IPv4 control peers can ever open a data channel.
		logger.Warn("rejecting non-IPv4 control connection", "error", err)
		return
	}

	session := &Session{
		ftpServer:  srv,
		conn:       conn,
		logger:     logger,
		workingDir: "/",
		dataAddr:   dataAddr,
	}
	session.ctrl = newCRLFConn(conn, tools.NewLogReadWriter(conn, logger), srv.ControlTimeout)

	id := conn.RemoteAddr().String()
	srv.sessions.Add(id, session)
	defer srv.sessions.Remove(id)
	defer session.closeDataListener()

	logger.Info("new control connection")
	if session.sendReply(ReplyServiceReady) != nil {
		return
	}

	for !session.hasQuit {
		line, err := session.ctrl.ReadMessage()
		if err != nil {
			// Length and encoding violations are recoverable syntax
			// errors; anything else ends the session.
			if errors.Is(err, ErrLineTooLong) || errors.Is(err, ErrBadEncoding) {
				logger.Debug("unreadable command line", "error", err)
				if session.sendReply(ReplySyntaxError) != nil {
					return
				}
				continue
			}
			if !errors.Is(err, io.EOF) {
				logger.Debug("control channel error", "error", err)
			}
			return
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			logger.Debug("could not parse command", "line", line, "error", err)
			if session.sendReply(parseErrorReply(err)) != nil {
				return
			}
			continue
		}
		metrics.CommandsTotal.WithLabelValues(string(cmd.Verb)).Inc()

		reply := session.dispatch(cmd)
		if session.sendReply(reply) != nil {
			return
		}
	}
	logger.Info("session closed")
}

func (s *Session) sendReply(r Reply) error {
	return s.ctrl.SendMessage(r.String())
}

// parseErrorReply maps a parse failure class to its reply. A malformed
// host-port is a parameter syntax error (501), unlike the other malformed
// arguments (504).
func parseErrorReply(err error) Reply {
	switch {
	case errors.Is(err, ErrArgMissing):
		return ReplySyntaxErrorArg
	case errors.Is(err, ErrBadHostPort):
		return ReplySyntaxErrorArg
	case errors.Is(err, ErrBadArg):
		return ReplyBadParameter
	default:
		return ReplySyntaxError
	}
}

// errorReply converts an operation error to its control-channel reply at
// the dispatch boundary.
func errorReply(err error) Reply {
	switch {
	case errors.Is(err, filesystem.ErrInvalidPath):
		return ReplySyntaxErrorArg
	case errors.Is(err, errTransferAborted):
		return ReplyConnectionClosed
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ReplyFileUnavailable
	case errors.Is(err, fs.ErrExist):
		return ReplyFileNameNotAllowed
	default:
		return ReplyLocalProcessingError
	}
}

// dispatch executes one command and produces its terminal reply. Data
// commands additionally emit the 150 intermediate reply once their data
// channel is up.
func (s *Session) dispatch(cmd Command) Reply {
	switch cmd.Verb {
	case USER:
		return s.userCommand(cmd.Arg)
	case PASS:
		return s.passCommand(cmd.Arg)
	case QUIT:
		s.hasQuit = true
		return ReplyServiceClosing
	case PORT:
		s.dataAddr = cmd.Addr
		return ReplyCommandOk
	case TYPE, STRU, MODE:
		// Accepted and ignored: transfers always move raw bytes in
		// stream mode over file structure.
		return ReplyCommandOk
	case NOOP:
		return ReplyCommandOk
	case PASV:
		return s.pasvCommand()
	case RETR:
		return s.retrCommand(cmd.Arg)
	case STOR:
		return s.storCommand(cmd.Arg)
	case NLST, LIST:
		return s.listCommand(cmd.Arg)
	case PWD:
		return s.pwdCommand()
	case CWD:
		return s.cwdCommand(cmd.Arg)
	case CDUP:
		return s.cdupCommand()
	case MKD:
		return s.mkdCommand(cmd.Arg)
	case DELE:
		return s.deleCommand(cmd.Arg)
	case RNFR:
		return s.rnfrCommand(cmd.Arg)
	case RNTO:
		return s.rntoCommand(cmd.Arg)
	default:
		// Recognized RFC 959 verb with no implementation here.
		return ReplyNotImplemented
	}
}

// userCommand records the username and re-opens authentication; any prior
// login is dropped.
func (s *Session) userCommand(name string) Reply {
	s.username = name
	s.isAuthenticated = false
	s.userInfo = nil
	s.fs = nil
	s.workingDir = "/"
	return ReplyUsernameOk
}

func (s *Session) passCommand(password string) Reply {
	if s.username == "" {
		return ReplyBadCommandSequence
	}
	user, err := s.ftpServer.users.Find(s.username, password)
	if err != nil {
		metrics.AuthTotal.WithLabelValues("failed").Inc()
		s.logger.Warn("authentication failed", "user", s.username)
		return ReplyNotLoggedIn
	}
	metrics.AuthTotal.WithLabelValues("ok").Inc()
	s.userInfo = user
	s.isAuthenticated = true
	s.fs = filesystem.NewLocalFS(user.RootDir)
	s.workingDir = "/"
	s.logger = s.logger.With("user", user.Username)
	s.logger.Info("user logged in")
	return ReplyUserLoggedIn
}

func (s *Session) pasvCommand() Reply {
	if !s.isAuthenticated {
		return ReplyNotLoggedIn
	}
	hp, err := s.makePassive()
	if err != nil {
		s.logger.Error("could not enter passive mode", "error", err)
		return ReplyCantOpenDataConnection
	}
	return ReplyEnteringPassiveMode(hp)
}

// runDataCommand opens the data channel, announces it with 150, runs the
// transfer and produces the terminal reply. The passive listener is
// consumed whatever the outcome.
func (s *Session) runDataCommand(transfer func(net.Conn) error) Reply {
	defer s.closeDataListener()

	dataConn, err := s.openDataConn()
	if err != nil {
		metrics.DataConnFailures.Inc()
		s.logger.Warn("could not open data connection", "error", err)
		return ReplyCantOpenDataConnection
	}
	defer dataConn.Close()

	if s.sendReply(ReplyOpeningDataConnection) != nil {
		return ReplyLocalProcessingError
	}
	if err := transfer(dataConn); err != nil {
		s.logger.Warn("data transfer failed", "error", err)
		return errorReply(err)
	}
	return ReplyClosingDataConnection
}

func (s *Session) retrCommand(arg string) Reply {
	if !s.isAuthenticated {
		return ReplyNotLoggedIn
	}
	p, err := s.fs.Resolve(s.workingDir, arg)
	if err != nil {
		return errorReply(err)
	}
	return s.runDataCommand(func(dataConn net.Conn) error {
		return s.sendFile(dataConn, p)
	})
}

func (s *Session) storCommand(arg string) Reply {
	if !s.isAuthenticated {
		return ReplyNotLoggedIn
	}
	p, err := s.fs.Resolve(s.workingDir, arg)
	if err != nil {
		return errorReply(err)
	}
	return s.runDataCommand(func(dataConn net.Conn) error {
		return s.receiveFile(dataConn, p)
	})
}

// listCommand serves NLST and LIST; with no argument it lists the current
// directory.
func (s *Session) listCommand(arg string) Reply {
	if !s.isAuthenticated {
		return ReplyNotLoggedIn
	}
	var p filesystem.Path
	var err error
	if arg == "" {
		p, err = s.fs.Locate(s.workingDir)
	} else {
		p, err = s.fs.Resolve(s.workingDir, arg)
	}
	if err != nil {
		return errorReply(err)
	}
	return s.runDataCommand(func(dataConn net.Conn) error {
		return s.sendNameList(dataConn, p)
	})
}

// pwdCommand reports the virtual working directory. RFC 959 gives PWD no
// 530 reply, so an unauthenticated PWD answers 550 instead.
func (s *Session) pwdCommand() Reply {
	if !s.isAuthenticated {
		return ReplyFileUnavailable
	}
	return ReplyCreated(s.workingDir)
}

func (s *Session) cwdCommand(arg string) Reply {
	if !s.isAuthenticated {
		return ReplyNotLoggedIn
	}
	p, err := s.fs.Resolve(s.workingDir, arg)
	if err != nil {
		return errorReply(err)
	}
	if err := s.fs.CheckDir(p); err != nil {
		return errorReply(err)
	}
	s.workingDir = p.Virtual
	return ReplyFileActionOk
}

func (s *Session) cdupCommand() Reply {
	if !s.isAuthenticated {
		return ReplyNotLoggedIn
	}
	p, err := s.fs.Resolve(s.workingDir, "..")
	if err != nil {
		return errorReply(err)
	}
	if err := s.fs.CheckDir(p); err != nil {
		return errorReply(err)
	}
	s.workingDir = p.Virtual
	return ReplyCommandOk
}

func (s *Session) mkdCommand(arg string) Reply {
	if !s.isAuthenticated {
		return ReplyNotLoggedIn
	}
	p, err := s.fs.Resolve(s.workingDir, arg)
	if err != nil {
		return errorReply(err)
	}
	if err := s.fs.MakeDir(p); err != nil {
		return errorReply(err)
	}
	return ReplyCreated(arg)
}

func (s *Session) deleCommand(arg string) Reply {
	if !s.isAuthenticated {
		return ReplyNotLoggedIn
	}
	p, err := s.fs.Resolve(s.workingDir, arg)
	if err != nil {
		return errorReply(err)
	}
	if err := s.fs.Remove(p); err != nil {
		return errorReply(err)
	}
	return ReplyFileActionOk
}

func (s *Session) rnfrCommand(arg string) Reply {
	if !s.isAuthenticated {
		return ReplyNotLoggedIn
	}
	p, err := s.fs.Resolve(s.workingDir, arg)
	if err != nil {
		return errorReply(err)
	}
	if _, err := s.fs.Stat(p); err != nil {
		return errorReply(err)
	}
	s.renameFrom = p
	return ReplyPendingFurtherInformation
}

// rntoCommand finishes a rename. The pending source is consumed whether or
// not the rename succeeds.
func (s *Session) rntoCommand(arg string) Reply {
	if !s.isAuthenticated {
		return ReplyNotLoggedIn
	}
	if s.renameFrom.Real == "" {
		return ReplyBadCommandSequence
	}
	from := s.renameFrom
	s.renameFrom = filesystem.Path{}
	to, err := s.fs.Resolve(s.workingDir, arg)
	if err != nil {
		return errorReply(err)
	}
	if err := s.fs.Rename(from, to); err != nil {
		return errorReply(err)
	}
	return ReplyFileActionOk
}
