// Description: SFTP frontend
// Serves the same user directory and per-user virtual roots as the FTP
// server, over ssh with password authentication.

package sftp

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/pkg/sftp"
	"github.com/telebroad/ftpd/filesystem"
	"github.com/telebroad/ftpd/metrics"
	"github.com/telebroad/ftpd/users"
	"golang.org/x/crypto/ssh"
)

type Server struct {
	Addr             string
	logger           *slog.Logger
	privateKey       []byte
	privateKeySigner ssh.Signer
	listener         net.Listener
	users            users.Users
	closed           bool

	mu       sync.Mutex
	sessions map[net.Conn]*Session
}

// NewSFTPServer creates an SFTP server over the given user directory.
func NewSFTPServer(addr string, users users.Users) *Server {
	return &Server{
		Addr:     addr,
		users:    users,
		sessions: make(map[net.Conn]*Session),
	}
}

// SetPrivateKey sets the host private key for the server.
// if not called the server will generate a new key
func (s *Server) SetPrivateKey(pk []byte) {
	s.privateKey = pk
}

// ListenAndServe accepts ssh connections until the listener closes.
func (s *Server) ListenAndServe() error {
	// Generate a host key if none was configured.
	if s.privateKey == nil {
		pk, _, err := GeneratesED25519Keys()
		if err != nil {
			return fmt.Errorf("error generating host key: %w", err)
		}
		s.privateKey = pk
	}

	signer, err := ssh.ParsePrivateKey(s.privateKey)
	if err != nil {
		return fmt.Errorf("error parsing private key: %w", err)
	}
	s.privateKeySigner = signer

	listener, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener
	s.Logger().Info("listening", "addr", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.closed || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.Logger().Error("failed to accept incoming connection", "error", err)
			continue
		}
		go s.sshHandler(conn)
	}
}

// TryListenAndServe tries to start the SFTP server, if there isn't an error after a certain time it returns nil
func (s *Server) TryListenAndServe(d time.Duration) error {
	errC := make(chan error)

	go func() {
		if err := s.ListenAndServe(); err != nil {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return err
	case <-time.After(d):
		return nil
	}
}

// Close closes the listener and every live connection.
func (s *Server) Close() {
	s.closed = true
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.sessions {
		conn.Close()
		delete(s.sessions, conn)
	}
}

// SetLogger sets the logger for the server.
func (s *Server) SetLogger(l *slog.Logger) {
	s.logger = l
}

// Logger returns the logger for the server.
func (s *Server) Logger() *slog.Logger {
	if s.logger == nil {
		s.logger = slog.Default().With("module", "sftp-server")
	}
	return s.logger
}

func (s *Server) addSession(conn net.Conn, session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[conn] = session
}

func (s *Server) removeSession(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, conn)
}

func (s *Server) getSession(conn net.Conn) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[conn]
	return session, ok
}

// authHandler is called by the ssh server when a client attempts password
// authentication. On success the session gets its user's virtual root.
func (s *Server) authHandler(conn net.Conn) func(m ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
	return func(m ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
		session, ok := s.getSession(conn)
		if !ok {
			return nil, fmt.Errorf("session not found")
		}
		user, err := s.users.Find(m.User(), string(password))
		if err != nil {
			metrics.AuthTotal.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("password rejected for %q", m.User())
		}
		metrics.AuthTotal.WithLabelValues("ok").Inc()
		session.logger = session.logger.With("user", user.Username)
		session.fs = filesystem.NewLocalFS(user.RootDir)
		return nil, nil
	}
}

func (s *Server) sshHandler(conn net.Conn) {
	defer conn.Close()
	metrics.ConnectionsTotal.WithLabelValues("sftp").Inc()

	session := &Session{logger: s.Logger().With("remote", conn.RemoteAddr().String())}
	s.addSession(conn, session)
	defer s.removeSession(conn)

	sshCfg := &ssh.ServerConfig{
		PasswordCallback: s.authHandler(conn),
	}
	sshCfg.AddHostKey(s.privateKeySigner)

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, sshCfg)
	if err != nil {
		s.Logger().Debug("failed to handshake", "error", err)
		return
	}
	defer sshConn.Close()

	session.logger.Debug(
		"new ssh connection",
		"ClientVersion", string(sshConn.ClientVersion()),
		"ssh-User", sshConn.User(),
	)

	// The incoming Request channel must be serviced.
	go ssh.DiscardRequests(reqs)

	for newChannel := range chans {
		// An SFTP client opens exactly one "session" channel and asks for
		// the sftp subsystem on it.
		if newChannel.ChannelType() != "session" {
			newChannel.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}

		channel, requests, err := newChannel.Accept()
		if err != nil {
			s.Logger().Error("could not accept channel", "error", err)
			return
		}

		go s.subsystemHandler(requests)

		server := sftp.NewRequestServer(channel, session.handlers())
		if err := server.Serve(); err == io.EOF {
			server.Close()
			session.logger.Debug("sftp client exited session")
		} else if err != nil {
			s.Logger().Error("sftp server completed with error", "error", err)
		}
	}
}

// subsystemHandler accepts only the sftp subsystem request.
func (s *Server) subsystemHandler(in <-chan *ssh.Request) {
	for req := range in {
		ok := req.Type == "subsystem" && len(req.Payload) > 4 && string(req.Payload[4:]) == "sftp"
		if err := req.Reply(ok, nil); err != nil {
			return
		}
	}
}
