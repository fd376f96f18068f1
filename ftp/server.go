package ftp

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/telebroad/ftpd/users"
)

const (
	// DefaultControlTimeout bounds one control-channel read or write.
	DefaultControlTimeout = 60 * time.Second
	// DefaultDataTimeout bounds the passive accept and the active dial.
	DefaultDataTimeout = 180 * time.Second
)

// Server is the FTP control-connection frontend: it owns the listening
// socket and starts one protocol interpreter per accepted connection.
type Server struct {
	// Addr is the TCP address to listen on, in the form "host:port".
	Addr string

	// ControlTimeout is the idle timeout of the control channel.
	ControlTimeout time.Duration
	// DataTimeout bounds establishing one data connection.
	DataTimeout time.Duration

	listener net.Listener
	users    users.Users
	sessions *SessionManager
	logger   *slog.Logger
	closed   bool
}

// NewServer creates an FTP server serving the given user directory.
func NewServer(addr string, users users.Users) (*Server, error) {
	if users == nil {
		return nil, fmt.Errorf("ftp server needs a user directory")
	}
	return &Server{
		Addr:           addr,
		ControlTimeout: DefaultControlTimeout,
		DataTimeout:    DefaultDataTimeout,
		users:          users,
		sessions:       NewSessionManager(),
	}, nil
}

// SetLogger sets the logger for the server.
func (srv *Server) SetLogger(l *slog.Logger) {
	srv.logger = l
}

// Logger returns the logger for the server.
func (srv *Server) Logger() *slog.Logger {
	if srv.logger == nil {
		srv.logger = slog.Default().With("module", "ftp-server")
	}
	return srv.logger
}

// LocalAddr returns the bound control address, nil before Listen.
func (srv *Server) LocalAddr() net.Addr {
	if srv.listener == nil {
		return nil
	}
	return srv.listener.Addr()
}

// Listen binds the control socket.
func (srv *Server) Listen() error {
	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}
	srv.listener = listener
	srv.Logger().Info("listening", "addr", listener.Addr().String())
	return nil
}

// Serve accepts control connections until the listener closes. Each
// connection gets its own interpreter goroutine; a failed session never
// stops the accept loop.
func (srv *Server) Serve() error {
	for {
		conn, err := srv.listener.Accept()
		if err != nil {
			if srv.closed || errors.Is(err, net.ErrClosed) {
				return nil
			}
			srv.Logger().Error("error accepting connection", "error", err)
			continue
		}
		go srv.handleConnection(conn)
	}
}

// ListenAndServe binds the control socket and serves it.
func (srv *Server) ListenAndServe() error {
	if err := srv.Listen(); err != nil {
		return err
	}
	return srv.Serve()
}

// TryListenAndServe starts the server and returns nil if it is still
// serving after d, otherwise the startup error.
func (srv *Server) TryListenAndServe(d time.Duration) (err error) {
	errC := make(chan error)

	go func() {
		err := srv.ListenAndServe()
		if err != nil {
			errC <- err
		}
	}()

	select {
	case err = <-errC:
		return err
	case <-time.After(d):
		return nil
	}
}

// Close stops the accept loop and closes every active session.
func (srv *Server) Close(reason error) {
	srv.Logger().Info("closing ftp server", "reason", reason)
	srv.closed = true
	if srv.listener != nil {
		srv.listener.Close()
	}
	srv.sessions.CloseAll()
}
