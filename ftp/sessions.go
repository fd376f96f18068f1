package ftp

import (
	"log/slog"
	"net"
	"sync"

	"github.com/telebroad/ftpd/filesystem"
	"github.com/telebroad/ftpd/users"
)

// Session represents an individual client FTP session.
type Session struct {
	ftpServer *Server   // The server the session belongs to
	conn      net.Conn  // The control connection to the client
	ctrl      *crlfConn // CRLF framing over the control connection
	logger    *slog.Logger

	username        string              // Last name given to USER
	userInfo        *users.User         // Authenticated user
	isAuthenticated bool                // Authentication status
	fs              *filesystem.LocalFS // Virtual root, set at login
	workingDir      string              // Virtual working directory, "/" at login

	dataAddr     HostPort        // Peer data endpoint; control peer until PORT
	passiveMode  bool            // PASV switches to passive; default is active
	dataListener net.Listener    // Passive listener, one data command's worth
	renameFrom   filesystem.Path // Armed by RNFR, consumed by RNTO
	hasQuit      bool
}

// closeDataListener drops the passive listener, if any.
func (s *Session) closeDataListener() {
	if s.dataListener != nil {
		s.dataListener.Close()
		s.dataListener = nil
	}
}

// Close shuts both channels of the session.
func (s *Session) Close() {
	s.closeDataListener()
	s.conn.Close()
}

// SessionManager tracks all active sessions so the server can close them.
type SessionManager struct {
	sessions map[string]*Session // Map of active sessions
	lock     sync.RWMutex        // Protects the sessions map
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

// Add adds a new session for the client.
func (manager *SessionManager) Add(id string, session *Session) {
	manager.lock.Lock()
	defer manager.lock.Unlock()
	manager.sessions[id] = session
}

// Get retrieves a session by its ID.
func (manager *SessionManager) Get(id string) (*Session, bool) {
	manager.lock.RLock()
	defer manager.lock.RUnlock()
	session, exists := manager.sessions[id]
	return session, exists
}

// Remove removes a session by its ID.
func (manager *SessionManager) Remove(id string) {
	manager.lock.Lock()
	defer manager.lock.Unlock()
	delete(manager.sessions, id)
}

// CloseAll closes every tracked session.
func (manager *SessionManager) CloseAll() {
	manager.lock.Lock()
	defer manager.lock.Unlock()
	for id, session := range manager.sessions {
		session.Close()
		delete(manager.sessions, id)
	}
}
