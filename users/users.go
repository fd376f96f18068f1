// Description: user directory for the ftp and sftp servers
// The store maps a username to its password and the real directory the
// session sees as "/". Passwords are compared as opaque strings.

package users

import (
	"errors"
	"fmt"
	"sync"
)

type User struct {
	Username string
	Password string
	// RootDir is the real directory presented to the session as "/".
	RootDir string
}

// ErrNotFound is returned when a username is not in the store.
var ErrNotFound = errors.New("user not found")

type Users interface {
	List() (map[string]*User, error)
	// Get finds a user by username
	Get(username string) (*User, error)
	// Find returns the user only when username and password both match
	Find(username, password string) (*User, error)
}

var _ Users = &LocalUsers{}

type LocalUsers struct {
	users map[string]*User
	mu    sync.RWMutex
}

func (u *LocalUsers) List() (map[string]*User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.users, nil
}

func (u *LocalUsers) Get(username string) (*User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	user, ok := u.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

// Find returns a user by username and password, if the user is not found or
// the password does not match it returns an error
func (u *LocalUsers) Find(username, password string) (*User, error) {
	user, err := u.Get(username)
	if err != nil {
		return nil, err
	}
	if user.Password != password {
		return nil, fmt.Errorf("password is incorrect")
	}
	return user, nil
}

// Add adds a new user rooted at rootDir
func (u *LocalUsers) Add(username, password, rootDir string) *User {
	u.mu.Lock()
	defer u.mu.Unlock()

	newUser := &User{
		Username: username,
		Password: password,
		RootDir:  rootDir,
	}

	u.users[newUser.Username] = newUser
	return newUser
}

// Remove removes a user
func (u *LocalUsers) Remove(username string) *User {
	u.mu.Lock()
	defer u.mu.Unlock()
	oldUser := u.users[username]
	delete(u.users, username)
	return oldUser
}

// NewLocalUsers creates a new LocalUsers
func NewLocalUsers() *LocalUsers {
	return &LocalUsers{
		users: make(map[string]*User),
	}
}
