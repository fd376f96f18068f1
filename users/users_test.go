package users

import (
	"errors"
	"testing"
)

func TestLocalUsers(t *testing.T) {
	store := NewLocalUsers()
	store.Add("alice", "secret", "/srv/ftp/alice")
	store.Add("bob", "hunter2", "/srv/ftp/bob")

	user, err := store.Get("alice")
	if err != nil {
		t.Fatal(err)
	}
	if user.RootDir != "/srv/ftp/alice" {
		t.Errorf("RootDir = %q", user.RootDir)
	}

	if _, err := store.Get("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nobody) error = %v, want ErrNotFound", err)
	}

	all, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("List() has %d users", len(all))
	}

	store.Remove("bob")
	if _, err := store.Get("bob"); err == nil {
		t.Error("bob still present after Remove")
	}
}

func TestFind(t *testing.T) {
	store := NewLocalUsers()
	store.Add("alice", "secret", "/srv/ftp/alice")

	if _, err := store.Find("alice", "secret"); err != nil {
		t.Errorf("Find with matching password: %v", err)
	}
	if _, err := store.Find("alice", "wrong"); err == nil {
		t.Error("Find with wrong password succeeded")
	}
	if _, err := store.Find("nobody", "secret"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(nobody) error = %v, want ErrNotFound", err)
	}
}
