// Description: virtual-root file system for the ftp and sftp servers
// Every session sees a POSIX tree rooted at "/" that maps onto one real
// directory. All path math is done on the virtual form before anything
// touches the disk, so a client can never name a file outside its root.

package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrInvalidPath is returned for client paths the resolver refuses to map:
// absolute arguments and empty names.
var ErrInvalidPath = errors.New("invalid path")

// Path pairs the virtual form of a name with the real location under the
// session root. The virtual form is what PWD reports and what the session
// stores; the real form is what the file operations receive.
type Path struct {
	Virtual string
	Real    string
}

// LocalFS serves one real directory as a virtual root.
type LocalFS struct {
	localDir string
}

func NewLocalFS(localDir string) *LocalFS {
	return &LocalFS{localDir: localDir}
}

// RootDir returns the real directory backing the virtual root.
func (l *LocalFS) RootDir() string {
	return l.localDir
}

// Resolve maps a client-supplied name against the virtual working directory.
// Absolute names are rejected, "." and empty segments are dropped, and ".."
// pops one segment without ever climbing above the virtual root.
func (l *LocalFS) Resolve(workingDir, name string) (Path, error) {
	if name == "" {
		return Path{}, fmt.Errorf("empty name: %w", ErrInvalidPath)
	}
	if strings.HasPrefix(name, "/") {
		return Path{}, fmt.Errorf("absolute path %q: %w", name, ErrInvalidPath)
	}
	return l.Locate(path.Join(workingDir, name))
}

// Locate maps an absolute virtual path to its real location. The sftp
// frontend resolves with it directly; the ftp path goes through Resolve.
func (l *LocalFS) Locate(virtual string) (Path, error) {
	if !strings.HasPrefix(virtual, "/") {
		virtual = "/" + virtual
	}
	// Clean on a rooted path resolves "." and ".."; ".." at the root is a
	// no-op, which is exactly the escape guarantee the server relies on.
	virtual = path.Clean(virtual)
	real := filepath.Join(l.localDir, filepath.FromSlash(strings.TrimPrefix(virtual, "/")))
	return Path{Virtual: virtual, Real: real}, nil
}

// CheckDir checks that the given path exists and is a directory
func (l *LocalFS) CheckDir(p Path) error {
	info, err := os.Stat(p.Real)
	if err != nil {
		return fmt.Errorf("error checking directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", p.Virtual, fs.ErrNotExist)
	}
	return nil
}

// Dir returns the entry names of the given directory, hidden entries
// included, sorted by name.
func (l *LocalFS) Dir(p Path) ([]string, error) {
	entries, err := os.ReadDir(p.Real)
	if err != nil {
		return nil, fmt.Errorf("error reading directory: %w", err)
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names, nil
}

// MakeDir creates a new directory with the given name. The parent must
// already exist; an existing entry of the same name is an error.
func (l *LocalFS) MakeDir(p Path) error {
	if err := os.Mkdir(p.Real, 0777); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	return nil
}

// OpenRead opens the file for reading.
func (l *LocalFS) OpenRead(p Path) (*os.File, error) {
	file, err := os.Open(p.Real)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	return file, nil
}

// Create creates or truncates the file for writing.
func (l *LocalFS) Create(p Path) (*os.File, error) {
	file, err := os.OpenFile(p.Real, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, fmt.Errorf("creating file error: %w", err)
	}
	return file, nil
}

// File opens the file with the given access flags, for the sftp handlers.
func (l *LocalFS) File(p Path, access int) (*os.File, error) {
	file, err := os.OpenFile(p.Real, access, 0666)
	if err != nil {
		return nil, fmt.Errorf("opening file error: %w", err)
	}
	return file, nil
}

// Remove removes the file or empty directory
func (l *LocalFS) Remove(p Path) error {
	if err := os.Remove(p.Real); err != nil {
		return fmt.Errorf("error removing file: %w", err)
	}
	return nil
}

// Rename renames the file or moves it to a different directory. Both ends
// must already be resolved against the same root.
func (l *LocalFS) Rename(from, to Path) error {
	if err := os.Rename(from.Real, to.Real); err != nil {
		return fmt.Errorf("error renaming file: %w", err)
	}
	return nil
}

// Stat returns the file info
func (l *LocalFS) Stat(p Path) (fs.FileInfo, error) {
	info, err := os.Stat(p.Real)
	if err != nil {
		return nil, fmt.Errorf("error getting file info: %w", err)
	}
	return info, nil
}

// Lstat returns the file info without following links
func (l *LocalFS) Lstat(p Path) (fs.FileInfo, error) {
	info, err := os.Lstat(p.Real)
	if err != nil {
		return nil, fmt.Errorf("error getting file info: %w", err)
	}
	return info, nil
}
