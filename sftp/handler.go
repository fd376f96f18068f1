package sftp

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"

	"github.com/pkg/sftp"
	"github.com/telebroad/ftpd/filesystem"
	"github.com/telebroad/ftpd/tools"
)

// Session is one authenticated ssh connection. fs is nil until the
// password callback accepts the user.
type Session struct {
	fs     *filesystem.LocalFS
	logger *slog.Logger
}

func (s *Session) handlers() sftp.Handlers {
	return sftp.Handlers{
		FileGet:  s,
		FilePut:  s,
		FileCmd:  s,
		FileList: s,
	}
}

// locate maps the request's absolute virtual path under the user's root.
func (s *Session) locate(name string) (filesystem.Path, error) {
	if s.fs == nil {
		return filesystem.Path{}, errors.New("not authenticated")
	}
	return s.fs.Locate(name)
}

func (s *Session) Fileread(request *sftp.Request) (io.ReaderAt, error) {
	s.logger.Debug("Fileread",
		"request.Method", request.Method,
		"request.Filepath", tools.IsPrintable(request.Filepath),
	)
	p, err := s.locate(request.Filepath)
	if err != nil {
		return nil, err
	}
	return s.fs.File(p, os.O_RDONLY)
}

func (s *Session) Filewrite(request *sftp.Request) (io.WriterAt, error) {
	s.logger.Debug("Filewrite",
		"request.Method", request.Method,
		"request.Filepath", tools.IsPrintable(request.Filepath),
	)
	p, err := s.locate(request.Filepath)
	if err != nil {
		return nil, err
	}
	return s.fs.File(p, os.O_RDWR|os.O_CREATE|os.O_TRUNC)
}

func (s *Session) Filecmd(request *sftp.Request) error {
	s.logger.Debug("Filecmd",
		"request.Method", request.Method,
		"request.Filepath", tools.IsPrintable(request.Filepath),
		"request.Target", tools.IsPrintable(request.Target),
	)
	p, err := s.locate(request.Filepath)
	if err != nil {
		return err
	}
	switch request.Method {
	case "Rename", "PosixRename":
		target, err := s.locate(request.Target)
		if err != nil {
			return err
		}
		return s.fs.Rename(p, target)

	case "Rmdir":
		if err := s.fs.CheckDir(p); err != nil {
			return err
		}
		return s.fs.Remove(p)

	case "Remove":
		return s.fs.Remove(p)

	case "Mkdir":
		return s.fs.MakeDir(p)
	}
	return errors.New("unsupported")
}

type listerAt []os.FileInfo

// ListAt modeled after strings.Reader's ReadAt() implementation
func (f listerAt) ListAt(ls []os.FileInfo, offset int64) (int, error) {
	var n int
	if offset >= int64(len(f)) {
		return 0, io.EOF
	}
	n = copy(ls, f[offset:])
	if n < len(ls) {
		return n, io.EOF
	}
	return n, nil
}

func (s *Session) Filelist(request *sftp.Request) (sftp.ListerAt, error) {
	s.logger.Debug("Filelist",
		"request.Method", request.Method,
		"request.Filepath", tools.IsPrintable(request.Filepath),
	)
	p, err := s.locate(request.Filepath)
	if err != nil {
		return nil, err
	}

	switch request.Method {
	case "List":
		names, err := s.fs.Dir(p)
		if err != nil {
			return nil, err
		}
		entries := make([]os.FileInfo, 0, len(names))
		for _, name := range names {
			entryPath, err := s.fs.Locate(path.Join(p.Virtual, name))
			if err != nil {
				continue
			}
			entry, err := s.fs.Stat(entryPath)
			if err != nil {
				continue
			}
			entries = append(entries, entry)
		}
		return listerAt(entries), nil

	case "Stat":
		entry, err := s.fs.Stat(p)
		if err != nil {
			return nil, err
		}
		return listerAt{entry}, nil

	case "Lstat":
		entry, err := s.fs.Lstat(p)
		if err != nil {
			return nil, err
		}
		return listerAt{entry}, nil
	}
	return nil, errors.New("unsupported")
}
