package tools

import (
	"io"
	"log/slog"
)

// LogReadWriter is a wrapper around an io.ReadWriter that logs all reads
// and writes to a slog.Logger.
type LogReadWriter struct {
	ReadWriter io.ReadWriter
	logger     *slog.Logger
}

func (rw *LogReadWriter) Read(b []byte) (int, error) {
	n, err := rw.ReadWriter.Read(b)
	if rw.logger != nil && n > 0 { // Log only if n > 0 to avoid logging empty reads
		rw.logger.Debug("Request", "body", string(b[:n]))
	}
	return n, err
}

func (rw *LogReadWriter) Write(b []byte) (int, error) {
	if rw.logger != nil {
		rw.logger.Debug("Respond", "body", string(b))
	}
	return rw.ReadWriter.Write(b)
}

// NewLogReadWriter creates a new LogReadWriter.
func NewLogReadWriter(rw io.ReadWriter, logger *slog.Logger) *LogReadWriter {
	return &LogReadWriter{ReadWriter: rw, logger: logger}
}
