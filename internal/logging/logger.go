package logging

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Tag prefixes every provisioning log line.
const Tag = "[SETUP] "

// New creates a configured application logger.
// It writes to Stdout, one line per record, prefixed with Tag.
// It standardizes common keys (e.g., "error" -> "err") and drops the timestamp.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(NewPrefixWriter(w, Tag), &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// PrefixWriter prepends a fixed prefix to every line written through it.
type PrefixWriter struct {
	mu      sync.Mutex
	w       io.Writer
	prefix  []byte
	midLine bool
}

// NewPrefixWriter wraps w.
func NewPrefixWriter(w io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{w: w, prefix: []byte(prefix)}
}

// Write implements io.Writer. It reports len(p) on success so callers see a full write.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	var buf bytes.Buffer
	rest := p
	for len(rest) > 0 {
		if !pw.midLine {
			buf.Write(pw.prefix)
		}
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			buf.Write(rest)
			pw.midLine = true
			break
		}
		buf.Write(rest[:i+1])
		pw.midLine = false
		rest = rest[i+1:]
	}
	if _, err := pw.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
