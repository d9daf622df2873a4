package testutils

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/groundwork/internal/logging"
	"github.com/aretw0/groundwork/pkg/config"
)

// LogBuffer captures tagged log output for assertions.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// Lines returns the captured lines, without the trailing newline.
func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := strings.TrimRight(b.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Contains reports whether any line contains substr.
func (b *LogBuffer) Contains(substr string) bool {
	for _, l := range b.Lines() {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

// NewLogger returns a logger writing tagged lines into a fresh LogBuffer.
func NewLogger(t *testing.T) (*slog.Logger, *LogBuffer) {
	t.Helper()
	buf := &LogBuffer{}
	return logging.NewWithWriter(buf, slog.LevelInfo), buf
}

// Config returns a configuration with both credentials and the root anchor set.
func Config() *config.Config {
	return &config.Config{
		NotionAPIKey:     "secret_test",
		NotionRootPageID: "anchor",
		NotionBaseURL:    config.DefaultNotionBaseURL,
		NotionVersion:    config.DefaultNotionVersion,
		ClickUpAPIKey:    "pk_test",
		ClickUpBaseURL:   config.DefaultClickUpBaseURL,
	}
}
