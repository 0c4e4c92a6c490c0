package testutil

import (
	"bytes"
	"log/slog"
	"sync"
)

// syncBuffer lets handlers under test log from several goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// LogSink is the captured output of a test logger.
type LogSink interface {
	String() string
}

// NewBufferLogger returns a debug-level text logger and the sink it writes to.
func NewBufferLogger() (*slog.Logger, LogSink) {
	sink := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, sink
}
