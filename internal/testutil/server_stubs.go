package testutil

import (
	"context"
	"net/http"
	"sync/atomic"
)

// FakeHTTPServer stands in for the server's listener loop in lifecycle tests.
// ListenAndServe returns ListenErr immediately. When HoldShutdown is non-nil,
// Shutdown waits until it is closed or the context ends.
type FakeHTTPServer struct {
	Address      string
	Routes       http.Handler
	ListenErr    error
	ShutdownErr  error
	HoldShutdown chan struct{}

	listens   atomic.Int32
	shutdowns atomic.Int32
}

func (f *FakeHTTPServer) ListenAndServe() error {
	f.listens.Add(1)
	return f.ListenErr
}

func (f *FakeHTTPServer) Shutdown(ctx context.Context) error {
	f.shutdowns.Add(1)
	if f.HoldShutdown == nil {
		return f.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.HoldShutdown:
		return f.ShutdownErr
	}
}

func (f *FakeHTTPServer) Addr() string {
	if f.Address == "" {
		return ":0"
	}
	return f.Address
}

func (f *FakeHTTPServer) Handler() http.Handler {
	if f.Routes == nil {
		return http.NotFoundHandler()
	}
	return f.Routes
}

func (f *FakeHTTPServer) ListenCalls() int   { return int(f.listens.Load()) }
func (f *FakeHTTPServer) ShutdownCalls() int { return int(f.shutdowns.Load()) }
