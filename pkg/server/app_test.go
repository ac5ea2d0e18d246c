package server

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"RetailPrice/pkg/config"
	xhttp "RetailPrice/pkg/http"
	applogger "RetailPrice/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestRunContextShutsDownAndClosesResources(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	srv := xhttp.NewServer(nil,
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(freePort(t)),
		xhttp.WithMetricsPath(""),
	)
	app := New(cfg, applogger.Nop(), srv)

	closed := make(chan struct{})
	app.OnShutdown(closerFunc(func() error {
		close(closed)
		return errors.New("already closed")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	select {
	case <-closed:
	default:
		t.Fatal("closer not called")
	}
}

func TestRunContextReportsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg, err := config.Load("")
	require.NoError(t, err)
	srv := xhttp.NewServer(nil,
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(ln.Addr().(*net.TCPAddr).Port),
		xhttp.WithMetricsPath(""),
	)

	err = New(cfg, applogger.Nop(), srv).RunContext(context.Background())
	assert.Error(t, err)
}
