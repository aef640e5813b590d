package server

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/library-resource/library/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestServer_RunStop(t *testing.T) {
	srv := NewServer(config.HTTPServer{Host: "127.0.0.1", Port: "0", ReadTimeout: time.Second}, echo.New())

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	// give ListenAndServe a moment to bind
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
