package http

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestServerShutdownStopsRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := &Server{Engine: gin.New()}

	done := make(chan error, 1)
	go func() { done <- s.Run("127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Shutdown(context.Background()))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestServerRunAfterShutdownReturns(t *testing.T) {
	s := &Server{Engine: gin.New()}
	require.NoError(t, s.Shutdown(context.Background()))
	require.NoError(t, s.Run("127.0.0.1:0"))
}
