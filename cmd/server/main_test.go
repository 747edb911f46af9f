package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-api/internal/config"
)

func TestNewSessionStore_Cookie(t *testing.T) {
	store, err := newSessionStore(&config.Config{SessionSecret: "secret", GinMode: "test"})
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- listenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRegisterCommands(t *testing.T) {
	registerCommands()
	for _, name := range []string{"serve", "migrate", "create-admin", "task-history"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
