package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/oshokin/getver"
	"github.com/oshokin/getver/internal/config"
	"github.com/oshokin/getver/internal/service/common"
	"github.com/oshokin/getver/internal/service/query"
	"github.com/oshokin/getver/internal/service/server"
)

// startGRPC starts getver-server on a random loopback port with a temporary config.
// Returns the bound address and a stop function that waits for shutdown.
func startGRPC(t *testing.T, cfg *config.Config) (string, func()) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "getver.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	// Create cancellable context for server lifecycle.
	ctx, cancel := context.WithCancel(context.Background())

	ready := make(chan string, 1)
	stopped := make(chan error, 1)

	go func() {
		options := &server.Options{
			ConfigPath:    cfgPath,
			ListenAddress: "127.0.0.1:0",
			Ready:         func(address string) { ready <- address },
		}

		stopped <- server.Run(ctx, options)
	}()

	var address string

	select {
	case address = <-ready:
	case err := <-stopped:
		cancel()
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("server did not start")
	}

	return address, func() {
		cancel()
		require.NoError(t, <-stopped)
	}
}

// TestGRPC_Roundtrip starts the real server and resolves packages through the client.
func TestGRPC_Roundtrip(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	address, stop := startGRPC(t, &config.Config{
		Package:   "example.com/default/not/linked",
		Extractor: "go-git",
	})
	defer stop()

	ctx := context.Background()

	c, err := common.Dial(ctx, address, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	// Unknown package resolves to the sentinel rather than an RPC error.
	got, err := c.GetVersion(ctx, "example.com/missing", "", false)
	require.NoError(t, err)
	require.Equal(t, getver.PackageNotFound, got)

	// Empty package falls back to the configured default.
	got, err = c.GetVersion(ctx, "", "", false)
	require.NoError(t, err)
	require.Equal(t, getver.PackageNotFound, got)

	// A marker without a repository behind it is reported in parentheses.
	bogus := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(bogus, ".git"), 0o750))

	got, err = c.GetVersion(ctx, "example.com/missing", bogus, true)
	require.NoError(t, err)
	require.Equal(t, getver.PackageNotFound+" ("+getver.InvalidRepository+")", got)
}

// TestQuery_Remote runs the getver command against a live server.
func TestQuery_Remote(t *testing.T) {
	address, stop := startGRPC(t, &config.Config{Extractor: "go-git"})
	defer stop()

	cfgPath := filepath.Join(t.TempDir(), "getver.yaml")
	require.NoError(t, config.Save(cfgPath, new(config.Config)))

	var out bytes.Buffer

	err := query.Run(context.Background(), &query.Options{
		ConfigPath: cfgPath,
		Package:    "example.com/missing",
		Remote:     address,
	}, &out)
	require.NoError(t, err)
	require.Equal(t, getver.PackageNotFound+"\n", out.String())
}
