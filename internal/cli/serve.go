package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkoster/circuitry/pkg/server"
	"github.com/mkoster/circuitry/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command for running the diagram API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		backend   string
		redisAddr string
		mongoURI  string
		mongoDB   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram API over HTTP",
		Long: `Serve the diagram API over HTTP.

Diagrams created through POST /api/diagrams are persisted in the
selected store backend. The in-memory backend keeps diagrams for the
lifetime of the process; redis and mongo persist across restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, backend, redisAddr, mongoURI, mongoDB)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&backend, "store", "memory", "store backend: memory, redis, mongo")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address for --store redis")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "connection URI for --store mongo")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "database name for --store mongo")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is
// cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, addr, backend, redisAddr, mongoURI, mongoDB string) error {
	st, err := newStore(ctx, backend, redisAddr, mongoURI, mongoDB)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(c.newRunner(), st, c.Logger)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	c.Logger.Info("listening", "addr", addr, "store", backend)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newStore constructs the requested store backend.
func newStore(ctx context.Context, backend, redisAddr, mongoURI, mongoDB string) (store.Store, error) {
	switch backend {
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		return store.NewRedisAddr(redisAddr), nil
	case "mongo":
		return store.NewMongo(ctx, mongoURI, mongoDB, "diagrams")
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory', 'redis', or 'mongo')", backend)
	}
}
