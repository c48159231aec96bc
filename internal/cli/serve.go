package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yildizm/phishscan/internal/logger"
	"github.com/yildizm/phishscan/internal/server"
)

var (
	serveAddr string
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis backend",
		Long: `Serve GET /api/health and POST /api/analyze for browser and mobile
front ends. Requests are analyzed with the configured provider, so
"phishscan serve --mock" is a self-contained demo backend.

Examples:
  phishscan serve --mock
  phishscan serve --addr 127.0.0.1:8080 --provider ollama --endpoint http://localhost:11434`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :5000)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if serveAddr != "" {
		cfg.Server.Address = serveAddr
	}

	log := GetLogger("server")
	client, err := openClient(log)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		ListenAddr:     cfg.Server.Address,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Logger:         log,
	}, client)

	ctx, stop := signal.NotifyContext(baseContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Serving on %s with provider %s\n", GetEmoji("server"), cfg.Server.Address, client.ProviderName())

	return serveUntilDone(ctx, srv.HTTPServer(), cfg.Server.ShutdownTimeout, log)
}

// serveUntilDone runs hs until ctx is cancelled, then shuts it down gracefully
func serveUntilDone(ctx context.Context, hs *http.Server, shutdownTimeout time.Duration, log *logger.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := hs.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
