package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hita/aedip-telemedicina/pkg/cli/config"
	httpctrl "github.com/hita/aedip-telemedicina/pkg/controller/http"
	"github.com/hita/aedip-telemedicina/pkg/usecase"
	"github.com/hita/aedip-telemedicina/pkg/utils/logging"
	"github.com/hita/aedip-telemedicina/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var reasonsPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("AEDIP_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "reasons-config",
			Usage:       "Path to a TOML file overriding the change-reason catalog",
			Sources:     cli.EnvVars("AEDIP_REASONS_CONFIG"),
			Destination: &reasonsPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			ucOpts := []usecase.Option{}
			if reasonsPath != "" {
				reasonCfg, err := config.LoadReasonConfig(reasonsPath)
				if err != nil {
					return goerr.Wrap(err, "failed to load reason config")
				}
				ucOpts = append(ucOpts, usecase.WithReasonCatalog(reasonCfg.ToCatalog()))
				logging.Default().Info("Loaded reason catalog overrides",
					"path", reasonsPath,
					"entries", len(reasonCfg.Reasons))
			}

			uc := usecase.New(repo, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
