package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/cli"
	"github.com/aretw0/pushdown/internal/presentation/tui"
	httpAdapter "github.com/aretw0/pushdown/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the table over HTTP: POST /simulate runs commands, GET /runs lists the
run history, GET /graph renders the diagram and GET /metrics exposes Prometheus
metrics. Runs are kept in memory unless --store says otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		quiet, _ := cmd.Flags().GetBool("quiet")

		opts := optionsFromFlags(cmd)
		if !cmd.Flags().Changed("store") {
			opts.Store = cli.StoreMemory
		}

		env, err := cli.NewEnv(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer env.Close()

		handler := httpAdapter.NewHandler(env.Engine,
			httpAdapter.WithLogger(env.Logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(env.Registry, promhttp.HandlerOpts{})),
		)

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			if !quiet {
				tui.PrintBanner(cmd.OutOrStdout(), pushdown.Version)
				cli.PrintSystemMessage(cmd.OutOrStdout(), "Serving table %q on %s", env.Engine.Table().Name(), srv.Addr)
			}
			env.Logger.Info("HTTP server listening", "address", srv.Addr, "table", env.Engine.Table().Name())
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case <-sigCtx.Done():
			env.Logger.Info("Start shutdown", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				env.Logger.Error("Graceful shutdown did not complete", "error", err)
				return srv.Close()
			}
			if !quiet {
				cli.PrintSystemMessage(cmd.OutOrStdout(), "Server stopped gracefully")
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
