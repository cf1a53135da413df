package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/habiliai/agenteval"
	"github.com/habiliai/agenteval/config"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/mylog"
	"github.com/habiliai/agenteval/jsonrpc"
	"github.com/habiliai/agenteval/mcpserver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stage table and pipelines over JSON-RPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := config.NewServerConfig()
			if err := config.Resolve(cfg); err != nil {
				return err
			}
			if host != "" {
				cfg.Host = host
			}
			if port > 0 {
				cfg.Port = port
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			e, err := newEvaluator(ctx, flags, agenteval.WithMetricsRegisterer(reg))
			if err != nil {
				return err
			}
			defer e.Close()
			logger := e.Logger()

			handler, err := jsonrpc.NewHandler(e, jsonrpc.WithLogger(logger), jsonrpc.WithGatherer(reg))
			if err != nil {
				return err
			}

			server := http.Server{
				Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
				Handler: handlers.CORS(
					handlers.AllowedOrigins([]string{"*"}),
					handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
					handlers.AllowedHeaders([]string{
						"Content-Type",
						"Authorization",
						"Accept",
						"Origin",
						"User-Agent",
						"Cache-Control",
					}),
					handlers.MaxAge(86400),
				)(handler),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Error("failed to shutdown server", mylog.Err(err))
				}
			}()

			logger.Info("Starting server", "addr", cfg.Host, "port", cfg.Port)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "failed to serve on %s", server.Addr)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Listen host (default from AGENTEVAL_HOST or 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (default from AGENTEVAL_PORT or 8080)")

	return cmd
}

func newMCPCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve search, simulation and the demo pipeline as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEvaluator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer e.Close()

			return mcpserver.ServeStdio(e, e.Logger(), version)
		},
	}
}
