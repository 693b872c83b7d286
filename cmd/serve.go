package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/dock-cli/internal/dock"
	"github.com/mj1618/dock-cli/internal/monitoring"
	"github.com/mj1618/dock-cli/internal/server"
	"github.com/mj1618/dock-cli/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing dock tools",
	Long: `Start a Model Context Protocol (MCP) server that keeps a live dock model and
exposes it as tools: dock_items, dock_badges, dock_reload and dock_launch.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  dock-cli serve
  dock-cli serve --transport streamable-http --port 8080
  dock-cli serve --metrics-addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", server.TransportStdio, "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	if transport != server.TransportStdio && transport != server.TransportHTTP {
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}

	var metrics *monitoring.Metrics
	if metricsAddr != "" {
		metrics = monitoring.NewMetrics()
	}

	snap := dock.NewSnapshotDelegate(nil)
	engine, err := newEngine(snap, metrics)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context(), 0)
	defer cancel()

	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("failed to start dock engine: %w", err)
	}
	defer engine.Stop()
	serveMetrics(ctx, metrics, metricsAddr)
	go engine.WatchIntervals(ctx, watchConfig(ctx, configPath()))

	srv := server.New(engine, snap, server.Config{
		Version:   version.Version,
		Transport: transport,
		Port:      port,
		Domain:    cfg.Domain,
	})
	return srv.Serve(ctx)
}
