package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ocictl/internal/config"
	"ocictl/internal/oci"
	"ocictl/internal/server"
	"ocictl/internal/tools"
	"ocictl/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	serveTransport   string
	serveHost        string
	servePort        int
	serveDebug       bool
	serveCompartment string
	serveProfile     string
	serveConfigFile  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for OCI core services",
	Long: `Starts an MCP server exposing OCI compute, network, and database tools.

By default the server speaks MCP over stdio, which is what editor and AI
assistant integrations expect. With --transport sse it serves an HTTP SSE
endpoint instead.

Configuration is loaded from ~/.config/ocictl/config.yaml and .ocictl/config.yaml
in the current directory; flags and OCI_* environment variables override both.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logLevel := logging.LevelInfo
	if serveDebug {
		logLevel = logging.LevelDebug
	}
	// stdout carries the MCP stdio stream, logs go to stderr.
	logging.Init(logLevel, os.Stderr)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyServeFlags(&cfg)

	clients := oci.NewClients(cfg.OCI)
	ociTools := tools.NewOCITools(clients, cfg)
	srv := server.New(rootCmd.Version, cfg.Server, ociTools)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}

// applyServeFlags layers explicit flags over the loaded configuration.
func applyServeFlags(cfg *config.Config) {
	if serveTransport != "" {
		cfg.Server.Transport = serveTransport
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveCompartment != "" {
		cfg.OCI.CompartmentID = serveCompartment
	}
	if serveProfile != "" {
		cfg.OCI.Profile = serveProfile
	}
	if serveConfigFile != "" {
		cfg.OCI.ConfigFile = serveConfigFile
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "MCP transport: stdio or sse (default stdio)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind the SSE server to")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to bind the SSE server to")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveCompartment, "compartment", "", "Default compartment OCID for all tools")
	serveCmd.Flags().StringVar(&serveProfile, "profile", "", "OCI config profile to use")
	serveCmd.Flags().StringVar(&serveConfigFile, "oci-config", "", "Path to the OCI config file")
}
