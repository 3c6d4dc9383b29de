package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchEdit/internal/config"
	"github.com/OpenTraceLab/OpenTraceSchEdit/internal/mcp"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP stdio server",
	Long: `Run the Model Context Protocol server over stdin/stdout. Each tool
call names the file it operates on; no state is held between calls.

An optional YAML config disables individual tools (opt-out model):

  tools:
    update_component: false`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "path to config.yaml")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if serveConfigPath != "" {
		loaded, err := config.Load(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	on := cfg.EnabledTools()
	fmt.Fprintf(os.Stderr, "otse: %d/%d tools enabled\n", len(on), len(config.KnownTools))
	if off := cfg.DisabledTools(); len(off) > 0 {
		fmt.Fprintf(os.Stderr, "otse: disabled: %s\n", strings.Join(off, ", "))
	}
	for _, w := range cfg.Warnings {
		fmt.Fprintf(os.Stderr, "otse: WARNING %s\n", w)
	}

	server := mcp.NewServer(rootCmd.Version, cfg, logger)
	return server.Start()
}
