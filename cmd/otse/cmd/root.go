package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchEdit/internal/slogutil"
)

var (
	// Global flags
	verbosity int
	quiet     bool

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "otse",
	Short: "OpenTraceSchEdit - Surgical editing for KiCad schematic files",
	Long: `OpenTraceSchEdit (otse) edits KiCad files without reformatting them:
every byte outside the requested change survives untouched, including
constructs the tool does not model (mirror flags, DNP state, future fields).

Examples:
  otse sch info board.kicad_sch            # Show schematic summary
  otse sch set board.kicad_sch R1 --prop Value=4k7
  otse sch rename-net board.kicad_sch SPI_SCK SPI1_SCK
  otse pro netclass list board.kicad_pro   # List project net classes
  otse serve                               # Run the MCP stdio server`,
	Version: "0.3.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = slogutil.NewStderrLogger(slogutil.LevelFromVerbosity(verbosity, quiet))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "verbose output (repeat for debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress log output")
}
