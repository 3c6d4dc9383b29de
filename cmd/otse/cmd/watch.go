package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchEdit/internal/watcher"
	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/schematic"
)

var watchCmd = &cobra.Command{
	Use:   "watch <schematic_file>",
	Short: "Watch a schematic and re-list components on change",
	Long: `Monitor a schematic file and print the component list whenever the
file changes on disk (saves from KiCad included). Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	printComponents := func(path string) {
		sch, err := schematic.Load(path)
		if err != nil {
			logger.Warn("reload failed", "path", path, "error", err.Error())
			return
		}
		comps := sch.ListComponents("")
		fmt.Printf("%s: %d components\n", path, len(comps))
		for _, c := range comps {
			fmt.Printf("  %-8s %-20s %s\n", c.Reference, c.Value, c.Footprint)
		}
	}

	// Initial listing, also validates the path before we start watching.
	if _, err := schematic.Load(filename); err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}
	printComponents(filename)

	w, err := watcher.New()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Stop()

	if err := w.Watch(filename, printComponents); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filename, err)
	}
	logger.Info("watching", "path", filename)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Println()
	return nil
}
