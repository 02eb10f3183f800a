// ftsdump inspects FTS spectrometer files: block structure, decoded header
// parameters, data blocks and slice aggregates.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spectro-tools/go-fts/internal/logging"
)

var (
	cfg     cliConfig
	logger  *slog.Logger
	cfgPath string
	asJSON  bool
	verbose bool
	showLog bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ftsdump",
		Short:         "Inspect FTS spectrometer files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if asJSON {
				cfg.Output = "json"
			}
			level := cfg.LogLevel
			if verbose {
				level = "debug"
			}
			logger, err = logging.New(os.Stderr, logging.Options{
				Level:  level,
				Format: cfg.LogFormat,
			})
			return err
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "emit JSON instead of tables")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&showLog, "show-log", false, "print the session's diagnostic log")

	root.AddCommand(
		newStructureCommand(),
		newHeaderCommand(),
		newDataCommand(),
		newSlicesCommand(),
	)
	return root
}

func printSessionLog(lines []string) {
	if !showLog {
		return
	}
	fmt.Fprintln(os.Stderr, "--- session log ---")
	for _, line := range lines {
		fmt.Fprintln(os.Stderr, line)
	}
}
