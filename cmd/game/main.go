package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ninja",
	Short: "A deterministic side-scrolling platformer",
	Long: `ninja is a tile-based platformer with a fully deterministic
simulation core. Runs are recorded as replays that can be played back
as ghosts or re-verified frame by frame.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data", "data", "directory holding levels, art and save files")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(verifyCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
