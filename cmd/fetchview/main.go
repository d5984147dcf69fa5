// Command fetchview builds and serves the fetchview WebAssembly app.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fetchview",
		Short:         "Build and serve the fetchview WebAssembly app",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ./"+defaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newBuildCommand())
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("fetchview failed", "error", err)
		os.Exit(1)
	}
}
