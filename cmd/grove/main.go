package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagRoots     int
	flagNodeLimit int
	flagBloom     uint64
	flagVerbose   bool

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "grove",
	Short: "Inspect and exercise partitioned B-tree forests",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagRoots, "roots", 0, "number of independent roots (0 uses GOMAXPROCS)")
	rootCmd.PersistentFlags().IntVar(&flagNodeLimit, "node-limit", 0, "per-root node budget (0 is unlimited)")
	rootCmd.PersistentFlags().Uint64Var(&flagBloom, "bloom", 0, "size bloom pre-filters for this many expected keys (0 disables)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
