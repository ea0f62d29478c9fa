// Package cmd implements the command-line interface for logseek.
// It uses the Cobra library to handle commands, flags, and execution.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tberlioz/logseek/internal/block"
	"github.com/tberlioz/logseek/internal/config"
	"github.com/tberlioz/logseek/internal/sysline"
)

// Version information (passed from main).
var (
	version string
	commit  string
	date    string
)

// Global flags, shared by every subcommand.
var (
	configPath  string
	blockSize   uint64
	timezone    string
	verbose     bool
	jsonFlag    bool
	mdFlag      bool
	debugAssert bool

	cfg config.Config
)

// rootCmd is the top-level command for the logseek CLI.
var rootCmd = &cobra.Command{
	Use:   "logseek",
	Short: "Random-access lookup of timestamped lines in large log files",
	Long: `logseek locates log records by the datetime embedded in them, without
reading the whole file: it pages a file into blocks, assembles lines and
multi-line syslines on demand, and binary-searches over byte offsets using
each candidate sysline's parsed datetime.

Use "logseek seek" to find the first sysline at or after a given datetime, and
"logseek scan" to summarize a file's datetime range and dominant format.`,
	Version:           "",
	PersistentPreRunE: initGlobals,
}

// Execute runs the root command. Called by main.go.
func Execute(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("logseek")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to an optional YAML config file supplying defaults for the flags below")
	rootCmd.PersistentFlags().Uint64Var(&blockSize, "block-size", 0,
		"Block size in bytes for paged reads (default 65536; overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "",
		"Timezone (e.g. UTC, America/New_York) applied to timestamps whose pattern carries none")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug-level logging of the search itself")
	rootCmd.PersistentFlags().BoolVarP(&jsonFlag, "json", "J", false,
		"Render output as JSON")
	rootCmd.PersistentFlags().BoolVar(&mdFlag, "md", false,
		"Render output as Markdown")
	rootCmd.PersistentFlags().BoolVar(&debugAssert, "debug-assert", false,
		"Panic on internal invariant violations instead of degrading silently (also settable via LOGSEEK_DEBUG_ASSERT=1)")

	rootCmd.AddCommand(seekCmd)
	rootCmd.AddCommand(scanCmd)
}

// initGlobals loads the optional config file and wires up zerolog, letting
// command-line flags override whatever the file supplied.
func initGlobals(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if blockSize != 0 {
		cfg.BlockSize = blockSize
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	if verbose {
		cfg.Verbose = true
	}
	if debugAssert {
		cfg.DebugAssert = true
	}
	if cfg.DebugAssert {
		sysline.SetDebugAssertions(true)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	return nil
}

func effectiveBlockSize() block.BlockSz {
	if cfg.BlockSize != 0 {
		return cfg.BlockSize
	}
	return block.DefaultBlockSz
}
