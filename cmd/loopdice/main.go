// loopdice is a terminal board game: five dice, a 26-cell loop and a prize
// on every cell.
//
// Usage:
//
//	loopdice list               - List the playable variants
//	loopdice play [variant]     - Play a variant
//	loopdice menu               - Pick variants interactively
//	loopdice simulate           - Run a batch simulation and report ROI
//	loopdice board              - Print the board table
//	loopdice scores [variant]   - Show the session ledger
//	loopdice serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible play
//	--db <path>           - Set database path (default: ~/.loopdice/ledger.db)
//	--config <path>       - Use a custom loop.yaml
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/loopdice/internal/config"
	"github.com/vovakirdan/loopdice/internal/games/loop"
	"github.com/vovakirdan/loopdice/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "loopdice",
	Short: "Loop Dice - a dice board game in your terminal",
	Long: `Loop Dice is a terminal board game. Pick a direction, roll five dice
and walk the token around a loop of 26 prize cells. One cell is a trap.

Available commands:
  list      - Show the playable variants
  play      - Play a variant directly
  menu      - Interactive variant picker
  simulate  - Batch simulation with cost, revenue and ROI
  board     - Print the board table
  scores    - View the session ledger
  serve     - Start SSH server for remote play

Examples:
  loopdice play
  loopdice play classic
  loopdice simulate --rounds 100000 --variant rigged
  loopdice serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger = newLogger(os.Stderr, level)
		loop.SetConfigPath(flagConfig)
		loop.SetLogger(logger)
		tui.SetLogger(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.loopdice/ledger.db", "Path to the ledger database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom loop.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "loopdice",
		Level:           level,
	})
}

// redirectLogToFile sends logs to ~/.loopdice/loopdice.log while a
// full-screen UI owns the terminal. Logs are discarded if the file cannot
// be opened. The returned func restores stderr and closes the file.
func redirectLogToFile() func() {
	path, f, err := openLogFile()
	if err != nil {
		logger.Warn("could not open log file, logging disabled during play", "path", path, "err", err)
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}

	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}

func openLogFile() (string, *os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil, err
	}
	path := filepath.Join(home, ".loopdice", "loopdice.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	return path, f, err
}

// loadConfig loads the loop configuration, falling back to defaults.
func loadConfig() config.LoopConfig {
	cfg, err := config.LoadLoop(flagConfig)
	if err != nil {
		logger.Error("loading config, using defaults", "path", flagConfig, "err", err)
		return config.DefaultLoopConfig()
	}
	return cfg
}
