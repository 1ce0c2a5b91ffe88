package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/loopdice/internal/config"
	"github.com/vovakirdan/loopdice/internal/core"
	"github.com/vovakirdan/loopdice/internal/games/loop"
	loopcore "github.com/vovakirdan/loopdice/internal/games/loop/core"
	"github.com/vovakirdan/loopdice/internal/platform/tui"
	"github.com/vovakirdan/loopdice/internal/registry"
	"github.com/vovakirdan/loopdice/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing. Without an argument the variant from loop.yaml is used
(corrected by default).

Variants:
  corrected (loop)          - start on the cell labelled with the sum, walk sum-1 cells
  classic   (loop_classic)  - start on the cell labelled with the sum, walk sum cells
  rigged    (loop_rigged)   - walk from the token; the house usually picks the throw

Controls:
  Left/A     - Counter-clockwise
  Right/D    - Clockwise
  Space      - Roll / continue
  P          - Pause
  R          - Start over (when out of money)
  B/Esc      - Back
  Q/Ctrl+C   - Quit

Examples:
  loopdice play
  loopdice play classic
  loopdice play loop_rigged --seed 42
  loopdice play --config ./my-board.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// resolveGameID maps a variant name or game ID to a registered game ID.
// An empty name selects the configured variant.
func resolveGameID(name string) (string, error) {
	if name == "" {
		cfg := loadConfig()
		name = cfg.Variant
	}
	if registry.Exists(name) {
		return name, nil
	}

	v, err := loopcore.ParseVariant(name)
	if err != nil {
		return "", err
	}
	return loop.GameID(v), nil
}

// runtimeConfig builds a RuntimeConfig sized to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	gameID, err := resolveGameID(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'loopdice list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open ledger database, sessions will not be recorded", "err", err)
		store = nil
	}

	restore := redirectLogToFile()
	_, runErr := tui.Run(game, store, runtimeConfig())
	restore()

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// variantPreset validates a --variant flag value.
func variantPreset(s string) (config.VariantPreset, error) {
	if s == "" {
		return "", nil
	}
	v, err := loopcore.ParseVariant(s)
	if err != nil {
		return "", err
	}
	return config.VariantPreset(v), nil
}
