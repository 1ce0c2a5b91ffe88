package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/loopdice/internal/config"
	"github.com/vovakirdan/loopdice/internal/games/loop"
	"github.com/vovakirdan/loopdice/internal/games/loop/core"
	"github.com/vovakirdan/loopdice/internal/storage"
)

var (
	flagSimRounds   int
	flagSimStrategy string
	flagSimVariant  string
	flagSimStake    int
	flagSimSave     bool
	flagSimAll      bool
	flagSimLandings bool
	flagSimShow     string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a batch simulation and report cost, revenue and ROI",
	Long: `Play many rounds without the UI and report what they cost and paid.

The token starts on the home cell and keeps its landing cell between
rounds. Cost is rounds times stake; revenue is the sum of prizes won
(the trap counts negative); ROI is (revenue - cost) / cost.

Strategies:
  cw      - always clockwise
  ccw     - always counter-clockwise
  random  - pick a direction per round

Examples:
  loopdice simulate
  loopdice simulate --rounds 100000 --variant rigged
  loopdice simulate --all --seed 7
  loopdice simulate --variant classic --landings --save
  loopdice simulate --show <run-id>`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRounds, "rounds", 10000, "Number of rounds to play")
	simulateCmd.Flags().StringVar(&flagSimStrategy, "strategy", string(core.StrategyRandom), "Direction strategy: cw, ccw or random")
	simulateCmd.Flags().StringVar(&flagSimVariant, "variant", "", "Variant: corrected, classic or rigged (default from config)")
	simulateCmd.Flags().IntVar(&flagSimStake, "stake", 0, "Stake per round (default from config)")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the ledger database")
	simulateCmd.Flags().BoolVar(&flagSimAll, "all", false, "Run every variant with the same seed")
	simulateCmd.Flags().BoolVar(&flagSimLandings, "landings", false, "Print landing counts per cell")
	simulateCmd.Flags().StringVar(&flagSimShow, "show", "", "Print a saved run by ID instead of simulating")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	if flagSimShow != "" {
		return showSimulation(flagSimShow)
	}

	cfg := loadConfig()

	preset, err := variantPreset(flagSimVariant)
	if err != nil {
		return err
	}
	config.ApplyVariantPreset(&cfg, preset)

	strategy, err := core.ParseStrategy(flagSimStrategy)
	if err != nil {
		return err
	}

	stake := cfg.Rules.Stake
	if flagSimStake != 0 {
		stake = flagSimStake
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	variants := []core.Variant{core.Variant(cfg.Variant)}
	if flagSimAll {
		variants = core.Variants()
	}

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening ledger database: %w", err)
		}
		defer store.Close()
	}

	reports := make([]core.SimulationReport, 0, len(variants))
	for _, v := range variants {
		resolver := loop.ResolverFor(cfg, v)
		rng := rand.New(rand.NewSource(seed))

		logger.Debug("simulating", "variant", v, "rounds", flagSimRounds, "strategy", strategy, "seed", seed)
		report, err := core.Simulate(resolver, rng, core.SimulationConfig{
			Rounds:     flagSimRounds,
			Stake:      stake,
			Strategy:   strategy,
			StartIndex: resolver.Board().Home(),
		})
		if err != nil {
			return fmt.Errorf("simulating %s: %w", v, err)
		}
		if report.ConfigErrors > 0 {
			logger.Warn("rounds hit a board configuration error", "variant", v, "count", report.ConfigErrors)
		}
		reports = append(reports, report)

		if store != nil {
			id, err := store.SaveSimulation(simulationRecord(report, seed))
			if err != nil {
				logger.Error("saving simulation", "variant", v, "err", err)
			} else {
				logger.Info("simulation saved", "id", id, "variant", v)
			}
		}

		if flagSimLandings {
			printLandings(resolver.Board(), report)
		}
	}

	fmt.Printf("Seed %d, %d rounds, strategy %s, stake %d\n", seed, flagSimRounds, strategy, stake)
	fmt.Println(reportTable(reports))
	return nil
}

func showSimulation(id string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening ledger database: %w", err)
	}
	defer store.Close()

	rec, err := store.SimulationByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no simulation run %q", id)
	}

	fmt.Printf("Run %s (%s), seed %d, %d rounds, strategy %s, stake %d\n",
		rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), rec.Seed, rec.Rounds, rec.Strategy, rec.Stake)
	fmt.Println(reportTable([]core.SimulationReport{{
		Variant:  core.Variant(rec.Variant),
		Strategy: core.Strategy(rec.Strategy),
		Rounds:   rec.Rounds,
		Stake:    rec.Stake,
		Cost:     rec.Cost,
		Revenue:  rec.Revenue,
		Net:      rec.Net,
		ROI:      rec.ROI,
		Wins:     rec.Wins,
		Losses:   rec.Losses,
		Traps:    rec.Traps,
		Rigged:   rec.Rigged,
	}}))
	return nil
}

func simulationRecord(r core.SimulationReport, seed int64) storage.SimulationRecord {
	return storage.SimulationRecord{
		Variant:      string(r.Variant),
		Strategy:     string(r.Strategy),
		Seed:         seed,
		Rounds:       r.Rounds,
		Stake:        r.Stake,
		Cost:         r.Cost,
		Revenue:      r.Revenue,
		Net:          r.Net,
		ROI:          r.ROI,
		Wins:         r.Wins,
		Losses:       r.Losses,
		Traps:        r.Traps,
		Rigged:       r.Rigged,
		ConfigErrors: r.ConfigErrors,
	}
}

func reportTable(reports []core.SimulationReport) fmt.Stringer {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			string(r.Variant),
			strconv.Itoa(r.Cost),
			strconv.Itoa(r.Revenue),
			fmt.Sprintf("%+d", r.Net),
			r.ROIPercent(),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
			strconv.Itoa(r.Traps),
			strconv.Itoa(r.Rigged),
		})
	}
	headers := []string{"Variant", "Cost", "Revenue", "Net", "ROI", "Wins", "Losses", "Traps", "Rigged"}
	return newTable(headers, rows, nil)
}

func printLandings(board *core.Board, r core.SimulationReport) {
	rows := make([][]string, 0, board.Len())
	for i, c := range board.Cells() {
		share := 0.0
		if r.Rounds > 0 {
			share = float64(r.Landings[i]) / float64(r.Rounds) * 100
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(c.Label),
			strconv.Itoa(c.Prize),
			strconv.Itoa(r.Landings[i]),
			fmt.Sprintf("%.2f%%", share),
		})
	}

	fmt.Fprintf(os.Stdout, "Landings - %s\n", r.Variant)
	fmt.Println(newTable([]string{"Cell", "Label", "Prize", "Landed", "Share"}, rows, cellRowStyle(board)))
}

// cellRowStyle highlights the home and trap rows of a per-cell table.
func cellRowStyle(board *core.Board) func(row int) lipgloss.Style {
	return func(row int) lipgloss.Style {
		switch row {
		case board.Trap():
			return trapStyle
		case board.Home():
			return homeStyle
		}
		return cellStyle
	}
}
