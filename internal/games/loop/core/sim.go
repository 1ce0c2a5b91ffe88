package core

import (
	"errors"
	"fmt"
)

// Strategy picks the direction for each simulated round.
type Strategy string

const (
	StrategyClockwise        Strategy = "cw"
	StrategyCounterClockwise Strategy = "ccw"
	StrategyRandom           Strategy = "random"
)

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case StrategyClockwise, StrategyCounterClockwise, StrategyRandom:
		return st, nil
	}
	return "", fmt.Errorf("loop: unknown strategy %q (want cw, ccw or random)", s)
}

// Direction returns the direction for the next round. Only StrategyRandom
// consumes randomness.
func (st Strategy) Direction(rng Rand) Direction {
	switch st {
	case StrategyCounterClockwise:
		return CounterClockwise
	case StrategyRandom:
		if rng.Intn(2) == 0 {
			return Clockwise
		}
		return CounterClockwise
	default:
		return Clockwise
	}
}

// SimulationConfig describes a batch run.
type SimulationConfig struct {
	Rounds     int
	Stake      int
	Strategy   Strategy
	StartIndex int // Token position before the first round
}

// SimulationReport aggregates a batch run.
type SimulationReport struct {
	Variant      Variant
	Strategy     Strategy
	Rounds       int
	Stake        int
	Cost         int
	Revenue      int
	Net          int
	ROI          float64 // (Revenue - Cost) / Cost
	Wins         int
	Losses       int
	Traps        int
	Rigged       int
	ConfigErrors int
	Landings     []int // Landing count per cell index
}

// ROIPercent formats the return on investment as a percentage.
func (r SimulationReport) ROIPercent() string {
	return fmt.Sprintf("%.1f%%", r.ROI*100)
}

// ErrInvalidSimulation is returned for a malformed SimulationConfig.
var ErrInvalidSimulation = errors.New("loop: invalid simulation")

// Simulate plays cfg.Rounds rounds back to back with the given resolver.
// The token keeps its landing cell between rounds, as in continuous play.
// Rounds that hit a board configuration error count with their zero prize.
func Simulate(r *Resolver, rng Rand, cfg SimulationConfig) (SimulationReport, error) {
	if cfg.Rounds < 0 {
		return SimulationReport{}, fmt.Errorf("%w: rounds must not be negative", ErrInvalidSimulation)
	}
	if cfg.Stake <= 0 {
		return SimulationReport{}, fmt.Errorf("%w: stake must be positive", ErrInvalidSimulation)
	}
	if _, err := ParseStrategy(string(cfg.Strategy)); err != nil {
		return SimulationReport{}, fmt.Errorf("%w: %v", ErrInvalidSimulation, err)
	}

	report := SimulationReport{
		Variant:  r.Variant(),
		Strategy: cfg.Strategy,
		Rounds:   cfg.Rounds,
		Stake:    cfg.Stake,
		Cost:     cfg.Rounds * cfg.Stake,
		Landings: make([]int, r.Board().Len()),
	}

	pos := r.Board().Normalize(cfg.StartIndex)
	for range cfg.Rounds {
		dir := cfg.Strategy.Direction(rng)

		res, err := r.Resolve(rng, dir, pos)
		if err != nil {
			var cfgErr *BoardConfigurationError
			if !errors.As(err, &cfgErr) {
				return report, err
			}
			report.ConfigErrors++
		}

		pos = res.End
		report.Revenue += res.Prize
		report.Landings[res.End]++
		if res.Rigged {
			report.Rigged++
		}
		if res.Trap {
			report.Traps++
		}
		if res.Outcome(r.rules.JackpotThreshold) == OutcomeLoss {
			report.Losses++
		} else {
			report.Wins++
		}
	}

	report.Net = report.Revenue - report.Cost
	if report.Cost > 0 {
		report.ROI = float64(report.Net) / float64(report.Cost)
	}
	return report, nil
}
