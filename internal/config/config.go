// Package config provides YAML-based configuration loading for the loop
// board game: board table, house rules, animation pacing and variant.
package config

import (
	"errors"
	"fmt"
)

// LoopConfig contains all configuration for the loop board game.
type LoopConfig struct {
	Variant   string          `yaml:"variant"`
	Board     BoardConfig     `yaml:"board"`
	Rules     RulesConfig     `yaml:"rules"`
	Animation AnimationConfig `yaml:"animation"`
}

// BoardConfig lists the cells in loop order. An empty list selects the
// built-in board.
type BoardConfig struct {
	Cells []CellConfig `yaml:"cells"`
}

// CellConfig is one cell of the board table.
type CellConfig struct {
	Label int  `yaml:"label"`
	Prize int  `yaml:"prize"`
	Trap  bool `yaml:"trap,omitempty"`
	Home  bool `yaml:"home,omitempty"`
}

// RulesConfig defines money and house-edge parameters.
type RulesConfig struct {
	StartBalance     int     `yaml:"start_balance"`
	Stake            int     `yaml:"stake"`
	RigRate          float64 `yaml:"rig_rate"`          // Only used by the rigged variant
	BadPrizeCeiling  int     `yaml:"bad_prize_ceiling"` // Prizes at or below count as bad
	PlausibleMin     int     `yaml:"plausible_min"`     // Preferred rigged sums window
	PlausibleMax     int     `yaml:"plausible_max"`
	JackpotThreshold int     `yaml:"jackpot_threshold"`
}

// AnimationConfig defines the pacing of a round, in simulation ticks.
type AnimationConfig struct {
	ShakeFrames int `yaml:"shake_frames"` // Dice faces shown before the result
	ShakeTicks  int `yaml:"shake_ticks"`  // Ticks per shake frame
	StepTicks   int `yaml:"step_ticks"`   // Ticks per token step
	SettleTicks int `yaml:"settle_ticks"` // Pause on the landing cell before the result
}

// VariantPreset names a walking variant.
type VariantPreset string

const (
	VariantCorrected VariantPreset = "corrected"
	VariantClassic   VariantPreset = "classic"
	VariantRigged    VariantPreset = "rigged"
)

// ApplyVariantPreset overrides the configured variant. An empty preset keeps
// whatever the config file chose.
func ApplyVariantPreset(cfg *LoopConfig, preset VariantPreset) {
	if preset == "" {
		return
	}
	cfg.Variant = string(preset)
}

// Validate checks the rules and animation sections. Board consistency is
// checked by the game when it builds the board.
func (c LoopConfig) Validate() error {
	var errs []error

	switch VariantPreset(c.Variant) {
	case VariantCorrected, VariantClassic, VariantRigged:
	default:
		errs = append(errs, fmt.Errorf("unknown variant %q", c.Variant))
	}
	if c.Rules.Stake <= 0 {
		errs = append(errs, errors.New("stake must be positive"))
	}
	if c.Rules.StartBalance < 0 {
		errs = append(errs, errors.New("start_balance must not be negative"))
	}
	if c.Rules.RigRate < 0 || c.Rules.RigRate > 1 {
		errs = append(errs, fmt.Errorf("rig_rate %.2f outside [0, 1]", c.Rules.RigRate))
	}
	if c.Rules.PlausibleMin > c.Rules.PlausibleMax {
		errs = append(errs, errors.New("plausible_min is above plausible_max"))
	}
	if len(c.Board.Cells) > 0 && len(c.Board.Cells) != 26 {
		errs = append(errs, fmt.Errorf("board has %d cells, want 26", len(c.Board.Cells)))
	}
	if c.Animation.ShakeTicks < 0 || c.Animation.StepTicks < 0 || c.Animation.SettleTicks < 0 || c.Animation.ShakeFrames < 0 {
		errs = append(errs, errors.New("animation timings must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
