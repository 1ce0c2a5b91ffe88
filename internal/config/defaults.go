package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/loop.yaml
var defaultLoopYAML []byte

// DefaultLoopConfig returns the hardcoded configuration used when no YAML
// can be read. Board cells are left empty so the built-in board is used.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		Variant: string(VariantCorrected),
		Rules: RulesConfig{
			StartBalance:     10000,
			Stake:            100,
			RigRate:          0.8,
			BadPrizeCeiling:  300,
			PlausibleMin:     15,
			PlausibleMax:     20,
			JackpotThreshold: 1000,
		},
		Animation: AnimationConfig{
			ShakeFrames: 16, // 16 x 100ms
			ShakeTicks:  6,
			StepTicks:   15, // 250ms at 60fps
			SettleTicks: 30, // 500ms at 60fps
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultLoopYAML
}

// decodeLoop parses YAML over the hardcoded defaults, so keys present in
// the file win even when they are zero and omitted keys keep their default.
func decodeLoop(data []byte) (LoopConfig, error) {
	cfg := DefaultLoopConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Variant == "" {
		cfg.Variant = string(VariantCorrected)
	}
	return cfg, nil
}
