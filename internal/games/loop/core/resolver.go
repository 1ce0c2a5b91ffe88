package core

import (
	"errors"
	"fmt"
)

// Variant selects how the board is walked. The three variants are mutually
// exclusive; a game picks exactly one.
type Variant string

const (
	// VariantRigged moves from the current cell and, most of the time,
	// swaps the throw for one that lands on a poor cell.
	VariantRigged Variant = "rigged"
	// VariantClassic starts on the cell labelled with the sum and walks sum cells.
	VariantClassic Variant = "classic"
	// VariantCorrected is VariantClassic with the start cell counted as the
	// first step, so the token walks sum-1 cells.
	VariantCorrected Variant = "corrected"
)

// Variants lists every variant in a stable order.
func Variants() []Variant {
	return []Variant{VariantCorrected, VariantClassic, VariantRigged}
}

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantRigged, VariantClassic, VariantCorrected:
		return v, nil
	}
	return "", fmt.Errorf("loop: unknown variant %q", s)
}

// Rules are the tunables of the rigged variant and outcome classification.
type Rules struct {
	RigRate          float64 // Probability of substituting a bad sum when one exists
	BadPrizeCeiling  int     // Prizes at or below this are considered bad for the player
	PlausibleMin     int     // Preferred window for substituted sums
	PlausibleMax     int
	JackpotThreshold int // Prizes at or above this are reported as a jackpot
}

// DefaultRules returns the stock rules.
func DefaultRules() Rules {
	return Rules{
		RigRate:          0.8,
		BadPrizeCeiling:  300,
		PlausibleMin:     15,
		PlausibleMax:     20,
		JackpotThreshold: 1000,
	}
}

// RoundResult is the outcome of one round. It is computed fresh per round.
type RoundResult struct {
	Variant   Variant
	Direction Direction
	Dice      Dice
	Sum       int
	Start     int  // Cell the token walks from
	End       int  // Cell the token lands on
	Steps     int  // Single-cell moves from Start to End
	Prize     int  // Prize of the landing cell
	Trap      bool // Whether the landing cell is the trap
	Rigged    bool // Whether the sum was substituted
}

// Outcome classifies a resolved prize.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeLoss
	OutcomeWin
	OutcomeJackpot
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoss:
		return "loss"
	case OutcomeWin:
		return "win"
	case OutcomeJackpot:
		return "jackpot"
	default:
		return "none"
	}
}

// Outcome classifies the round. The trap is always a loss.
func (r RoundResult) Outcome(jackpotAt int) Outcome {
	switch {
	case r.Trap || r.Prize <= 0:
		return OutcomeLoss
	case r.Prize >= jackpotAt:
		return OutcomeJackpot
	default:
		return OutcomeWin
	}
}

// BoardConfigurationError reports a dice sum that no cell label matches.
// The result returned with it is the safe zero-prize default.
type BoardConfigurationError struct {
	Variant Variant
	Sum     int
}

func (e *BoardConfigurationError) Error() string {
	return fmt.Sprintf("loop: board has no cell labelled %d (variant %s)", e.Sum, e.Variant)
}

// ErrInvalidDirection is returned when a round is resolved without a direction.
var ErrInvalidDirection = errors.New("loop: direction must be clockwise or counter-clockwise")

// Resolver computes round outcomes for one board and variant.
// It is stateless; live play and the simulator share the same instance.
type Resolver struct {
	board   *Board
	variant Variant
	rules   Rules
}

// NewResolver creates a resolver.
func NewResolver(board *Board, variant Variant, rules Rules) *Resolver {
	return &Resolver{board: board, variant: variant, rules: rules}
}

// Board returns the board the resolver plays on.
func (r *Resolver) Board() *Board {
	return r.board
}

// Variant returns the walking variant.
func (r *Resolver) Variant() Variant {
	return r.variant
}

// Rules returns the resolver's rules.
func (r *Resolver) Rules() Rules {
	return r.rules
}

// Resolve plays one round. current is the token's cell and only matters for
// VariantRigged; the label-matched variants derive the start from the sum.
//
// When the sum cannot be mapped to a cell, Resolve returns a
// *BoardConfigurationError together with a usable zero-prize result.
func (r *Resolver) Resolve(rng Rand, dir Direction, current int) (RoundResult, error) {
	if !dir.Valid() {
		return RoundResult{}, ErrInvalidDirection
	}

	if r.variant == VariantRigged {
		return r.resolveRigged(rng, dir, current), nil
	}
	return r.resolveMatched(rng, dir)
}

func (r *Resolver) resolveRigged(rng Rand, dir Direction, current int) RoundResult {
	start := r.board.Normalize(current)
	bad := r.BadSums(dir, start)

	res := RoundResult{Variant: r.variant, Direction: dir, Start: start}

	if rng.Float64() < r.rules.RigRate && len(bad) > 0 {
		pool := bad
		if mid := r.plausible(bad); len(mid) > 0 {
			pool = mid
		}
		res.Sum = pool[rng.Intn(len(pool))]
		res.Dice = DistributeSum(rng, res.Sum)
		res.Rigged = true
	} else {
		res.Dice = RollDice(rng)
		res.Sum = res.Dice.Sum()
	}

	res.Steps = res.Sum
	r.land(&res)
	return res
}

func (r *Resolver) resolveMatched(rng Rand, dir Direction) (RoundResult, error) {
	dice := RollDice(rng)
	res := RoundResult{
		Variant:   r.variant,
		Direction: dir,
		Dice:      dice,
		Sum:       dice.Sum(),
	}

	start, ok := r.board.IndexOfLabel(res.Sum)
	if !ok {
		return res, &BoardConfigurationError{Variant: r.variant, Sum: res.Sum}
	}

	res.Start = start
	res.Steps = res.Sum
	if r.variant == VariantCorrected {
		res.Steps = res.Sum - 1
	}
	r.land(&res)
	return res, nil
}

func (r *Resolver) land(res *RoundResult) {
	res.End = r.board.Advance(res.Start, res.Steps, res.Direction)
	cell := r.board.Cell(res.End)
	res.Prize = cell.Prize
	res.Trap = cell.Trap
}

// BadSums lists, in ascending order, the dice sums that would land the token
// on a poor cell when moving from current in dir.
func (r *Resolver) BadSums(dir Direction, current int) []int {
	var bad []int
	for sum := MinSum; sum <= MaxSum; sum++ {
		if r.isBad(r.board.Cell(r.board.Advance(current, sum, dir))) {
			bad = append(bad, sum)
		}
	}
	return bad
}

func (r *Resolver) isBad(c Cell) bool {
	return c.Trap || c.Prize <= r.rules.BadPrizeCeiling
}

func (r *Resolver) plausible(sums []int) []int {
	var out []int
	for _, s := range sums {
		if s >= r.rules.PlausibleMin && s <= r.rules.PlausibleMax {
			out = append(out, s)
		}
	}
	return out
}
