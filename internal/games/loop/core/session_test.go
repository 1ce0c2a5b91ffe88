package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// trapRound finds a direction and throw that land on the trap for the variant.
func trapRound(t *testing.T, r *Resolver) (Direction, int) {
	t.Helper()
	b := r.Board()
	for _, dir := range []Direction{Clockwise, CounterClockwise} {
		for sum := MinSum; sum <= MaxSum; sum++ {
			start := b.Home()
			steps := sum
			if r.Variant() != VariantRigged {
				start, _ = b.IndexOfLabel(sum)
				if r.Variant() == VariantCorrected {
					steps--
				}
			}
			if b.Advance(start, steps, dir) == b.Trap() {
				return dir, sum
			}
		}
	}
	t.Fatalf("trap unreachable for variant %s", r.Variant())
	return NoDirection, 0
}

func TestTrapAlwaysCostsItsPrize(t *testing.T) {
	// The stock board has no label-matched classic walk onto the trap, so the
	// classic case swaps the trap with its neighbour.
	swapped := DefaultCells()
	swapped[17], swapped[18] = swapped[18], swapped[17]
	classicBoard, err := NewBoard(swapped)
	require.NoError(t, err)

	resolvers := []*Resolver{
		NewResolver(MustDefaultBoard(), VariantRigged, DefaultRules()),
		NewResolver(classicBoard, VariantClassic, DefaultRules()),
		NewResolver(MustDefaultBoard(), VariantCorrected, DefaultRules()),
	}

	for _, r := range resolvers {
		t.Run(string(r.Variant()), func(t *testing.T) {
			dir, sum := trapRound(t, r)

			s := NewSession(r.Board(), 1000, 100)
			s, err := s.ChooseDirection(dir)
			require.NoError(t, err)

			// 0.99 keeps the rigged variant honest; others ignore it.
			s, err = s.Roll(r, newScripted([]float64{0.99}, throwFor(sum)...))
			require.NoError(t, err)
			require.Equal(t, 900, s.Balance)
			require.True(t, s.IsRolling())

			before := s.Balance
			s, err = s.Complete()
			require.NoError(t, err)

			assert.Equal(t, 27, r.Board().Cell(s.Cell).Label)
			assert.Equal(t, before-580, s.Balance)
			assert.True(t, s.Round.Trap)
			assert.Equal(t, OutcomeLoss, s.Round.Outcome(1000))
		})
	}
}

func TestRollRejectedWhenBroke(t *testing.T) {
	r := NewResolver(MustDefaultBoard(), VariantCorrected, DefaultRules())

	s := NewSession(r.Board(), 50, 100)
	s, err := s.ChooseDirection(Clockwise)
	require.NoError(t, err)
	assert.True(t, s.Bankrupt())

	next, err := s.Roll(r, newScripted(nil))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, s, next)
	assert.Equal(t, 50, next.Balance)
	assert.Equal(t, PhaseDirectionChosen, next.Phase)
	assert.Nil(t, next.Round)
}

func TestSessionLifecycle(t *testing.T) {
	r := NewResolver(MustDefaultBoard(), VariantCorrected, DefaultRules())
	s := NewSession(r.Board(), 10000, 100)

	require.Equal(t, PhaseIdle, s.Phase)
	require.Equal(t, 4, s.Cell)

	_, err := s.Roll(r, newScripted(nil))
	assert.ErrorIs(t, err, ErrNoDirection)

	_, err = s.Complete()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	s, err = s.ChooseDirection(CounterClockwise)
	require.NoError(t, err)
	s, err = s.ChooseDirection(Clockwise)
	require.NoError(t, err)
	assert.Equal(t, Clockwise, s.Direction)

	s, err = s.Roll(r, newScripted(nil, throwFor(20)...))
	require.NoError(t, err)
	assert.Equal(t, PhaseRolling, s.Phase)
	assert.Equal(t, 9900, s.Balance)

	_, err = s.ChooseDirection(CounterClockwise)
	assert.ErrorIs(t, err, ErrRollInProgress)
	_, err = s.Roll(r, newScripted(nil))
	assert.ErrorIs(t, err, ErrRollInProgress)
	_, err = s.Acknowledge()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	round := *s.Round
	s, err = s.Complete()
	require.NoError(t, err)
	assert.Equal(t, PhaseResolved, s.Phase)
	assert.Equal(t, round.End, s.Cell)
	assert.Equal(t, 9900+round.Prize, s.Balance)
	assert.Equal(t, 1, s.Rounds)

	_, err = s.ChooseDirection(Clockwise)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	s, err = s.Acknowledge()
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, s.Home, s.Cell)
	assert.Equal(t, NoDirection, s.Direction)
	assert.Nil(t, s.Round)
}

func TestChooseDirectionRejectsNone(t *testing.T) {
	s := NewSession(MustDefaultBoard(), 100, 100)
	_, err := s.ChooseDirection(NoDirection)
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestRollKeepsRoundOnConfigurationError(t *testing.T) {
	r := NewResolver(boardWithout(30), VariantClassic, DefaultRules())
	s := NewSession(r.Board(), 1000, 100)
	s, err := s.ChooseDirection(Clockwise)
	require.NoError(t, err)

	s, err = s.Roll(r, newScripted(nil, throwFor(30)...))
	var cfgErr *BoardConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.True(t, s.IsRolling())

	s, err = s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 900, s.Balance)
	assert.Equal(t, 0, s.Cell)
}

// Random action sequences never break the accounting or the index bounds.
func TestSessionInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		variant := rapid.SampledFrom(Variants()).Draw(t, "variant")
		r := NewResolver(MustDefaultBoard(), variant, DefaultRules())
		rng := newScripted(nil)
		rng.fallback.Seed(rapid.Int64().Draw(t, "seed"))

		start := rapid.IntRange(0, 2000).Draw(t, "balance")
		s := NewSession(r.Board(), start, 100)
		expected := start

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			prev := s
			var err error
			switch rapid.IntRange(0, 3).Draw(t, "action") {
			case 0:
				dir := rapid.SampledFrom([]Direction{Clockwise, CounterClockwise}).Draw(t, "dir")
				s, err = s.ChooseDirection(dir)
			case 1:
				s, err = s.Roll(r, rng)
				if err == nil {
					expected -= s.Stake
				}
			case 2:
				s, err = s.Complete()
				if err == nil {
					expected += s.Round.Prize
				}
			case 3:
				s, err = s.Acknowledge()
			}

			if err != nil && s != prev {
				t.Fatalf("rejected transition changed the session: %+v -> %+v", prev, s)
			}
			if s.Cell < 0 || s.Cell >= BoardSize {
				t.Fatalf("cell %d out of range", s.Cell)
			}
			if s.Balance != expected {
				t.Fatalf("balance %d, expected %d", s.Balance, expected)
			}
			if (s.Round != nil) != (s.Phase == PhaseRolling || s.Phase == PhaseResolved) {
				t.Fatalf("round presence does not match phase %s", s.Phase)
			}
		}
	})
}
