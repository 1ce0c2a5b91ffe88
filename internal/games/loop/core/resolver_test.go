package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelMatchedStartsOnLabel(t *testing.T) {
	b := MustDefaultBoard()

	for _, variant := range []Variant{VariantClassic, VariantCorrected} {
		r := NewResolver(b, variant, DefaultRules())
		for _, dir := range []Direction{Clockwise, CounterClockwise} {
			for label := MinSum; label <= MaxSum; label++ {
				want, ok := b.IndexOfLabel(label)
				require.True(t, ok)

				res, err := r.Resolve(newScripted(nil, throwFor(label)...), dir, 0)
				require.NoError(t, err)

				assert.Equal(t, label, res.Sum, "%s %s", variant, dir)
				assert.Equal(t, want, res.Start, "%s %s label %d", variant, dir, label)
				assert.Equal(t, b.Cell(res.End).Prize, res.Prize)
				assert.False(t, res.Rigged)
			}
		}
	}
}

func TestLabelMatchedIgnoresCurrentIndex(t *testing.T) {
	r := NewResolver(MustDefaultBoard(), VariantClassic, DefaultRules())

	a, err := r.Resolve(newScripted(nil, throwFor(12)...), Clockwise, 0)
	require.NoError(t, err)
	b, err := r.Resolve(newScripted(nil, throwFor(12)...), Clockwise, 19)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCorrectedWalksOneStepLess(t *testing.T) {
	b := MustDefaultBoard()
	classic := NewResolver(b, VariantClassic, DefaultRules())
	corrected := NewResolver(b, VariantCorrected, DefaultRules())

	for _, dir := range []Direction{Clockwise, CounterClockwise} {
		for sum := MinSum; sum <= MaxSum; sum++ {
			rb, err := classic.Resolve(newScripted(nil, throwFor(sum)...), dir, 0)
			require.NoError(t, err)
			rc, err := corrected.Resolve(newScripted(nil, throwFor(sum)...), dir, 0)
			require.NoError(t, err)

			require.Equal(t, rb.Start, rc.Start)
			assert.Equal(t, b.Normalize(rc.Start+(sum-1)*int(dir)), rc.End)
			assert.Equal(t, b.Normalize(rb.Start+sum*int(dir)), rb.End)
			assert.Equal(t, rb.End, b.Advance(rc.End, 1, dir), "sum %d %s", sum, dir)
			assert.Equal(t, rb.Steps-1, rc.Steps)
		}
	}
}

func TestRiggedSubstitutesPlausibleBadSum(t *testing.T) {
	b := MustDefaultBoard()
	r := NewResolver(b, VariantRigged, DefaultRules())

	bad := r.BadSums(Clockwise, b.Home())
	require.Equal(t, []int{7, 11, 13, 15, 17, 19, 21, 25, 29}, bad)

	// 0.1 < rig rate, then pick the first of the mid-window bad sums
	res, err := r.Resolve(newScripted([]float64{0.1}, 0), Clockwise, b.Home())
	require.NoError(t, err)

	assert.True(t, res.Rigged)
	assert.Equal(t, 15, res.Sum)
	assert.Equal(t, 15, res.Dice.Sum())
	assert.Equal(t, b.Home(), res.Start)
	assert.Equal(t, b.Advance(b.Home(), 15, Clockwise), res.End)
	assert.LessOrEqual(t, res.Prize, 300)
}

func TestRiggedFallsBackToWholeBadSet(t *testing.T) {
	cells := make([]Cell, BoardSize)
	for i := range cells {
		cells[i] = Cell{Label: MinSum + i, Prize: 1000}
	}
	// Only one poor cell, reachable with sum 5 from index 0.
	cells[5].Prize = 100
	b, err := NewBoard(cells)
	require.NoError(t, err)

	r := NewResolver(b, VariantRigged, DefaultRules())
	require.Equal(t, []int{5}, r.BadSums(Clockwise, 0))

	res, err := r.Resolve(newScripted([]float64{0.5}, 0), Clockwise, 0)
	require.NoError(t, err)
	assert.True(t, res.Rigged)
	assert.Equal(t, 5, res.Sum)
	assert.Equal(t, 100, res.Prize)
}

func TestRiggedTrueRandomWhenNoBadSum(t *testing.T) {
	b := flatBoard()
	r := NewResolver(b, VariantRigged, DefaultRules())

	for start := 0; start < BoardSize; start++ {
		require.Empty(t, r.BadSums(Clockwise, start))
		require.Empty(t, r.BadSums(CounterClockwise, start))
	}

	// A draw below the rig rate still cannot rig anything.
	res, err := r.Resolve(newScripted([]float64{0.0}, throwFor(22)...), Clockwise, 3)
	require.NoError(t, err)

	assert.False(t, res.Rigged)
	assert.Equal(t, 22, res.Sum)
	assert.Equal(t, b.Advance(3, 22, Clockwise), res.End)
}

func TestRiggedHonoursRigRate(t *testing.T) {
	b := MustDefaultBoard()
	r := NewResolver(b, VariantRigged, DefaultRules())

	res, err := r.Resolve(newScripted([]float64{0.8}, throwFor(6)...), CounterClockwise, b.Home())
	require.NoError(t, err)

	assert.False(t, res.Rigged)
	assert.Equal(t, 6, res.Sum)
	assert.Equal(t, b.Advance(b.Home(), 6, CounterClockwise), res.End)
}

func TestUnmappableSumFallsBackToDefault(t *testing.T) {
	b := boardWithout(30)
	require.Error(t, b.Validate())

	for _, variant := range []Variant{VariantClassic, VariantCorrected} {
		r := NewResolver(b, variant, DefaultRules())

		res, err := r.Resolve(newScripted(nil, throwFor(30)...), Clockwise, 9)

		var cfgErr *BoardConfigurationError
		require.True(t, errors.As(err, &cfgErr), "%s: %v", variant, err)
		assert.Equal(t, 30, cfgErr.Sum)
		assert.Equal(t, variant, cfgErr.Variant)

		assert.Equal(t, 30, res.Sum)
		assert.Equal(t, 0, res.Start)
		assert.Equal(t, 0, res.End)
		assert.Equal(t, 0, res.Steps)
		assert.Equal(t, 0, res.Prize)
	}
}

func TestResolveRejectsMissingDirection(t *testing.T) {
	for _, variant := range Variants() {
		r := NewResolver(MustDefaultBoard(), variant, DefaultRules())
		_, err := r.Resolve(newScripted(nil), NoDirection, 0)
		assert.ErrorIs(t, err, ErrInvalidDirection)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		res  RoundResult
		want Outcome
	}{
		{"jackpot", RoundResult{Prize: 6000}, OutcomeJackpot},
		{"jackpot threshold", RoundResult{Prize: 1000}, OutcomeJackpot},
		{"win", RoundResult{Prize: 200}, OutcomeWin},
		{"zero", RoundResult{Prize: 0}, OutcomeLoss},
		{"trap", RoundResult{Prize: -580, Trap: true}, OutcomeLoss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Outcome(1000))
		})
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants() {
		got, err := ParseVariant(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := ParseVariant("fair")
	assert.Error(t, err)
}
