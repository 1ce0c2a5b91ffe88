package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathEndsOnLandingCell(t *testing.T) {
	b := MustDefaultBoard()

	for _, variant := range Variants() {
		r := NewResolver(b, variant, DefaultRules())
		for _, dir := range []Direction{Clockwise, CounterClockwise} {
			res, err := r.Resolve(newScripted([]float64{0.99}, throwFor(17)...), dir, b.Home())
			require.NoError(t, err)

			path := Path(b, res)
			require.Len(t, path, res.Steps)

			prev := res.Start
			for i, ev := range path {
				assert.Equal(t, i+1, ev.Seq)
				assert.Equal(t, b.Advance(prev, 1, dir), ev.Index)
				assert.Equal(t, i == len(path)-1, ev.Final)
				prev = ev.Index
			}
			assert.Equal(t, res.End, path[len(path)-1].Index)
		}
	}
}

func TestPathEmptyForDefaultResult(t *testing.T) {
	assert.Nil(t, Path(MustDefaultBoard(), RoundResult{Direction: Clockwise}))
}
