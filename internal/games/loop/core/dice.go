package core

// Dice constants. Five six-sided dice give sums from 5 to 30, one sum per
// cell label on the stock board.
const (
	DiceCount = 5
	DieFaces  = 6
	MinSum    = DiceCount
	MaxSum    = DiceCount * DieFaces
)

// Rand is the source of randomness used by every rule in this package.
// *math/rand.Rand satisfies it; tests inject scripted sources.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Dice holds the faces of one throw.
type Dice [DiceCount]int

// Sum adds up the faces.
func (d Dice) Sum() int {
	total := 0
	for _, f := range d {
		total += f
	}
	return total
}

// RollDice throws five independent fair dice.
func RollDice(rng Rand) Dice {
	var d Dice
	for i := range d {
		d[i] = rng.Intn(DieFaces) + 1
	}
	return d
}

// DistributeSum produces faces that add up to sum, for showing a chosen sum
// on the dice. Every die starts at 1 and pips are handed to random dice that
// are not yet at 6. Sums outside the dice range are clamped.
func DistributeSum(rng Rand, sum int) Dice {
	d := Dice{1, 1, 1, 1, 1}
	remain := clampSum(sum) - MinSum
	for remain > 0 {
		i := rng.Intn(DiceCount)
		if d[i] < DieFaces {
			d[i]++
			remain--
		}
	}
	return d
}

func clampSum(sum int) int {
	if sum < MinSum {
		return MinSum
	}
	if sum > MaxSum {
		return MaxSum
	}
	return sum
}
