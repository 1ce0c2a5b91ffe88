package core

// StepEvent is one discrete token move produced for the animation driver.
type StepEvent struct {
	Seq   int  // 1-based position in the walk
	Index int  // Cell the token enters
	Final bool // Whether this is the landing cell
}

// Path expands a round into the cells the token enters, in order.
// A round with zero steps yields no events; the token stays on Start.
func Path(b *Board, res RoundResult) []StepEvent {
	if res.Steps <= 0 {
		return nil
	}

	events := make([]StepEvent, res.Steps)
	idx := res.Start
	for i := range events {
		idx = b.Advance(idx, 1, res.Direction)
		events[i] = StepEvent{
			Seq:   i + 1,
			Index: idx,
			Final: i == res.Steps-1,
		}
	}
	return events
}
