package core

import (
	"errors"
	"fmt"
)

// Phase is the position of a session in the round lifecycle:
// Idle -> DirectionChosen -> Rolling -> Resolved -> Idle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDirectionChosen
	PhaseRolling
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDirectionChosen:
		return "direction_chosen"
	case PhaseRolling:
		return "rolling"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Session transition errors.
var (
	ErrRollInProgress      = errors.New("loop: a roll is in progress")
	ErrNoDirection         = errors.New("loop: choose a direction before rolling")
	ErrInsufficientBalance = errors.New("loop: balance is below the stake")
	ErrInvalidTransition   = errors.New("loop: invalid transition")
)

// Session is the whole mutable state of a play session. Transitions are
// methods on a value: they return the next session and never modify the
// receiver, so a rejected transition leaves the caller's copy untouched.
type Session struct {
	Balance   int
	Stake     int
	Cell      int // Token position
	Home      int // Where the token returns after each round
	Direction Direction
	Phase     Phase
	Round     *RoundResult // Set from Roll until Acknowledge
	Rounds    int          // Completed rounds
}

// NewSession starts an idle session with the token on the board's home cell.
func NewSession(board *Board, balance, stake int) Session {
	return Session{
		Balance: balance,
		Stake:   stake,
		Cell:    board.Home(),
		Home:    board.Home(),
		Phase:   PhaseIdle,
	}
}

// IsRolling reports whether a round is being played out.
func (s Session) IsRolling() bool {
	return s.Phase == PhaseRolling
}

// Bankrupt reports whether the session is idle and cannot afford a roll.
func (s Session) Bankrupt() bool {
	return (s.Phase == PhaseIdle || s.Phase == PhaseDirectionChosen) && s.Balance < s.Stake
}

// ChooseDirection sets the travel direction. It may be changed freely until
// the dice are rolled.
func (s Session) ChooseDirection(d Direction) (Session, error) {
	switch s.Phase {
	case PhaseRolling:
		return s, ErrRollInProgress
	case PhaseResolved:
		return s, fmt.Errorf("%w: acknowledge the result first", ErrInvalidTransition)
	}
	if !d.Valid() {
		return s, ErrInvalidDirection
	}

	s.Direction = d
	s.Phase = PhaseDirectionChosen
	return s, nil
}

// Roll pays the stake and resolves the round. The prize is not applied until
// Complete, after the presentation has walked the token.
//
// A *BoardConfigurationError from the resolver is returned together with the
// advanced session; the round plays out with the zero-prize default.
func (s Session) Roll(r *Resolver, rng Rand) (Session, error) {
	switch s.Phase {
	case PhaseRolling:
		return s, ErrRollInProgress
	case PhaseDirectionChosen:
	case PhaseIdle:
		return s, ErrNoDirection
	default:
		return s, fmt.Errorf("%w: cannot roll while %s", ErrInvalidTransition, s.Phase)
	}
	if s.Balance < s.Stake {
		return s, fmt.Errorf("%w: balance %d, stake %d", ErrInsufficientBalance, s.Balance, s.Stake)
	}

	res, err := r.Resolve(rng, s.Direction, s.Cell)
	var cfgErr *BoardConfigurationError
	if err != nil && !errors.As(err, &cfgErr) {
		return s, err
	}

	s.Balance -= s.Stake
	s.Round = &res
	s.Phase = PhaseRolling
	return s, err
}

// Complete finishes the movement: the token lands and the prize is applied.
func (s Session) Complete() (Session, error) {
	if s.Phase != PhaseRolling || s.Round == nil {
		return s, fmt.Errorf("%w: nothing to complete while %s", ErrInvalidTransition, s.Phase)
	}

	s.Cell = s.Round.End
	s.Balance += s.Round.Prize
	s.Rounds++
	s.Phase = PhaseResolved
	return s, nil
}

// Acknowledge dismisses the result and sends the token home.
func (s Session) Acknowledge() (Session, error) {
	if s.Phase != PhaseResolved {
		return s, fmt.Errorf("%w: nothing to acknowledge while %s", ErrInvalidTransition, s.Phase)
	}

	s.Round = nil
	s.Direction = NoDirection
	s.Cell = s.Home
	s.Phase = PhaseIdle
	return s, nil
}
