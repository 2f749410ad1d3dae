package cuecard

import "fmt"

// State is a step of one submission cycle.
type State string

const (
	StateIdle          State = "idle"
	StateSubmitted     State = "submitted"
	StateAwaitingModel State = "awaiting_model"
	StateParsed        State = "parsed"
	StateParseFailed   State = "parse_failed"
)

// transitions lists the legal next states. Submitted is reachable from every
// state because a new submission always restarts the cycle.
var transitions = map[State][]State{
	StateIdle:          {StateSubmitted},
	StateSubmitted:     {StateAwaitingModel, StateIdle},
	StateAwaitingModel: {StateParsed, StateParseFailed, StateIdle},
	StateParsed:        {StateIdle},
	StateParseFailed:   {StateIdle},
}

// Cycle tracks the state of a single submission.
type Cycle struct {
	State State
}

// NewCycle returns a cycle in StateIdle.
func NewCycle() *Cycle { return &Cycle{State: StateIdle} }

// Advance moves the cycle to next or reports an illegal transition.
func (c *Cycle) Advance(next State) error {
	if next == StateSubmitted {
		c.State = next
		return nil
	}
	for _, s := range transitions[c.State] {
		if s == next {
			c.State = next
			return nil
		}
	}
	return fmt.Errorf("illegal cycle transition %s -> %s", c.State, next)
}

// Terminal reports whether the cycle ended with a card or a parse failure.
func (c *Cycle) Terminal() bool {
	return c.State == StateParsed || c.State == StateParseFailed
}
