package cuecard

import "testing"

func TestCycle_HappyPath(t *testing.T) {
	c := NewCycle()
	for _, s := range []State{StateSubmitted, StateAwaitingModel, StateParsed} {
		if err := c.Advance(s); err != nil {
			t.Fatalf("Advance(%s): %v", s, err)
		}
	}
	if !c.Terminal() {
		t.Error("Terminal() = false after Parsed")
	}
	if err := c.Advance(StateIdle); err != nil {
		t.Fatalf("Advance(idle): %v", err)
	}
}

func TestCycle_ResubmitFromAnyState(t *testing.T) {
	for _, from := range []State{StateIdle, StateSubmitted, StateAwaitingModel, StateParsed, StateParseFailed} {
		c := &Cycle{State: from}
		if err := c.Advance(StateSubmitted); err != nil {
			t.Errorf("Advance(submitted) from %s: %v", from, err)
		}
	}
}

func TestCycle_IllegalTransitions(t *testing.T) {
	tests := []struct {
		from, to State
	}{
		{StateIdle, StateParsed},
		{StateSubmitted, StateParseFailed},
		{StateParsed, StateParseFailed},
		{StateParseFailed, StateAwaitingModel},
	}
	for _, tt := range tests {
		c := &Cycle{State: tt.from}
		if err := c.Advance(tt.to); err == nil {
			t.Errorf("Advance %s -> %s succeeded, want error", tt.from, tt.to)
		}
		if c.State != tt.from {
			t.Errorf("state changed to %s after illegal transition", c.State)
		}
	}
}

func TestCycle_Terminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, false},
		{StateSubmitted, false},
		{StateAwaitingModel, false},
		{StateParsed, true},
		{StateParseFailed, true},
	}
	for _, tt := range tests {
		c := &Cycle{State: tt.state}
		if got := c.Terminal(); got != tt.want {
			t.Errorf("Terminal() in %s = %v, want %v", tt.state, got, tt.want)
		}
	}
}
