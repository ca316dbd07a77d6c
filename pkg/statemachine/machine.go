package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// machine is a thread-safe in-memory Machine. Transitions are indexed by
// [fromState][event] for O(1) lookup; multiple transitions may share a
// from/event pair to support guard-based branching, in which case the first
// transition whose guards all pass wins.
type machine struct {
	current     State
	transitions map[string]map[string][]Transition
	mu          sync.RWMutex
}

// New creates a Machine seeded at the given initial state.
func New(initial State, opts ...Option) (Machine, error) {
	if initial == nil {
		return nil, ErrNilState
	}

	m := &machine{
		current:     initial,
		transitions: make(map[string]map[string][]Transition),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// MustNew is like New but panics on configuration errors. Transition tables
// are static program data, so a failure here is a programming mistake that
// should prevent startup.
func MustNew(initial State, opts ...Option) Machine {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return m
}

func (m *machine) add(t Transition) error {
	if t.From == nil || t.To == nil || t.Event == nil {
		return ErrNilState
	}

	from, event := t.From.Name(), t.Event.Name()
	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[string][]Transition)
	}
	m.transitions[from][event] = append(m.transitions[from][event], t)
	return nil
}

func (m *machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrNilEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.match(ctx, event, data)
	if err != nil {
		return err
	}

	// Actions run before the state change; any failure aborts the transition.
	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return fmt.Errorf("transition action: %w", err)
		}
	}

	m.current = t.To
	return nil
}

func (m *machine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.match(ctx, event, data)
	return err == nil
}

// match finds the first transition from the current state for the event whose
// guards all pass. Callers must hold at least a read lock.
func (m *machine) match(ctx context.Context, event Event, data any) (*Transition, error) {
	from, eventName := m.current.Name(), event.Name()

	candidates := m.transitions[from][eventName]
	if len(candidates) == 0 {
		return nil, &TransitionError{State: from, Event: eventName, Reason: ReasonNoTransition}
	}

	for i := range candidates {
		t := &candidates[i]
		passed := true
		for _, guard := range t.Guards {
			if guard != nil && !guard(ctx, m.current, event, data) {
				passed = false
				break
			}
		}
		if passed {
			return t, nil
		}
	}

	return nil, &TransitionError{State: from, Event: eventName, Reason: ReasonRejected}
}
