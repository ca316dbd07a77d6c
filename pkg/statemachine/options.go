package statemachine

// Option configures a machine during construction.
type Option func(*machine) error

// WithTransition registers a single transition.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(m *machine) error {
		t := Transition{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		return m.add(t)
	}
}

// WithTransitions registers multiple transitions at once.
func WithTransitions(transitions ...Transition) Option {
	return func(m *machine) error {
		for _, t := range transitions {
			if err := m.add(t); err != nil {
				return err
			}
		}
		return nil
	}
}

// TransitionOption configures a single transition.
type TransitionOption func(*Transition)

// WithGuard appends a guard to the transition. Nil guards are ignored.
func WithGuard(guard Guard) TransitionOption {
	return func(t *Transition) {
		if guard != nil {
			t.Guards = append(t.Guards, guard)
		}
	}
}

// WithAction appends an action to the transition. Nil actions are ignored.
func WithAction(action Action) TransitionOption {
	return func(t *Transition) {
		if action != nil {
			t.Actions = append(t.Actions, action)
		}
	}
}
