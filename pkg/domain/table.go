package domain

// TransitionTable is the immutable rule set of a deterministic pushdown automaton.
// It is safe to share across any number of concurrent runs.
type TransitionTable struct {
	name      string
	rules     map[RuleKey]Rule
	order     []RuleKey
	initial   State
	accepting []State
	accept    map[State]struct{}
	states    []State
	bottom    Symbol
	inputs    []Command
	inputSet  map[Command]struct{}
	alphabet  []Symbol
}

type tableConfig struct {
	name     string
	states   []State
	inputs   []Command
	alphabet []Symbol
	bottom   Symbol
}

// TableOption configures optional declarations checked by FromRules.
type TableOption func(*tableConfig)

// WithName labels the table (used by logs, metrics and run records).
func WithName(name string) TableOption {
	return func(c *tableConfig) {
		c.name = name
	}
}

// WithStates declares the state set explicitly.
// Without it, the declared states are those mentioned by the rules.
func WithStates(states ...State) TableOption {
	return func(c *tableConfig) {
		c.states = append(c.states, states...)
	}
}

// WithInputAlphabet declares the commands the automaton may consume.
func WithInputAlphabet(cmds ...Command) TableOption {
	return func(c *tableConfig) {
		c.inputs = append(c.inputs, cmds...)
	}
}

// WithStackAlphabet declares the stack symbols rules may match or push.
// The bottom marker is always part of the alphabet.
func WithStackAlphabet(symbols ...Symbol) TableOption {
	return func(c *tableConfig) {
		c.alphabet = append(c.alphabet, symbols...)
	}
}

// WithBottom sets the bottom marker (default DefaultBottom).
func WithBottom(sym Symbol) TableOption {
	return func(c *tableConfig) {
		c.bottom = sym
	}
}

// FromRules validates rules and builds a TransitionTable.
// Every problem found is reported at once through an *AggregateConfigError,
// which matches ErrConfiguration.
func FromRules(rules []Rule, initial State, accepting []State, opts ...TableOption) (*TransitionTable, error) {
	cfg := tableConfig{bottom: DefaultBottom}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.bottom == "" {
		cfg.bottom = DefaultBottom
	}

	var errs []error
	add := func(kind ConfigErrorKind, format string, args ...any) {
		errs = append(errs, configErrorf(kind, format, args...))
	}

	t := &TransitionTable{
		name:   cfg.name,
		rules:  make(map[RuleKey]Rule, len(rules)),
		order:  make([]RuleKey, 0, len(rules)),
		accept: make(map[State]struct{}, len(accepting)),
		bottom: cfg.bottom,
	}

	stateSet := make(map[State]struct{})
	explicitStates := len(cfg.states) > 0
	if explicitStates {
		for _, s := range cfg.states {
			if _, dup := stateSet[s]; !dup {
				stateSet[s] = struct{}{}
				t.states = append(t.states, s)
			}
		}
	} else {
		for _, r := range rules {
			for _, s := range []State{r.From, r.To} {
				if _, seen := stateSet[s]; !seen && s != "" {
					stateSet[s] = struct{}{}
					t.states = append(t.states, s)
				}
			}
		}
	}

	if len(cfg.inputs) > 0 {
		t.inputSet = make(map[Command]struct{}, len(cfg.inputs))
		for _, c := range cfg.inputs {
			if _, dup := t.inputSet[c]; !dup {
				t.inputSet[c] = struct{}{}
				t.inputs = append(t.inputs, c)
			}
		}
	}

	var symbolSet map[Symbol]struct{}
	if len(cfg.alphabet) > 0 {
		symbolSet = map[Symbol]struct{}{cfg.bottom: {}}
		for _, s := range cfg.alphabet {
			if s == cfg.bottom {
				continue
			}
			if _, dup := symbolSet[s]; !dup {
				symbolSet[s] = struct{}{}
				t.alphabet = append(t.alphabet, s)
			}
		}
	}

	declaredState := func(s State) bool {
		_, ok := stateSet[s]
		return ok
	}
	declaredSymbol := func(s Symbol) bool {
		if symbolSet == nil {
			return true
		}
		_, ok := symbolSet[s]
		return ok
	}

	if initial == "" {
		add(KindMissingInitial, "no initial state given")
	} else if !declaredState(initial) {
		add(KindUndeclaredState, "initial state %q is not declared", initial)
	}
	t.initial = initial

	if len(accepting) == 0 {
		add(KindNoAccepting, "at least one accepting state is required")
	}
	for _, s := range accepting {
		if _, dup := t.accept[s]; dup {
			continue
		}
		if !declaredState(s) {
			add(KindUndeclaredState, "accepting state %q is not declared", s)
		}
		t.accept[s] = struct{}{}
		t.accepting = append(t.accepting, s)
	}

	for i, r := range rules {
		if r.From == "" || r.To == "" || r.Command == "" || r.Top == "" {
			add(KindMalformedRule, "rule %d %s has empty fields", i+1, r)
			continue
		}
		if explicitStates {
			if !declaredState(r.From) {
				add(KindUndeclaredState, "rule %d %s: state %q is not declared", i+1, r, r.From)
			}
			if !declaredState(r.To) {
				add(KindUndeclaredState, "rule %d %s: state %q is not declared", i+1, r, r.To)
			}
		}
		if t.inputSet != nil {
			if _, ok := t.inputSet[r.Command]; !ok {
				add(KindUndeclaredCommand, "rule %d %s: command %q is not in the input alphabet", i+1, r, r.Command)
			}
		}
		if !declaredSymbol(r.Top) {
			add(KindUndeclaredSymbol, "rule %d %s: stack-top %q is not in the stack alphabet", i+1, r, r.Top)
		}

		switch r.Action.Op {
		case OpPush:
			switch {
			case r.Action.Symbol == "":
				add(KindMalformedAction, "rule %d %s: push without a symbol", i+1, r)
			case !Pushable(r.Action.Symbol):
				add(KindMalformedAction, "rule %d %s: pushed symbol %q cannot contain spaces or parentheses", i+1, r, r.Action.Symbol)
			case r.Action.Symbol == t.bottom:
				add(KindBottomMisuse, "rule %d %s: bottom marker %q cannot be pushed", i+1, r, t.bottom)
			case !declaredSymbol(r.Action.Symbol):
				add(KindUndeclaredSymbol, "rule %d %s: pushed symbol %q is not in the stack alphabet", i+1, r, r.Action.Symbol)
			}
		case OpPop:
			if r.Top == t.bottom {
				add(KindBottomMisuse, "rule %d %s: bottom marker %q cannot be popped", i+1, r, t.bottom)
			}
		case OpNone:
		default:
			add(KindMalformedAction, "rule %d %s: unknown stack operation %d", i+1, r, r.Action.Op)
		}

		key := r.Key()
		if prev, dup := t.rules[key]; dup {
			add(KindDuplicateRule, "rules %s and %s share key %s", prev, r, key)
			continue
		}
		t.rules[key] = r
		t.order = append(t.order, key)
	}

	if len(errs) > 0 {
		return nil, &AggregateConfigError{Errors: errs}
	}
	return t, nil
}

// Lookup returns the unique rule matching (state, cmd, top).
func (t *TransitionTable) Lookup(state State, cmd Command, top Symbol) (Rule, bool) {
	r, ok := t.rules[RuleKey{State: state, Command: cmd, Top: top}]
	return r, ok
}

// Name returns the table label, possibly empty.
func (t *TransitionTable) Name() string { return t.name }

// Initial returns the initial state.
func (t *TransitionTable) Initial() State { return t.initial }

// Bottom returns the bottom marker.
func (t *TransitionTable) Bottom() Symbol { return t.bottom }

// IsAccepting reports whether s is a final state.
func (t *TransitionTable) IsAccepting(s State) bool {
	_, ok := t.accept[s]
	return ok
}

// Accepting returns the accepting states in declaration order.
func (t *TransitionTable) Accepting() []State {
	return append([]State(nil), t.accepting...)
}

// States returns the declared states in declaration order.
func (t *TransitionTable) States() []State {
	return append([]State(nil), t.states...)
}

// InputAlphabet returns the declared commands, or nil if none were declared.
func (t *TransitionTable) InputAlphabet() []Command {
	if t.inputs == nil {
		return nil
	}
	return append([]Command(nil), t.inputs...)
}

// StackAlphabet returns the declared stack symbols (without the bottom marker),
// or nil if none were declared.
func (t *TransitionTable) StackAlphabet() []Symbol {
	if t.alphabet == nil {
		return nil
	}
	return append([]Symbol(nil), t.alphabet...)
}

// Accepts reports whether cmd belongs to the input alphabet.
// A table without a declared alphabet accepts every command.
func (t *TransitionTable) Accepts(cmd Command) bool {
	if t.inputSet == nil {
		return true
	}
	_, ok := t.inputSet[cmd]
	return ok
}

// Rules returns a copy of the rules in the order they were given.
func (t *TransitionTable) Rules() []Rule {
	out := make([]Rule, len(t.order))
	for i, k := range t.order {
		out[i] = t.rules[k]
	}
	return out
}

// Len returns the number of rules.
func (t *TransitionTable) Len() int { return len(t.order) }
