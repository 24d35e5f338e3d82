package domain

// RuleRow is the serialized form of a Rule: one row of the transition table.
type RuleRow struct {
	From   string `json:"from" yaml:"from" mapstructure:"from"`
	Input  string `json:"input" yaml:"input" mapstructure:"input"`
	Top    string `json:"top" yaml:"top" mapstructure:"top"`
	To     string `json:"to" yaml:"to" mapstructure:"to"`
	Action string `json:"action" yaml:"action" mapstructure:"action"`
}

// Definition is the static configuration of a table as stored in YAML or JSON files.
type Definition struct {
	Name          string    `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	States        []string  `json:"states,omitempty" yaml:"states,omitempty" mapstructure:"states"`
	Inputs        []string  `json:"inputs,omitempty" yaml:"inputs,omitempty" mapstructure:"inputs"`
	StackAlphabet []string  `json:"stack_alphabet,omitempty" yaml:"stack_alphabet,omitempty" mapstructure:"stack_alphabet"`
	Bottom        string    `json:"bottom,omitempty" yaml:"bottom,omitempty" mapstructure:"bottom"`
	Initial       string    `json:"initial" yaml:"initial" mapstructure:"initial"`
	Accepting     []string  `json:"accepting" yaml:"accepting" mapstructure:"accepting"`
	Rules         []RuleRow `json:"rules" yaml:"rules" mapstructure:"rules"`
}

// FromDefinition parses the rows of def and builds the table through FromRules.
func FromDefinition(def Definition) (*TransitionTable, error) {
	var errs []error
	rules := make([]Rule, 0, len(def.Rules))
	for i, row := range def.Rules {
		action, err := ParseStackAction(row.Action)
		if err != nil {
			ce := err.(*ConfigError)
			errs = append(errs, configErrorf(ce.Kind, "row %d: %s", i+1, ce.Detail))
			continue
		}
		rules = append(rules, Rule{
			From:    State(row.From),
			Command: Command(row.Input),
			Top:     Symbol(row.Top),
			To:      State(row.To),
			Action:  action,
		})
	}

	opts := []TableOption{WithName(def.Name), WithBottom(Symbol(def.Bottom))}
	for _, s := range def.States {
		opts = append(opts, WithStates(State(s)))
	}
	for _, c := range def.Inputs {
		opts = append(opts, WithInputAlphabet(Command(c)))
	}
	for _, s := range def.StackAlphabet {
		opts = append(opts, WithStackAlphabet(Symbol(s)))
	}

	accepting := make([]State, len(def.Accepting))
	for i, s := range def.Accepting {
		accepting[i] = State(s)
	}

	table, err := FromRules(rules, State(def.Initial), accepting, opts...)
	if err != nil {
		errs = append(errs, ConfigErrorList(err)...)
	}
	if len(errs) > 0 {
		return nil, &AggregateConfigError{Errors: errs}
	}
	return table, nil
}

// ConfigErrorList flattens err into its individual configuration errors.
func ConfigErrorList(err error) []error {
	if aggr, ok := err.(*AggregateConfigError); ok {
		return aggr.Errors
	}
	return []error{err}
}

// Definition serializes the table back into its row form.
// FromDefinition(t.Definition()) yields an equivalent table.
func (t *TransitionTable) Definition() Definition {
	def := Definition{
		Name:    t.name,
		Bottom:  string(t.bottom),
		Initial: string(t.initial),
	}
	for _, s := range t.states {
		def.States = append(def.States, string(s))
	}
	for _, c := range t.inputs {
		def.Inputs = append(def.Inputs, string(c))
	}
	for _, s := range t.alphabet {
		def.StackAlphabet = append(def.StackAlphabet, string(s))
	}
	for _, s := range t.accepting {
		def.Accepting = append(def.Accepting, string(s))
	}
	for _, r := range t.Rules() {
		def.Rules = append(def.Rules, RuleRow{
			From:   string(r.From),
			Input:  string(r.Command),
			Top:    string(r.Top),
			To:     string(r.To),
			Action: r.Action.String(),
		})
	}
	return def
}
