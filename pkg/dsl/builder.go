package dsl

import (
	"fmt"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Builder accumulates rules and table declarations.
type Builder struct {
	name      string
	initial   domain.State
	accepting []domain.State
	opts      []domain.TableOption
	states    map[domain.State]*StateBuilder
	rules     []domain.Rule
}

// New creates a new table builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[domain.State]*StateBuilder),
	}
}

// Initial sets the initial state.
func (b *Builder) Initial(s domain.State) *Builder {
	b.initial = s
	return b
}

// Accept adds accepting states.
func (b *Builder) Accept(states ...domain.State) *Builder {
	b.accepting = append(b.accepting, states...)
	return b
}

// Bottom overrides the bottom marker.
func (b *Builder) Bottom(sym domain.Symbol) *Builder {
	b.opts = append(b.opts, domain.WithBottom(sym))
	return b
}

// Inputs declares the input alphabet.
func (b *Builder) Inputs(cmds ...domain.Command) *Builder {
	b.opts = append(b.opts, domain.WithInputAlphabet(cmds...))
	return b
}

// Alphabet declares the stack alphabet.
func (b *Builder) Alphabet(symbols ...domain.Symbol) *Builder {
	b.opts = append(b.opts, domain.WithStackAlphabet(symbols...))
	return b
}

// State returns the builder for rules leaving s.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(s domain.State) *StateBuilder {
	if sb, ok := b.states[s]; ok {
		return sb
	}
	sb := &StateBuilder{state: s, builder: b}
	b.states[s] = sb
	return sb
}

// Build validates the collected rules through domain.FromRules.
func (b *Builder) Build() (*domain.TransitionTable, error) {
	opts := append([]domain.TableOption{domain.WithName(b.name)}, b.opts...)
	table, err := domain.FromRules(b.rules, b.initial, b.accepting, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build table %q: %w", b.name, err)
	}
	return table, nil
}

// MustBuild is like Build but panics on error. Intended for static tables.
func (b *Builder) MustBuild() *domain.TransitionTable {
	table, err := b.Build()
	if err != nil {
		panic(err)
	}
	return table
}
