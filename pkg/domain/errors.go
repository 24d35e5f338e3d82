package domain

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every error raised while building a TransitionTable.
var ErrConfiguration = errors.New("invalid transition table")

// ErrInternalFault signals a broken engine invariant. It is never a verdict.
var ErrInternalFault = errors.New("internal automaton fault")

// ErrStackUnderflow is returned when a pop would remove the bottom marker.
var ErrStackUnderflow = fmt.Errorf("%w: stack underflow past bottom marker", ErrInternalFault)

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ErrExampleNotFound is returned when a named example input does not exist.
var ErrExampleNotFound = errors.New("example not found")

// ConfigErrorKind classifies a configuration error.
type ConfigErrorKind string

const (
	KindDuplicateRule     ConfigErrorKind = "duplicate_rule"
	KindUndeclaredState   ConfigErrorKind = "undeclared_state"
	KindUndeclaredSymbol  ConfigErrorKind = "undeclared_symbol"
	KindUndeclaredCommand ConfigErrorKind = "undeclared_command"
	KindBottomMisuse      ConfigErrorKind = "bottom_marker_misuse"
	KindMissingInitial    ConfigErrorKind = "missing_initial_state"
	KindNoAccepting       ConfigErrorKind = "no_accepting_states"
	KindMalformedRule     ConfigErrorKind = "malformed_rule"
	KindMalformedAction   ConfigErrorKind = "malformed_action"
)

// ConfigError describes a single problem found in a rule set.
type ConfigError struct {
	Kind   ConfigErrorKind
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap makes every ConfigError match ErrConfiguration.
func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

func configErrorf(kind ConfigErrorKind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// AggregateConfigError collects every problem found while building a table.
type AggregateConfigError struct {
	Errors []error
}

func (e *AggregateConfigError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d configuration errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *AggregateConfigError) Unwrap() []error {
	return e.Errors
}

// ConfigErrors returns the individual configuration errors carried by err.
func ConfigErrors(err error) []*ConfigError {
	var out []*ConfigError
	var aggr *AggregateConfigError
	if errors.As(err, &aggr) {
		for _, e := range aggr.Errors {
			var ce *ConfigError
			if errors.As(e, &ce) {
				out = append(out, ce)
			}
		}
		return out
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		out = append(out, ce)
	}
	return out
}
