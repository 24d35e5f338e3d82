package domain

import "fmt"

// Outcome is the final decision of a run.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
)

// Reason explains an Outcome.
type Reason string

const (
	// ReasonAcceptingState: input exhausted in an accepting state.
	ReasonAcceptingState Reason = "accepting_state"
	// ReasonNonFinalState: input exhausted in a non-accepting state.
	ReasonNonFinalState Reason = "non_final_state"
	// ReasonNoMatchingRule: the automaton got stuck on a command.
	ReasonNoMatchingRule Reason = "no_matching_rule"
	// ReasonUnknownCommand: stuck on a command outside the declared input alphabet.
	ReasonUnknownCommand Reason = "unknown_command"
)

// Verdict is the result of a run. Step, Command and Top are set only for stuck runs.
type Verdict struct {
	Outcome Outcome `json:"outcome"`
	Reason  Reason  `json:"reason"`
	State   State   `json:"state"`
	Step    int     `json:"step,omitempty"`
	Command Command `json:"command,omitempty"`
	Top     Symbol  `json:"top,omitempty"`
}

// Accepted reports whether the run was accepted.
func (v Verdict) Accepted() bool {
	return v.Outcome == OutcomeAccepted
}

// Stuck reports whether the run halted before exhausting its input.
func (v Verdict) Stuck() bool {
	return v.Reason == ReasonNoMatchingRule || v.Reason == ReasonUnknownCommand
}

// Message is the human-readable reason.
func (v Verdict) Message() string {
	switch v.Reason {
	case ReasonAcceptingState:
		return fmt.Sprintf("ended in accepting state %s", v.State)
	case ReasonNonFinalState:
		return fmt.Sprintf("ended in non-final state %s", v.State)
	case ReasonNoMatchingRule:
		return fmt.Sprintf("stuck at step %d consuming command %s in state %s with stack-top %s",
			v.Step, v.Command, v.State, v.Top)
	case ReasonUnknownCommand:
		return fmt.Sprintf("stuck at step %d consuming command %s (not in input alphabet) in state %s with stack-top %s",
			v.Step, v.Command, v.State, v.Top)
	default:
		return string(v.Reason)
	}
}

func (v Verdict) String() string {
	return fmt.Sprintf("%s: %s", v.Outcome, v.Message())
}

// Result bundles everything a run produces.
type Result struct {
	Table   string        `json:"table,omitempty"`
	Initial Configuration `json:"initial"`
	Final   Configuration `json:"final"`
	Trace   Trace         `json:"trace"`
	Verdict Verdict       `json:"verdict"`
}
