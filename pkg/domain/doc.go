/*
Package domain contains the core domain models of the pushdown engine.

It defines the vocabulary of a deterministic pushdown automaton: states, commands
(the input alphabet), stack symbols, transition rules and the immutable
TransitionTable built from them, plus the Trace and Verdict produced by a run.
This package is kept pure and free of I/O so it can be shared by every adapter.

# Key Entities

  - Rule: (state, command, stack-top) -> (next state, stack action).
  - TransitionTable: the validated, read-only rule set with its initial and accepting states.
  - Definition: the serialized row form of a table (YAML/JSON), lossless through FromDefinition.
  - TraceEntry / Trace: the per-step record of a run.
  - Verdict: Accepted or Rejected, with the reason.
*/
package domain
