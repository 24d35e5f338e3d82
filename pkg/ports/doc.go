/*
Package ports defines the driven ports (interfaces) of the pushdown engine.

These interfaces decouple the core logic from external implementations, allowing
tables to come from files or code and run records to live in memory or Redis.

# Key Interfaces

  - TableLoader: Responsible for producing a validated TransitionTable.
  - RunStore: Responsible for persisting completed run records.
*/
package ports
