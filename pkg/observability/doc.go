/*
Package observability provides tools for monitoring the pushdown engine.

It turns the engine's lifecycle hooks into Prometheus metrics (runs by outcome,
steps per run, stuck transitions) and structured debug logs.
*/
package observability
