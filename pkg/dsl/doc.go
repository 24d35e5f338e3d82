/*
Package dsl provides a fluent Go builder for pushdown transition tables.

It lets developers declare rules state by state instead of writing YAML rows,
which is handy for tests and for tables generated at runtime.

Example usage:

	b := dsl.New("pizza-bot").Initial("q_start").Accept("q_done")

	b.State("q_start").
		On("order", "Z0").Push("O").Go("q_ordering")

	b.State("q_ordering").
		On("pizza", "O").Push("P").Go("q_ordering").
		On("pay", "O").Pop().Go("q_done")

	table, err := b.Build()
*/
package dsl
