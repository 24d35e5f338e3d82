// Package presets holds the built-in tables and example inputs.
package presets

import (
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/dsl"
)

// PizzaBotName is the name of the built-in pizza ordering table.
const PizzaBotName = "pizza-bot"

// Pizza-bot states and stack symbols.
const (
	StateStart    domain.State = "q_start"
	StateOrdering domain.State = "q_ordering"
	StateDone     domain.State = "q_done"

	SymbolOrder    domain.Symbol = "O"
	SymbolPizza    domain.Symbol = "P"
	SymbolToppings domain.Symbol = "T"
)

// Pizza-bot commands.
const (
	CmdOrder    domain.Command = "order"
	CmdPizza    domain.Command = "pizza"
	CmdToppings domain.Command = "toppings"
	CmdDone     domain.Command = "done"
	CmdPay      domain.Command = "pay"
)

var pizzaBot = buildPizzaBot()

// PizzaBot returns the pizza ordering table. The table is immutable and shared.
//
// Closing a pizza with "done" pops P and leaves O on top, so another pizza may
// follow before paying.
func PizzaBot() *domain.TransitionTable {
	return pizzaBot
}

func buildPizzaBot() *domain.TransitionTable {
	b := dsl.New(PizzaBotName).
		Initial(StateStart).
		Accept(StateDone).
		Bottom(domain.DefaultBottom).
		Inputs(CmdOrder, CmdPizza, CmdToppings, CmdDone, CmdPay).
		Alphabet(SymbolOrder, SymbolPizza, SymbolToppings)

	b.State(StateStart).
		On(CmdOrder, domain.DefaultBottom).Push(SymbolOrder).Go(StateOrdering)

	b.State(StateOrdering).
		On(CmdPizza, SymbolOrder).Push(SymbolPizza).Go(StateOrdering).
		On(CmdToppings, SymbolPizza).Push(SymbolToppings).Go(StateOrdering).
		On(CmdDone, SymbolToppings).Pop().Go(StateOrdering).
		On(CmdDone, SymbolPizza).Pop().Go(StateOrdering).
		On(CmdPay, SymbolOrder).Pop().Go(StateDone)

	return b.MustBuild()
}
