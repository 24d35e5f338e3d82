package presets

import (
	"fmt"
	"sort"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Example is a named input sequence with the outcome it is expected to produce
// against the pizza-bot table.
type Example struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Commands    []domain.Command `json:"commands"`
	Expect      domain.Outcome   `json:"expect"`
}

var examples = []Example{
	{
		Name:        "valid",
		Description: "A complete order: one pizza with toppings, closed and paid.",
		Commands:    domain.Commands("order", "pizza", "toppings", "done", "done", "pay"),
		Expect:      domain.OutcomeAccepted,
	},
	{
		Name:        "invalid",
		Description: "Paying while a pizza is still open.",
		Commands:    domain.Commands("order", "pizza", "pay"),
		Expect:      domain.OutcomeRejected,
	},
	{
		Name:        "toppings-open",
		Description: "Pays right after closing the toppings; the pizza is still open.",
		Commands:    domain.Commands("order", "pizza", "toppings", "done", "pay"),
		Expect:      domain.OutcomeRejected,
	},
	{
		Name:        "multi-pizza",
		Description: "Two pizzas in one order: the second starts once the first is closed.",
		Commands:    domain.Commands("order", "pizza", "done", "pizza", "toppings", "done", "done", "pay"),
		Expect:      domain.OutcomeAccepted,
	},
	{
		Name:        "pay-early",
		Description: "Pays while the toppings are still open.",
		Commands:    domain.Commands("order", "pizza", "toppings", "pay"),
		Expect:      domain.OutcomeRejected,
	},
	{
		Name:        "no-order",
		Description: "Asks for a pizza before starting an order.",
		Commands:    domain.Commands("pizza", "toppings", "pay"),
		Expect:      domain.OutcomeRejected,
	},
	{
		Name:        "empty-order",
		Description: "Starts an order and pays immediately.",
		Commands:    domain.Commands("order", "pay"),
		Expect:      domain.OutcomeAccepted,
	},
	{
		Name:        "unfinished",
		Description: "Starts an order and never pays.",
		Commands:    domain.Commands("order", "pizza"),
		Expect:      domain.OutcomeRejected,
	},
}

// Examples returns every example, sorted by name.
func Examples() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupExample returns the example called name.
func LookupExample(name string) (Example, error) {
	for _, ex := range examples {
		if ex.Name == name {
			ex.Commands = append([]domain.Command(nil), ex.Commands...)
			return ex, nil
		}
	}
	return Example{}, fmt.Errorf("%w: %q", domain.ErrExampleNotFound, name)
}
