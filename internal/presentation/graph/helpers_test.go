package graph_test

import (
	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/presets"
)

func simulate(tokens ...string) (*domain.Result, error) {
	return pushdown.Simulate(presets.PizzaBot(), domain.Commands(tokens...))
}
