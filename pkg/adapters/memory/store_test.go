package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/aretw0/pushdown/pkg/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	ports.RunRunStoreContract(t, memory.NewStore())
}

func TestLoader_ReproducesTable(t *testing.T) {
	loader := memory.NewFromTable(presets.PizzaBot())
	table, err := loader.LoadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, presets.PizzaBot().Definition(), table.Definition())
}

func TestLoader_InvalidDefinition(t *testing.T) {
	loader := memory.NewLoader(domain.Definition{Initial: "a"})
	_, err := loader.LoadTable(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
