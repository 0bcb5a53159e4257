package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewManager(NewRedisStore(client)), mr
}

func TestAddItem_NewProduct(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	items, err := m.AddItem(ctx, "u1", "p1")
	require.NoError(t, err)

	assert.Equal(t, []models.CartItem{{ProductID: "p1", Quantity: 1}}, items)
}

func TestAddItem_IncrementsExisting(t *testing.T) {
	// addToCart(P) deux fois puis addToCart(Q) → [{P,2},{Q,1}], ordre de
	// première vue conservé.
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.AddItem(ctx, "u1", "P")
	require.NoError(t, err)
	_, err = m.AddItem(ctx, "u1", "P")
	require.NoError(t, err)
	items, err := m.AddItem(ctx, "u1", "Q")
	require.NoError(t, err)

	assert.Equal(t, []models.CartItem{
		{ProductID: "P", Quantity: 2},
		{ProductID: "Q", Quantity: 1},
	}, items)
}

func TestAddItem_NoQuantityCeiling(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	var items []models.CartItem
	var err error
	for i := 0; i < 250; i++ {
		items, err = m.AddItem(ctx, "u1", "P")
		require.NoError(t, err)
	}
	assert.Equal(t, 250, items[0].Quantity)
}

func TestRemoveItem_RemovesWholeEntry(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := m.AddItem(ctx, "u1", "P")
		require.NoError(t, err)
	}
	_, err := m.AddItem(ctx, "u1", "Q")
	require.NoError(t, err)

	// Suppression totale, pas de décrément.
	items, err := m.RemoveItem(ctx, "u1", "P")
	require.NoError(t, err)
	assert.Equal(t, []models.CartItem{{ProductID: "Q", Quantity: 1}}, items)
}

func TestRemoveItem_AbsentProductIsNoop(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.AddItem(ctx, "u1", "P")
	require.NoError(t, err)

	items, err := m.RemoveItem(ctx, "u1", "zzz")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestClear_Idempotent(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.AddItem(ctx, "u1", "P")
	require.NoError(t, err)

	require.NoError(t, m.Clear(ctx, "u1"))
	items, err := m.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Vider un panier déjà vide ne doit rien casser.
	require.NoError(t, m.Clear(ctx, "u1"))
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.AddItem(ctx, "u1", "P")
	require.NoError(t, err)
	_, err = m.AddItem(ctx, "u2", "Q")
	require.NoError(t, err)

	items1, err := m.Items(ctx, "u1")
	require.NoError(t, err)
	items2, err := m.Items(ctx, "u2")
	require.NoError(t, err)

	assert.Equal(t, "P", items1[0].ProductID)
	assert.Equal(t, "Q", items2[0].ProductID)
}

func TestPut_LastWriteWins(t *testing.T) {
	// Deux écritures entières qui se croisent : la seconde écrase tout.
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "u1", []models.CartItem{{ProductID: "A", Quantity: 1}}))
	require.NoError(t, store.Put(ctx, "u1", []models.CartItem{{ProductID: "B", Quantity: 7}}))

	items, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.CartItem{{ProductID: "B", Quantity: 7}}, items)
}
