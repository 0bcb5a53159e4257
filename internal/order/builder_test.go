package order

import (
	"context"
	"errors"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

// --- Mocks ---

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ProductByID(ctx context.Context, productID string) (*models.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Save(ctx context.Context, o *models.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type mockCarts struct{ mock.Mock }

func (m *mockCarts) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *mockCarts) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func product(id gocql.UUID, title string, price float64) *models.Product {
	return &models.Product{ID: id, Title: title, Price: price, Description: "desc", ImageURL: "http://img"}
}

// --- Tests ---

func TestPlace_SnapshotsCart(t *testing.T) {
	ctx := context.Background()
	p1 := gocql.TimeUUID()
	p2 := gocql.TimeUUID()

	catalog := new(mockCatalog)
	store := new(mockStore)
	carts := new(mockCarts)

	carts.On("Get", ctx, "u1").Return([]models.CartItem{
		{ProductID: p1.String(), Quantity: 2},
		{ProductID: p2.String(), Quantity: 1},
	}, nil)
	catalog.On("ProductByID", ctx, p1.String()).Return(product(p1, "Clavier", 49.90), nil)
	catalog.On("ProductByID", ctx, p2.String()).Return(product(p2, "Souris", 19.90), nil)
	store.On("Save", ctx, mock.Anything).Return(nil)
	carts.On("Delete", ctx, "u1").Return(nil)

	o, err := NewBuilder(catalog, store, carts).Place(ctx, "u1", "u1@example.com")
	require.NoError(t, err)

	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, "u1@example.com", o.UserEmail)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Clavier", o.Items[0].Product.Title)
	assert.Equal(t, 49.90, o.Items[0].Product.Price)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.InDelta(t, 49.90*2+19.90, o.TotalPrice, 1e-9)

	store.AssertCalled(t, "Save", ctx, mock.Anything)
	carts.AssertCalled(t, "Delete", ctx, "u1")
}

func TestPlace_PriceChangeDoesNotAlterOrder(t *testing.T) {
	ctx := context.Background()
	pid := gocql.TimeUUID()

	catalog := new(mockCatalog)
	store := new(mockStore)
	carts := new(mockCarts)

	carts.On("Get", ctx, "u1").Return([]models.CartItem{{ProductID: pid.String(), Quantity: 1}}, nil)
	catalog.On("ProductByID", ctx, pid.String()).Return(product(pid, "Lampe", 30.00), nil).Once()
	store.On("Save", ctx, mock.Anything).Return(nil)
	carts.On("Delete", ctx, "u1").Return(nil)

	o, err := NewBuilder(catalog, store, carts).Place(ctx, "u1", "u1@example.com")
	require.NoError(t, err)

	// Le prix du catalogue change après coup : la commande garde 30.00.
	catalog.On("ProductByID", ctx, pid.String()).Return(product(pid, "Lampe", 99.00), nil)

	assert.Equal(t, 30.00, o.Items[0].Product.Price)
	assert.Equal(t, 30.00, o.TotalPrice)
}

func TestPlace_EmptyCart(t *testing.T) {
	ctx := context.Background()

	catalog := new(mockCatalog)
	store := new(mockStore)
	carts := new(mockCarts)
	carts.On("Get", ctx, "u1").Return([]models.CartItem{}, nil)

	_, err := NewBuilder(catalog, store, carts).Place(ctx, "u1", "u1@example.com")
	assert.ErrorIs(t, err, ErrEmptyCart)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPlace_AbortsWhenProductGone(t *testing.T) {
	ctx := context.Background()
	p1 := gocql.TimeUUID()
	p2 := gocql.TimeUUID()

	catalog := new(mockCatalog)
	store := new(mockStore)
	carts := new(mockCarts)

	carts.On("Get", ctx, "u1").Return([]models.CartItem{
		{ProductID: p1.String(), Quantity: 1},
		{ProductID: p2.String(), Quantity: 3},
	}, nil)
	catalog.On("ProductByID", ctx, p1.String()).Return(product(p1, "Clavier", 49.90), nil)
	catalog.On("ProductByID", ctx, p2.String()).Return(nil, ErrProductGone)

	_, err := NewBuilder(catalog, store, carts).Place(ctx, "u1", "u1@example.com")
	assert.ErrorIs(t, err, ErrProductGone)

	// Aucune commande partielle, panier intact.
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPlace_SaveFailurePropagates(t *testing.T) {
	ctx := context.Background()
	pid := gocql.TimeUUID()

	catalog := new(mockCatalog)
	store := new(mockStore)
	carts := new(mockCarts)

	carts.On("Get", ctx, "u1").Return([]models.CartItem{{ProductID: pid.String(), Quantity: 1}}, nil)
	catalog.On("ProductByID", ctx, pid.String()).Return(product(pid, "Lampe", 30.00), nil)
	store.On("Save", ctx, mock.Anything).Return(errors.New("write timeout"))

	_, err := NewBuilder(catalog, store, carts).Place(ctx, "u1", "u1@example.com")
	assert.Error(t, err)
	carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPlace_ClearFailureDoesNotFailOrder(t *testing.T) {
	ctx := context.Background()
	pid := gocql.TimeUUID()

	catalog := new(mockCatalog)
	store := new(mockStore)
	carts := new(mockCarts)

	carts.On("Get", ctx, "u1").Return([]models.CartItem{{ProductID: pid.String(), Quantity: 1}}, nil)
	catalog.On("ProductByID", ctx, pid.String()).Return(product(pid, "Lampe", 30.00), nil)
	store.On("Save", ctx, mock.Anything).Return(nil)
	carts.On("Delete", ctx, "u1").Return(errors.New("redis down"))

	// La commande est déjà persistée : l'échec du vidage ne la remet pas
	// en cause.
	o, err := NewBuilder(catalog, store, carts).Place(ctx, "u1", "u1@example.com")
	require.NoError(t, err)
	assert.NotNil(t, o)
}
