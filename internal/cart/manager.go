package cart

import (
	"context"

	"velora_back_end/internal/models"
)

// Store persiste le panier comme document entier : chaque mutation réécrit
// la liste complète. Deux requêtes concurrentes sur le même utilisateur
// peuvent donc se perdre : le dernier écrivain gagne, comme sur le front
// avec deux onglets ouverts. Politique assumée, pas de verrou par user.
type Store interface {
	Get(ctx context.Context, userID string) ([]models.CartItem, error)
	Put(ctx context.Context, userID string, items []models.CartItem) error
	Delete(ctx context.Context, userID string) error
}

type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Items renvoie le contenu courant du panier (vide si aucun document).
func (m *Manager) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	return m.store.Get(ctx, userID)
}

// AddItem incrémente la quantité si le produit est déjà présent, sinon
// ajoute une entrée quantité 1 en fin de liste (ordre de première vue).
// Aucun plafond de quantité n'est appliqué.
func (m *Manager) AddItem(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	items, err := m.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{ProductID: productID, Quantity: 1})
	}

	if err := m.store.Put(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem retire l'entrée entière, quelle que soit sa quantité.
func (m *Manager) RemoveItem(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	items, err := m.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := []models.CartItem{}
	for _, item := range items {
		if item.ProductID != productID {
			updated = append(updated, item)
		}
	}

	if err := m.store.Put(ctx, userID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Clear vide le panier. Idempotent : vider un panier déjà vide est un no-op.
func (m *Manager) Clear(ctx context.Context, userID string) error {
	return m.store.Delete(ctx, userID)
}
