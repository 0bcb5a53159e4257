package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

var (
	ErrEmptyCart   = errors.New("panier vide")
	ErrProductGone = errors.New("produit introuvable")
)

// Catalog résout une référence produit vers son état courant.
// Renvoie ErrProductGone si le produit n'existe plus.
type Catalog interface {
	ProductByID(ctx context.Context, productID string) (*models.Product, error)
}

// Store persiste les commandes. Une commande n'est jamais réécrite.
type Store interface {
	Save(ctx context.Context, o *models.Order) error
}

// CartSource lit et vide le panier de l'utilisateur.
type CartSource interface {
	Get(ctx context.Context, userID string) ([]models.CartItem, error)
	Delete(ctx context.Context, userID string) error
}

type Builder struct {
	catalog Catalog
	orders  Store
	carts   CartSource
}

func NewBuilder(catalog Catalog, orders Store, carts CartSource) *Builder {
	return &Builder{catalog: catalog, orders: orders, carts: carts}
}

// Place fige le panier en une commande immuable. Séquence imposée :
// résolution → snapshot → persistance → vidage du panier. Si un seul
// produit référencé n'existe plus, tout est abandonné, rien n'est écrit.
func (b *Builder) Place(ctx context.Context, userID, email string) (*models.Order, error) {
	items, err := b.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	o := &models.Order{
		ID:        gocql.TimeUUID(),
		UserID:    userID,
		UserEmail: email,
		CreatedAt: time.Now(),
	}

	for _, item := range items {
		p, err := b.catalog.ProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, ErrProductGone) {
				return nil, fmt.Errorf("%w: %s", ErrProductGone, item.ProductID)
			}
			return nil, err
		}

		// Copie dénormalisée : le prix enregistré est celui du moment de
		// l'achat, insensible aux changements ultérieurs du catalogue.
		o.Items = append(o.Items, models.OrderItem{
			Product: models.ProductSnapshot{
				ID:          p.ID.String(),
				Title:       p.Title,
				Description: p.Description,
				Price:       p.Price,
				ImageURL:    p.ImageURL,
			},
			Quantity: item.Quantity,
		})
		o.TotalPrice += p.Price * float64(item.Quantity)
	}

	if err := b.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	// Persistance et vidage ne sont pas transactionnels (deux stores
	// distincts). Si le vidage échoue, la commande existe déjà : on signale
	// sans faire échouer la requête.
	if err := b.carts.Delete(ctx, userID); err != nil {
		log.Printf("⚠️ Commande %s créée mais panier de %s non vidé: %v", o.ID, userID, err)
	}

	return o, nil
}
