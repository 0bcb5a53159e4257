package models

import (
	"time"

	"github.com/gocql/gocql"
)

// ProductSnapshot est la copie dénormalisée du produit au moment de l'achat.
// Un changement de prix ultérieur ne modifie jamais une commande passée.
type ProductSnapshot struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type OrderItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Order est créée une seule fois au checkout puis en lecture seule.
type Order struct {
	ID         gocql.UUID  `json:"id" db:"order_id"`
	UserID     string      `json:"user_id" db:"user_id"`
	UserEmail  string      `json:"user_email" db:"user_email"`
	Items      []OrderItem `json:"items" db:"items"`
	TotalPrice float64     `json:"total_price" db:"total_price"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}
