package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Review est immuable une fois créé : pas de modification ni de suppression.
type Review struct {
	ID        gocql.UUID `json:"id" db:"review_id"`
	ProductID gocql.UUID `json:"product_id" db:"product_id"`
	UserID    string     `json:"user_id" db:"user_id"`
	Rating    int        `json:"rating" db:"rating"` // 1-5
	Title     string     `json:"title" db:"title"`
	Body      string     `json:"body" db:"body"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
