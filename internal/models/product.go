package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	ImageURL    string     `json:"image_url" db:"image_url"`
	UserID      string     `json:"user_id" db:"user_id"` // propriétaire (admin créateur)
	CreatedAt   *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" db:"updated_at"`

	// Agrégat de notation, maintenu de façon incrémentale.
	// Invariant : somme(Stars) == TotalReviews, AvgRating arrondi à 1 décimale.
	TotalReviews int     `json:"total_reviews" db:"total_reviews"`
	AvgRating    float64 `json:"avg_rating" db:"avg_rating"`
	Stars        [5]int  `json:"stars" db:"stars"` // Stars[i] = nombre d'avis à i+1 étoiles
}
