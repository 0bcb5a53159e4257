package product

import (
	"context"
	"strings"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// scanProduct lit une ligne produit complète depuis ScyllaDB
func scanProduct(ctx context.Context, session *gocql.Session, productID gocql.UUID) (*models.Product, error) {
	var p models.Product
	var stars []int

	err := session.Query(`SELECT product_id, title, description, price, image_url, user_id, total_reviews, avg_rating, stars, created_at, updated_at
	                      FROM products WHERE product_id = ?`, productID).WithContext(ctx).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.ImageURL, &p.UserID,
		&p.TotalReviews, &p.AvgRating, &stars, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	copy(p.Stars[:], stars)
	return &p, nil
}

// Helper pour recherche insensible à la casse
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
