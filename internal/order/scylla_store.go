package order

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"velora_back_end/internal/models"
)

// ScyllaCatalog résout les produits depuis le keyspace products.
type ScyllaCatalog struct {
	Session *gocql.Session
}

func (c ScyllaCatalog) ProductByID(ctx context.Context, productID string) (*models.Product, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrProductGone
	}

	var p models.Product
	var stars []int
	err = c.Session.Query(`SELECT product_id, title, description, price, image_url, user_id, total_reviews, avg_rating, stars
	                       FROM products WHERE product_id = ?`, gocql.UUID(pid)).WithContext(ctx).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.ImageURL, &p.UserID, &p.TotalReviews, &p.AvgRating, &stars)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrProductGone
	}
	if err != nil {
		return nil, err
	}

	copy(p.Stars[:], stars)
	return &p, nil
}

// ScyllaStore écrit la commande dans orders et dans l'index orders_by_user.
// Les items partent en JSON dans une colonne text.
type ScyllaStore struct {
	Session *gocql.Session
}

func (s ScyllaStore) Save(ctx context.Context, o *models.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	if err := s.Session.Query(`INSERT INTO orders (order_id, user_id, user_email, items, total_price, created_at)
	                           VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.UserEmail, string(itemsJSON), o.TotalPrice, o.CreatedAt).WithContext(ctx).Exec(); err != nil {
		return err
	}

	return s.Session.Query(`INSERT INTO orders_by_user (user_id, order_id, user_email, items, total_price, created_at)
	                        VALUES (?, ?, ?, ?, ?, ?)`,
		o.UserID, o.ID, o.UserEmail, string(itemsJSON), o.TotalPrice, o.CreatedAt).WithContext(ctx).Exec()
}
