package cache

import (
	"context"
	"encoding/json"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

const (
	UserCacheTTL    = 5 * time.Minute
	CatalogCacheTTL = 10 * time.Minute

	CatalogKey = "products:all"
)

// GetCatalogFromCache récupère la liste complète des produits depuis Redis.
// Renvoie (nil, false) sur cache miss.
func GetCatalogFromCache(ctx context.Context) ([]models.Product, bool) {
	data, err := database.Redis.Get(ctx, CatalogKey).Result()
	if err != nil || data == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetCatalogCache met la liste des produits en cache
func SetCatalogCache(ctx context.Context, products []models.Product) {
	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, CatalogKey, data, CatalogCacheTTL)
	}
}

// InvalidateCatalogCache invalide la liste après toute mutation du catalogue
func InvalidateCatalogCache(ctx context.Context) {
	database.Redis.Del(ctx, CatalogKey)
}

// GetUserFromCache récupère un utilisateur depuis Redis ou ScyllaDB
func GetUserFromCache(userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	var (
		email, password, name, role string
		createdAt                   *time.Time
	)
	if err := database.GetPreparedGetUserByID().Bind(userID).Scan(
		&email, &password, &name, &role, &createdAt); err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        userID,
		Email:     email,
		Password:  password,
		Name:      name,
		Role:      role,
		CreatedAt: createdAt,
	}

	// 3. Mettre en cache (sans le hash du mot de passe)
	cached := *user
	cached.Password = ""
	if jsonData, err := json.Marshal(cached); err == nil {
		database.Redis.Set(ctx, key, jsonData, UserCacheTTL)
	}

	return user, nil
}

// InvalidateUserCache invalide le cache d'un utilisateur
func InvalidateUserCache(userID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "user:"+userID)
}
