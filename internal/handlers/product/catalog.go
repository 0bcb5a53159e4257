package product

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/pagination"
	"velora_back_end/internal/services"
)

const defaultPageSize = 2

// pageSize résout la taille de page : per_page en query, sinon
// CATALOG_PAGE_SIZE, à défaut 2 (taille historique du front)
func pageSize(c *gin.Context) int {
	if s := c.Query("per_page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	if s := os.Getenv("CATALOG_PAGE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return defaultPageSize
}

// fetchCatalog renvoie tous les produits, depuis Redis si possible,
// sinon via un scan ScyllaDB mis en cache.
func fetchCatalog(ctx context.Context) ([]models.Product, error) {
	if products, ok := cache.GetCatalogFromCache(ctx); ok {
		return products, nil
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT product_id, title, description, price, image_url, user_id, total_reviews, avg_rating, stars, created_at, updated_at
	                       FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	var stars []int

	for iter.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.ImageURL, &p.UserID,
		&p.TotalReviews, &p.AvgRating, &stars, &p.CreatedAt, &p.UpdatedAt) {
		copy(p.Stars[:], stars)
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
		stars = nil
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	cache.SetCatalogCache(ctx, products)
	return products, nil
}

// GetProducts liste le catalogue paginé.
// GET /api/products?page=N
func GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))

	products, err := fetchCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	pg := pagination.Paginate(len(products), pageSize(c), page)
	start, end := pg.Window(len(products))

	c.JSON(http.StatusOK, gin.H{
		"products":   products[start:end],
		"pagination": pg,
	})
}

// GetProduct renvoie le détail d'un produit avec son résumé de notation.
// GET /api/products/:id
func GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p, err := scanProduct(c.Request.Context(), session, gocql.UUID(productID))
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// SearchProducts recherche via Elasticsearch, avec repli ScyllaDB en mémoire.
// GET /api/products/search?q=...
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 1️⃣ Recherche dans Elasticsearch (prioritaire)
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}

	// 🔁 2️⃣ Fallback : filtre en mémoire sur le catalogue complet
	products, err := fetchCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}

	var matches []models.Product
	for _, p := range products {
		if containsIgnoreCase(p.Title, query) || containsIgnoreCase(p.Description, query) {
			matches = append(matches, p)
		}
	}

	c.JSON(http.StatusOK, matches)
}
