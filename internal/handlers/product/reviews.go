package product

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/rating"
	"velora_back_end/internal/services"
)

// Deux avis simultanés sur le même produit se résolvent par LWT :
// l'agrégat n'est écrit que si total_reviews n'a pas bougé depuis la
// lecture, sinon on relit et on rejoue.
const ratingCASRetries = 3

// CreateReview crée un avis sur un produit et met à jour l'agrégat de
// notation (moyenne glissante, histogramme, compteur).
// POST /api/products/:id/reviews
func CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Rating int    `json:"rating"`
		Title  string `json:"title" binding:"required,min=2,max=120"`
		Body   string `json:"body" binding:"required,min=10,max=2000"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	pid := gocql.UUID(productUUID)

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ctx := c.Request.Context()
	var p *models.Product

	for attempt := 0; attempt < ratingCASRetries; attempt++ {
		p, err = scanProduct(ctx, session, pid)
		if err == gocql.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
			return
		}

		prevTotal := p.TotalReviews
		if err := rating.Apply(p, req.Rating); err != nil {
			if errors.Is(err, rating.ErrInvalidRating) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "La note doit être comprise entre 1 et 5"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur notation"})
			return
		}

		var currentTotal int
		applied, casErr := session.Query(`UPDATE products SET total_reviews = ?, avg_rating = ?, stars = ?
		                                  WHERE product_id = ? IF total_reviews = ?`,
			p.TotalReviews, p.AvgRating, p.Stars[:], pid, prevTotal).
			WithContext(ctx).ScanCAS(&currentTotal)
		if casErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour notation"})
			return
		}
		if applied {
			break
		}
		if attempt == ratingCASRetries-1 {
			log.Printf("⚠️ CAS notation épuisé pour le produit %s", pid)
			c.JSON(http.StatusConflict, gin.H{"error": "Notation en conflit, réessayez"})
			return
		}
	}

	// L'avis lui-même est immuable : insertion simple, jamais de réécriture.
	review := models.Review{
		ID:        gocql.TimeUUID(),
		ProductID: pid,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}

	if err := session.Query(`INSERT INTO reviews_by_product (product_id, review_id, user_id, rating, title, body, created_at)
	                         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		review.ProductID, review.ID, review.UserID, review.Rating, review.Title, review.Body, review.CreatedAt).
		WithContext(ctx).Exec(); err != nil {
		log.Printf("❌ Erreur création avis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création avis"})
		return
	}

	cache.InvalidateCatalogCache(ctx)
	go services.IndexProduct(*p)

	log.Printf("⭐ Avis créé: %s pour produit %s (note: %d/5)", review.ID, pid, req.Rating)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Avis créé avec succès",
		"review":  review,
		"product": p,
	})
}

// GetProductReviews récupère les avis d'un produit
// GET /api/products/:id/reviews
func GetProductReviews(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT review_id, user_id, rating, title, body, created_at
	                       FROM reviews_by_product WHERE product_id = ?`, gocql.UUID(productUUID)).
		WithContext(c.Request.Context()).Iter()

	reviews := []models.Review{}
	var review models.Review

	for iter.Scan(&review.ID, &review.UserID, &review.Rating, &review.Title, &review.Body, &review.CreatedAt) {
		review.ProductID = gocql.UUID(productUUID)
		reviews = append(reviews, review)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture avis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":       reviews,
		"total_reviews": len(reviews),
	})
}
