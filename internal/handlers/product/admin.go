package product

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/services"
)

// parseProductForm valide les champs texte du formulaire produit.
// Renvoie un message d'erreur vide si tout est bon.
func parseProductForm(c *gin.Context) (title, description string, price float64, errMsg string) {
	title = c.PostForm("title")
	description = c.PostForm("description")
	priceStr := c.PostForm("price")

	if title == "" {
		return "", "", 0, "Le titre est obligatoire"
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return "", "", 0, "Prix invalide"
	}
	if description == "" {
		return "", "", 0, "La description est obligatoire"
	}
	return title, description, price, ""
}

// CreateProduct crée un produit catalogue (multipart : champs + image).
// POST /api/admin/products
func CreateProduct(c *gin.Context) {
	userID := c.GetString("user_id")

	title, description, price, errMsg := parseProductForm(c)
	if errMsg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errMsg})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Image manquante"})
		return
	}
	if !services.IsImage(file) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Le fichier joint n'est pas une image"})
		return
	}

	imageURL, err := services.UploadProductImage(c.Request.Context(), file)
	if err != nil {
		log.Printf("❌ Erreur upload MinIO: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	p := models.Product{
		ID:          gocql.TimeUUID(),
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		UserID:      userID,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}

	if err := session.Query(`INSERT INTO products (product_id, title, description, price, image_url, user_id, total_reviews, avg_rating, stars, created_at, updated_at)
	                         VALUES (?, ?, ?, ?, ?, ?, 0, 0, [0,0,0,0,0], ?, ?)`,
		p.ID, p.Title, p.Description, p.Price, p.ImageURL, p.UserID, p.CreatedAt, p.UpdatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	cache.InvalidateCatalogCache(c.Request.Context())

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	log.Printf("✅ Produit créé: %s (%s)", p.Title, p.ID)
	c.JSON(http.StatusCreated, p)
}

// GetMyProducts liste les produits appartenant à l'admin connecté.
// GET /api/admin/products
func GetMyProducts(c *gin.Context) {
	userID := c.GetString("user_id")

	products, err := fetchCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	mine := []models.Product{}
	for _, p := range products {
		if p.UserID == userID {
			mine = append(mine, p)
		}
	}

	c.JSON(http.StatusOK, mine)
}

// UpdateProduct modifie titre/prix/description, image optionnelle.
// Refusé si le demandeur n'est pas le propriétaire.
// PUT /api/admin/products/:id
func UpdateProduct(c *gin.Context) {
	userID := c.GetString("user_id")

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	title, description, price, errMsg := parseProductForm(c)
	if errMsg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errMsg})
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

	// Vérification propriétaire : refus sec, sans détail sur la ressource
	if p.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	imageURL := p.ImageURL
	if file, err := c.FormFile("image"); err == nil {
		if !services.IsImage(file) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Le fichier joint n'est pas une image"})
			return
		}
		imageURL, err = services.UploadProductImage(c.Request.Context(), file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
			return
		}
	}

	now := time.Now()
	if err := session.Query(`UPDATE products SET title = ?, description = ?, price = ?, image_url = ?, updated_at = ?
	                         WHERE product_id = ?`,
		title, description, price, imageURL, now, gocql.UUID(productID)).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateCatalogCache(c.Request.Context())

	p.Title = title
	p.Description = description
	p.Price = price
	p.ImageURL = imageURL
	p.UpdatedAt = &now
	go services.IndexProduct(*p)

	log.Printf("✅ Produit mis à jour: %s", productID)
	c.JSON(http.StatusOK, p)
}

// DeleteProduct supprime un produit appartenant à l'admin connecté.
// DELETE /api/admin/products/:id
func DeleteProduct(c *gin.Context) {
	userID := c.GetString("user_id")

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

	if p.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, gocql.UUID(productID)).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	cache.InvalidateCatalogCache(c.Request.Context())
	go services.RemoveProductFromIndex(productID.String())

	log.Printf("🗑️ Produit supprimé: %s", productID)
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
