package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// cartManager construit le manager sur le store Redis partagé
func cartManager() *cart.Manager {
	return cart.NewManager(cart.NewRedisStore(database.RedisClient))
}

// GetCart renvoie le panier enrichi des infos produit courantes.
// GET /api/cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	items, err := cartManager().Items(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	// Résolution à la lecture : le panier ne stocke que des références
	display := []models.CartDisplayItem{}
	var total float64
	for _, item := range items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			continue
		}

		var title, imageURL string
		var price float64
		if err := database.GetPreparedGetProductByID().Bind(gocql.UUID(pid)).
			WithContext(c.Request.Context()).Scan(&title, &price, &imageURL); err != nil {
			// Produit disparu du catalogue : on l'ignore à l'affichage
			continue
		}

		display = append(display, models.CartDisplayItem{
			ProductID: item.ProductID,
			Title:     title,
			Price:     price,
			ImageURL:  imageURL,
			Quantity:  item.Quantity,
		})
		total += price * float64(item.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{
		"items": display,
		"total": total,
	})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	pid, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	// 🧩 Le produit doit exister au moment de l'ajout
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var exists gocql.UUID
	if err := session.Query(`SELECT product_id FROM products WHERE product_id = ?`, gocql.UUID(pid)).
		WithContext(c.Request.Context()).Scan(&exists); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	items, err := cartManager().AddItem(c.Request.Context(), userID, input.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   items,
	})
}

//
// ❌ DELETE /api/cart/:productId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	items, err := cartManager().RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   items,
	})
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := cartManager().Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}
