package pa

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/database"
	"velora_back_end/internal/order"
	"velora_back_end/internal/utils"
)

// CheckoutSuccess fige le panier en commande après retour de Stripe.
// GET /api/checkout/success
func CheckoutSuccess(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	builder := order.NewBuilder(
		order.ScyllaCatalog{Session: productsSession},
		order.ScyllaStore{Session: ordersSession},
		cart.NewRedisStore(database.RedisClient),
	)

	o, err := builder.Place(c.Request.Context(), userID, email)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		case errors.Is(err, order.ErrProductGone):
			c.JSON(http.StatusNotFound, gin.H{"error": "Un produit du panier n'existe plus"})
		default:
			log.Printf("❌ Erreur création commande après paiement: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		}
		return
	}

	go utils.SendOrderConfirmation(*o)

	log.Printf("💳 Paiement confirmé, commande %s créée pour %s", o.ID, userID)
	c.JSON(http.StatusCreated, o)
}
