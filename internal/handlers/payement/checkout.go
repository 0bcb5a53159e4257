package pa

import (
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/order"
)

// unitAmount convertit un prix catalogue en centimes pour Stripe.
// L'arrondi est indispensable : 19.99 * 100 vaut 1998.999… en flottant,
// une troncature facturerait un centime de moins.
func unitAmount(price float64) int64 {
	return int64(math.Round(price * 100))
}

// resolvedLine est une ligne de panier résolue au prix catalogue courant
type resolvedLine struct {
	Title       string
	Description string
	Price       float64
	Quantity    int
}

// resolveCartLines relit chaque produit du panier depuis le catalogue.
// Les prix viennent toujours du catalogue, jamais du client.
func resolveCartLines(c *gin.Context, items []models.CartItem) ([]resolvedLine, error) {
	productsSession, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	lines := make([]resolvedLine, 0, len(items))
	for _, item := range items {
		productUUID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, order.ErrProductGone
		}

		var line resolvedLine
		err = productsSession.Query(`SELECT title, description, price FROM products WHERE product_id = ?`,
			gocql.UUID(productUUID)).WithContext(c.Request.Context()).
			Scan(&line.Title, &line.Description, &line.Price)
		if err == gocql.ErrNotFound {
			return nil, order.ErrProductGone
		}
		if err != nil {
			return nil, err
		}

		line.Quantity = item.Quantity
		lines = append(lines, line)
	}
	return lines, nil
}

// CreateCheckoutSession crée une session Stripe Checkout depuis le panier.
// POST /api/checkout
func CreateCheckoutSession(c *gin.Context) {
	userID := c.GetString("user_id")

	store := cart.NewRedisStore(database.RedisClient)
	items, err := store.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	lines, err := resolveCartLines(c, items)
	if err != nil {
		if errors.Is(err, order.ErrProductGone) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Un produit du panier n'existe plus"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(line.Title),
					Description: stripe.String(line.Description),
				},
				UnitAmount: stripe.Int64(unitAmount(line.Price)),
			},
			Quantity: stripe.Int64(int64(line.Quantity)),
		})
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	baseURL := scheme + "://" + c.Request.Host

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(baseURL + "/api/checkout/success"),
		CancelURL:          stripe.String(baseURL + "/api/checkout/cancel"),
		Metadata: map[string]string{
			"user_id": userID,
		},
	}

	sess, err := session.New(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création paiement"})
		return
	}

	log.Printf("💳 Session checkout %s créée pour %s (%d articles)", sess.ID, userID, len(lines))

	c.JSON(http.StatusOK, gin.H{
		"session_id":  sess.ID,
		"url":         sess.URL,
		"items_count": len(lines),
	})
}
