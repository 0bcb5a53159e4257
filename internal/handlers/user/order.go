package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/order"
	"velora_back_end/internal/utils"
)

// newOrderBuilder câble le builder sur les stores de production
func newOrderBuilder() (*order.Builder, error) {
	productsSession, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	return order.NewBuilder(
		order.ScyllaCatalog{Session: productsSession},
		order.ScyllaStore{Session: ordersSession},
		cart.NewRedisStore(database.RedisClient),
	), nil
}

// PlaceOrder fige le panier courant en commande.
// POST /api/orders
func PlaceOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	builder, err := newOrderBuilder()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	o, err := builder.Place(c.Request.Context(), userID, email)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		case errors.Is(err, order.ErrProductGone):
			c.JSON(http.StatusNotFound, gin.H{"error": "Un produit du panier n'existe plus"})
		default:
			log.Printf("❌ Erreur création commande: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		}
		return
	}

	go utils.SendOrderConfirmation(*o)

	log.Printf("🧾 Commande %s créée pour %s (%.2f)", o.ID, userID, o.TotalPrice)
	c.JSON(http.StatusCreated, o)
}

// scanOrders déserialise les lignes commandes (items en JSON)
func scanOrders(iter *gocql.Iter, userID string) ([]models.Order, error) {
	orders := []models.Order{}

	var (
		orderID    gocql.UUID
		userEmail  string
		itemsJSON  string
		totalPrice float64
		createdAt  time.Time
	)

	for iter.Scan(&orderID, &userEmail, &itemsJSON, &totalPrice, &createdAt) {
		o := models.Order{
			ID:         orderID,
			UserID:     userID,
			UserEmail:  userEmail,
			TotalPrice: totalPrice,
			CreatedAt:  createdAt,
		}
		if itemsJSON != "" {
			if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
				log.Printf("⚠️ Erreur désérialisation items commande %s: %v", orderID, err)
			}
		}
		orders = append(orders, o)
	}

	return orders, iter.Close()
}

// GetMyOrders liste l'historique de commandes de l'utilisateur connecté.
// GET /api/orders
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id, user_email, items, total_price, created_at
	                       FROM orders_by_user WHERE user_id = ?`, userID).
		WithContext(c.Request.Context()).Iter()

	orders, err := scanOrders(iter, userID)
	if err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByID renvoie une commande si elle appartient au demandeur.
// GET /api/orders/:id
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	o, status := loadOwnedOrder(c, gocql.UUID(orderUUID), userID)
	if o == nil {
		c.JSON(status, gin.H{"error": statusMessage(status)})
		return
	}

	c.JSON(http.StatusOK, o)
}

// loadOwnedOrder lit une commande et vérifie son propriétaire.
// Renvoie (nil, code HTTP) en cas d'échec.
func loadOwnedOrder(c *gin.Context, orderID gocql.UUID, userID string) (*models.Order, int) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, http.StatusInternalServerError
	}

	var (
		ownerID    string
		userEmail  string
		itemsJSON  string
		totalPrice float64
		createdAt  time.Time
	)

	err = session.Query(`SELECT user_id, user_email, items, total_price, created_at
	                     FROM orders WHERE order_id = ?`, orderID).
		WithContext(c.Request.Context()).Scan(&ownerID, &userEmail, &itemsJSON, &totalPrice, &createdAt)
	if err == gocql.ErrNotFound {
		return nil, http.StatusNotFound
	}
	if err != nil {
		return nil, http.StatusInternalServerError
	}

	// Seul le propriétaire accède à sa commande
	if ownerID != userID {
		return nil, http.StatusForbidden
	}

	o := &models.Order{
		ID:         orderID,
		UserID:     ownerID,
		UserEmail:  userEmail,
		TotalPrice: totalPrice,
		CreatedAt:  createdAt,
	}
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			log.Printf("⚠️ Erreur désérialisation items commande %s: %v", orderID, err)
		}
	}
	return o, http.StatusOK
}

func statusMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "Commande introuvable"
	case http.StatusForbidden:
		return "Accès refusé"
	default:
		return "Erreur récupération commande"
	}
}
