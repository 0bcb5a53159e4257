package invoice

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

// DownloadInvoice génère la facture PDF d'une commande à la volée.
// GET /api/orders/:id/invoice
func DownloadInvoice(c *gin.Context) {
	userID := c.GetString("user_id")

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		log.Printf("❌ Erreur session ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var (
		ownerID    string
		userEmail  string
		itemsJSON  string
		totalPrice float64
		createdAt  time.Time
	)

	err = session.Query(`SELECT user_id, user_email, items, total_price, created_at
	                     FROM orders WHERE order_id = ?`, gocql.UUID(orderUUID)).
		WithContext(c.Request.Context()).Scan(&ownerID, &userEmail, &itemsJSON, &totalPrice, &createdAt)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		log.Printf("❌ Erreur lecture commande %s: %v", orderUUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commande"})
		return
	}

	// La facture n'est servie qu'au propriétaire de la commande
	if ownerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	o := models.Order{
		ID:         gocql.UUID(orderUUID),
		UserID:     ownerID,
		UserEmail:  userEmail,
		TotalPrice: totalPrice,
		CreatedAt:  createdAt,
	}
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			log.Printf("❌ Erreur désérialisation items commande %s: %v", orderUUID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande"})
			return
		}
	}

	pdfBytes, err := utils.GenerateInvoicePDF(o)
	if err != nil {
		log.Printf("❌ Erreur génération PDF commande %s: %v", orderUUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération facture"})
		return
	}

	log.Printf("📤 Facture %s servie à %s", orderUUID, userID)

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=facture-%s.pdf", orderUUID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
