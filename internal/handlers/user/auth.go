package user

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

const resetTokenTTL = time.Hour

// Signup crée un compte local.
// POST /api/auth/signup
func Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=5"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	// email déjà pris ?
	var existingID string
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashedPassword,
		Role:      "customer",
		CreatedAt: &now,
	}

	if err := database.GetPreparedInsertUser().
		Bind(user.ID, user.Email, user.Password, user.Name, user.Role, now).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}
	if err := database.GetPreparedInsertUserByEmail().Bind(user.Email, user.ID).Exec(); err != nil {
		log.Printf("⚠️ Erreur index users_by_email: %v", err)
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

// Login authentifie un compte local.
// POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	var userID string
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&userID); err != nil {
		// Même message que mot de passe faux : pas d'énumération d'emails
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	user, err := cache.GetUserFromCache(userID)
	if err != nil || user.Password == "" {
		// Le cache ne porte pas le hash : relire la ligne complète
		user, err = readUser(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
			return
		}
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

func readUser(userID string) (*models.User, error) {
	var (
		email, password, name, role string
		createdAt                   *time.Time
	)
	if err := database.GetPreparedGetUserByID().Bind(userID).Scan(
		&email, &password, &name, &role, &createdAt); err != nil {
		return nil, err
	}
	return &models.User{ID: userID, Email: email, Password: password, Name: name, Role: role, CreatedAt: createdAt}, nil
}

// RequestPasswordReset génère un token de réinitialisation (1h) et
// l'envoie par e-mail. Répond 200 même si l'email est inconnu.
// POST /api/auth/reset
func RequestPasswordReset(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	var userID string
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&userID); err != nil {
		// Pas de fuite : même réponse que pour un email connu
		c.JSON(http.StatusOK, gin.H{"message": "Si un compte existe, un e-mail a été envoyé"})
		return
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}
	token := hex.EncodeToString(raw)

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// TTL Scylla aligné sur l'expiration du lien
	if err := session.Query(`INSERT INTO reset_tokens (token, user_id, expires_at) VALUES (?, ?, ?) USING TTL ?`,
		token, userID, time.Now().Add(resetTokenTTL), int(resetTokenTTL.Seconds())).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création token"})
		return
	}

	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	link := fmt.Sprintf("%s/reset/%s", baseURL, token)

	go func() {
		if err := utils.SendEmail(input.Email, "Réinitialisation de votre mot de passe",
			utils.GenerateResetPasswordHTML(link), nil); err != nil {
			log.Printf("❌ Erreur envoi e-mail reset: %v", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Si un compte existe, un e-mail a été envoyé"})
}

// SetNewPassword consomme un token de réinitialisation valide.
// POST /api/auth/new-password
func SetNewPassword(c *gin.Context) {
	var input struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=5"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var userID string
	var expiresAt time.Time
	err = session.Query(`SELECT user_id, expires_at FROM reset_tokens WHERE token = ?`, input.Token).
		WithContext(c.Request.Context()).Scan(&userID, &expiresAt)
	if err != nil || time.Now().After(expiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token invalide ou expiré"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour mot de passe"})
		return
	}

	if err := session.Query(`UPDATE users SET password = ? WHERE user_id = ?`, hashedPassword, userID).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour mot de passe"})
		return
	}

	// Token à usage unique
	if err := session.Query(`DELETE FROM reset_tokens WHERE token = ?`, input.Token).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("⚠️ Erreur suppression token reset: %v", err)
	}

	cache.InvalidateUserCache(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe mis à jour"})
}
