package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

func authContext(t *testing.T, header string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	return c, w
}

// Le secret n'est disponible qu'une fois le .env chargé, donc après
// l'init du package : un token émis ensuite doit quand même se vérifier.
func TestAuthRequiredSecretChargeApresInit(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-charge-au-demarrage")

	token, err := utils.GenerateJWT(models.User{
		ID:    "user-1",
		Email: "claire@velora.shop",
		Role:  "admin",
	})
	require.NoError(t, err)

	c, _ := authContext(t, "Bearer "+token)
	AuthRequired()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, "user-1", c.GetString("user_id"))
	assert.Equal(t, "claire@velora.shop", c.GetString("email"))
	assert.Equal(t, "admin", c.GetString("role"))
}

func TestAuthRequiredRejetteMauvaisSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-emission")
	token, err := utils.GenerateJWT(models.User{ID: "user-1"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "autre-secret")
	c, w := authContext(t, "Bearer "+token)
	AuthRequired()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredSansToken(t *testing.T) {
	c, w := authContext(t, "")
	AuthRequired()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRefuseNonAdmin(t *testing.T) {
	c, w := authContext(t, "")
	c.Set("role", "user")
	RequireAdmin()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}
