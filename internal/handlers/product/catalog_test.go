package product

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func catalogContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestPageSizeParDefaut(t *testing.T) {
	c := catalogContext(t, "/api/products")
	assert.Equal(t, 2, pageSize(c))
}

func TestPageSizeDepuisEnv(t *testing.T) {
	t.Setenv("CATALOG_PAGE_SIZE", "12")
	c := catalogContext(t, "/api/products")
	assert.Equal(t, 12, pageSize(c))
}

func TestPageSizeQueryPrioritaireSurEnv(t *testing.T) {
	t.Setenv("CATALOG_PAGE_SIZE", "12")
	c := catalogContext(t, "/api/products?per_page=5")
	assert.Equal(t, 5, pageSize(c))
}

func TestPageSizeValeursInvalidesIgnorees(t *testing.T) {
	t.Setenv("CATALOG_PAGE_SIZE", "zero")
	c := catalogContext(t, "/api/products?per_page=-3")
	assert.Equal(t, 2, pageSize(c))
}
