package routes

import (
	"testing"

	"shopfront/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.LoadConfig()

	r := gin.New()
	SetupRoutes(r)

	routes := map[string]bool{}
	for _, route := range r.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	return routes
}

func TestSetupRoutesRegistersStorefrontSurface(t *testing.T) {
	routes := registeredRoutes(t)

	for _, want := range []string{
		"GET /health",
		"POST /auth/register",
		"POST /auth/login",
		"GET /products",
		"GET /products/:id",
		"GET /categories",
		"GET /cart",
		"POST /cart",
		"GET /checkout",
		"POST /checkout",
		"GET /orders",
		"GET /admin/orders",
		"PATCH /admin/orders/:id/status",
		"POST /admin/products",
	} {
		assert.Contains(t, routes, want)
	}
}

func TestOrderStatusRouteMatchesDocumentedPath(t *testing.T) {
	routes := registeredRoutes(t)

	assert.Contains(t, routes, "PATCH /admin/orders/:id/status")
	assert.NotContains(t, routes, "PATCH /admin/orders/:id")
}
