package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(New("secret"))
	app.Get("/search/products", func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) })
	app.Post("/reindex", func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) })
	app.Delete("/index/product/:id", func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) })
	return app
}

func TestReadsStayOpen(t *testing.T) {
	app := newApp()

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/search/products", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestMutationsRequireKey(t *testing.T) {
	app := newApp()

	res, err := app.Test(httptest.NewRequest(http.MethodPost, "/reindex", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, err = app.Test(httptest.NewRequest(http.MethodDelete, "/index/product/p1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/reindex", nil)
	req.Header.Set(ApiKeyHeaderName, "secret")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/reindex", nil)
	req.Header.Set(ApiKeyHeaderName, "wrong")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
