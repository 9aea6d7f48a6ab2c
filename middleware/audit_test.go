package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAuditContextMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderActorName, "backoffice@example.com")
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AuditContext()(func(c echo.Context) error {
		ctx := GetAuditContext(c)
		assert.Equal(t, "backoffice@example.com", ctx.ActorName)
		assert.Equal(t, "test-agent", ctx.UserAgent)
		assert.NotEmpty(t, ctx.IPAddress)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuditContextDefaultsActor(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AuditContext()(func(c echo.Context) error {
		assert.Equal(t, "anonymous", GetAuditContext(c).ActorName)
		return nil
	})
	assert.NoError(t, handler(c))
}

func TestGetAuditContextWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	ctx := GetAuditContext(c)
	assert.Empty(t, ctx.ActorName)
}
