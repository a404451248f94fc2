package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/ecobirla/ecopoints/core"
)

func TestOrderingBind(t *testing.T) {
	newCtx := func(query string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		return echo.New().NewContext(req, httptest.NewRecorder())
	}

	t.Run("allowed fields parse with direction", func(t *testing.T) {
		ord := new(Ordering)
		ord.Bind(newCtx("ordering=name,-joined_at"), "name", "joined_at")
		assert.Equal(t, []core.DBOrdering{
			{Field: "name", Ascending: true},
			{Field: "joined_at", Ascending: false},
		}, ord.Orderings)
	})

	t.Run("fields outside the allow-list are dropped", func(t *testing.T) {
		ord := new(Ordering)
		ord.Bind(newCtx("ordering=password_hash,name%20--,-name"), "name")
		assert.Equal(t, []core.DBOrdering{
			{Field: "name", Ascending: false},
		}, ord.Orderings)
	})

	t.Run("no param binds nothing", func(t *testing.T) {
		ord := new(Ordering)
		ord.Bind(newCtx(""), "name")
		assert.Empty(t, ord.Orderings)
	})
}
