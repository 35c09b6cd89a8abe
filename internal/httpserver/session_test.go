package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/biblion/internal/service"
)

func TestRecentSearchRoutes(t *testing.T) {
	h := newHarness(t)
	token, _ := h.register(t, "ada@example.com")

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/api/v1/search/recent", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/api/v1/search/recent", token, `{"query":""}`).Code)

	for _, q := range []string{"dune", "sapiens", "dune"} {
		rec := h.do(t, http.MethodPost, "/api/v1/search/recent", token, `{"query":"`+q+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := h.do(t, http.MethodGet, "/api/v1/search/recent", token, "")
	var body struct {
		Data []string `json:"data"`
	}
	decode(t, rec, &body)
	assert.Equal(t, []string{"dune", "sapiens"}, body.Data)

	assert.Equal(t, http.StatusNoContent, h.do(t, http.MethodDelete, "/api/v1/search/recent", token, "").Code)
	rec = h.do(t, http.MethodGet, "/api/v1/search/recent", token, "")
	decode(t, rec, &body)
	assert.Empty(t, body.Data)
}

func TestImportSnapshotRoute(t *testing.T) {
	h := newHarness(t)
	token, _ := h.register(t, "ada@example.com")

	payload := `{"values":{` +
		`"biblion-cart":"[{\"id\":1,\"quantity\":2},{\"id\":999}]",` +
		`"biblion-wishlist":"[{\"id\":4,\"addedAt\":1720915200000,\"priceWhenAdded\":20.5}]",` +
		`"biblion-recent-searches":"not json"}}`
	rec := h.do(t, http.MethodPost, "/api/v1/session/import", token, payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res service.ImportResult
	decode(t, rec, &res)
	assert.Equal(t, 1, res.CartLines)
	assert.Equal(t, 1, res.WishlistItems)
	assert.Equal(t, 0, res.RecentQueries)
	assert.Equal(t, 1, res.Skipped)

	rec = h.do(t, http.MethodGet, "/api/v1/cart", token, "")
	var cart cartBody
	decode(t, rec, &cart)
	assert.Equal(t, uint(2), cart.Count)
}
