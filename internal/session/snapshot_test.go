package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	s := Parse(map[string]string{
		KeyCart:     `[{"id":1,"title":"The Midnight Library","price":14.99,"quantity":2},{"id":4},{"id":1,"quantity":1},{"id":9,"quantity":0}]`,
		KeyWishlist: `[{"id":2,"price":11.98,"addedAt":1700000000000,"priceWhenAdded":13.5},{"id":7,"price":15.99},{"id":2}]`,
		KeyRecent:   `["dune","", "sapiens","a","b","c","d"]`,
	}, now)

	assert.Equal(t, []CartLine{{BookID: 1, Quantity: 3}, {BookID: 4, Quantity: 1}}, s.Cart)

	require.Len(t, s.Wishlist, 2)
	assert.Equal(t, uint(2), s.Wishlist[0].BookID)
	assert.Equal(t, 13.5, s.Wishlist[0].PriceWhenAdded)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), s.Wishlist[0].AddedAt)
	assert.Equal(t, 15.99, s.Wishlist[1].PriceWhenAdded)
	assert.Equal(t, now, s.Wishlist[1].AddedAt)

	assert.Equal(t, []string{"dune", "sapiens", "a", "b", "c"}, s.Recent)
}

func TestParseMalformedValuesAreIgnored(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"nil", nil},
		{"empty strings", map[string]string{KeyCart: "", KeyWishlist: ""}},
		{"broken json", map[string]string{KeyCart: "[{", KeyWishlist: "nope", KeyRecent: "{}"}},
		{"wrong shape", map[string]string{KeyCart: `{"id":1}`, KeyWishlist: `"x"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Parse(tt.values, now).Empty())
		})
	}
}

func TestParseKeepsGoodValuesNextToBadOnes(t *testing.T) {
	s := Parse(map[string]string{
		KeyCart:     "not json",
		KeyWishlist: `[{"id":5,"price":17.99}]`,
	}, now)
	assert.Empty(t, s.Cart)
	require.Len(t, s.Wishlist, 1)
	assert.Equal(t, uint(5), s.Wishlist[0].BookID)
}
