// Package session reads the storefront's browser storage values so a
// signed-in user can carry a guest cart and wishlist over to their account.
package session

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	KeyCart     = "biblion-cart"
	KeyWishlist = "biblion-wishlist"
	KeyRecent   = "biblion-recent-searches"

	maxRecent = 5
)

type CartLine struct {
	BookID   uint
	Quantity uint
}

type WishlistEntry struct {
	BookID         uint
	AddedAt        time.Time
	PriceWhenAdded float64
}

type Snapshot struct {
	Cart     []CartLine
	Wishlist []WishlistEntry
	Recent   []string
}

func (s Snapshot) Empty() bool {
	return len(s.Cart) == 0 && len(s.Wishlist) == 0 && len(s.Recent) == 0
}

type rawCartLine struct {
	ID       uint `json:"id"`
	Quantity *int `json:"quantity"`
}

type rawWishlistEntry struct {
	ID             uint     `json:"id"`
	Price          float64  `json:"price"`
	AddedAt        int64    `json:"addedAt"`
	PriceWhenAdded *float64 `json:"priceWhenAdded"`
}

// Parse decodes each value on its own. A value that fails to decode is
// treated as absent.
func Parse(values map[string]string, now time.Time) Snapshot {
	return Snapshot{
		Cart:     parseCart(values[KeyCart]),
		Wishlist: parseWishlist(values[KeyWishlist], now),
		Recent:   parseRecent(values[KeyRecent]),
	}
}

func parseCart(raw string) []CartLine {
	var items []rawCartLine
	if raw == "" || json.Unmarshal([]byte(raw), &items) != nil {
		return nil
	}

	idx := make(map[uint]int)
	var out []CartLine
	for _, it := range items {
		if it.ID == 0 {
			continue
		}
		qty := 1
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		if qty <= 0 {
			continue
		}
		if i, ok := idx[it.ID]; ok {
			out[i].Quantity += uint(qty)
			continue
		}
		idx[it.ID] = len(out)
		out = append(out, CartLine{BookID: it.ID, Quantity: uint(qty)})
	}
	return out
}

func parseWishlist(raw string, now time.Time) []WishlistEntry {
	var items []rawWishlistEntry
	if raw == "" || json.Unmarshal([]byte(raw), &items) != nil {
		return nil
	}

	seen := make(map[uint]bool)
	var out []WishlistEntry
	for _, it := range items {
		if it.ID == 0 || seen[it.ID] {
			continue
		}
		seen[it.ID] = true

		added := now
		if it.AddedAt > 0 {
			added = time.UnixMilli(it.AddedAt).UTC()
		}
		price := it.Price
		if it.PriceWhenAdded != nil {
			price = *it.PriceWhenAdded
		}
		out = append(out, WishlistEntry{BookID: it.ID, AddedAt: added, PriceWhenAdded: price})
	}
	return out
}

func parseRecent(raw string) []string {
	var items []string
	if raw == "" || json.Unmarshal([]byte(raw), &items) != nil {
		return nil
	}
	var out []string
	for _, q := range items {
		if strings.TrimSpace(q) == "" {
			continue
		}
		out = append(out, q)
		if len(out) == maxRecent {
			break
		}
	}
	return out
}
