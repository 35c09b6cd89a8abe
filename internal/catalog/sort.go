package catalog

import (
	"sort"
	"strings"

	"github.com/Skotchmaster/biblion/internal/models"
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortReviews   SortKey = "reviews"
	SortNewest    SortKey = "newest"
	SortRelevance SortKey = "relevance"
)

func ParseSort(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceLow, SortPriceHigh, SortRating, SortReviews, SortNewest, SortRelevance:
		return k
	default:
		return SortFeatured
	}
}

// Sort returns a sorted copy. text is only used by SortRelevance.
func Sort(books []models.Book, key SortKey, text string) []models.Book {
	out := append([]models.Book(nil), books...)

	var less func(a, b models.Book) bool
	switch key {
	case SortPriceLow:
		less = func(a, b models.Book) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b models.Book) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b models.Book) bool { return a.Rating > b.Rating }
	case SortReviews:
		less = func(a, b models.Book) bool { return a.Reviews > b.Reviews }
	case SortNewest:
		less = func(a, b models.Book) bool { return a.ID > b.ID }
	case SortRelevance:
		q := strings.ToLower(strings.TrimSpace(text))
		if q == "" {
			return out
		}
		exact := func(b models.Book) bool { return strings.ToLower(b.Title) == q }
		less = func(a, b models.Book) bool { return exact(a) && !exact(b) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
