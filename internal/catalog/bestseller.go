package catalog

import (
	"math"
	"sort"

	"github.com/Skotchmaster/biblion/internal/models"
)

func BestsellerScore(b models.Book) float64 {
	return b.Rating * math.Log10(float64(b.Reviews)+1)
}

// Bestsellers ranks by BestsellerScore, then applies an optional re-sort.
// SortNewest reverses the ranked list.
func Bestsellers(books []models.Book, genre string, key SortKey) []models.Book {
	var ranked []models.Book
	if isAll(genre) {
		ranked = append([]models.Book(nil), books...)
	} else {
		ranked = Filter(books, Query{Categories: []string{genre}})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return BestsellerScore(ranked[i]) > BestsellerScore(ranked[j])
	})

	switch key {
	case SortPriceLow, SortPriceHigh, SortRating:
		return Sort(ranked, key, "")
	case SortNewest:
		for i, j := 0, len(ranked)-1; i < j; i, j = i+1, j-1 {
			ranked[i], ranked[j] = ranked[j], ranked[i]
		}
	}
	return ranked
}
