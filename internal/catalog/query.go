package catalog

import (
	"strings"

	"github.com/Skotchmaster/biblion/internal/models"
)

// Categories in storefront order.
var Names = []string{
	"Fiction",
	"Non-Fiction",
	"Mystery",
	"Sci-Fi",
	"Romance",
	"Biography",
	"Self-Help",
	"History",
}

// Pseudo categories meaning "no category filter".
const (
	AllBooks  = "All Books"
	AllGenres = "All Genres"
)

type Query struct {
	Text       string
	Author     string
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  float64
}

func isAll(category string) bool {
	switch strings.TrimSpace(category) {
	case "", AllBooks, AllGenres, "all":
		return true
	}
	return false
}

func categorySet(categories []string) map[string]struct{} {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if isAll(c) {
			return nil
		}
		set[strings.TrimSpace(c)] = struct{}{}
	}
	return set
}

// MatchesText is a case-insensitive substring match over the searchable fields.
func MatchesText(b models.Book, text string) bool {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.Description), q) ||
		strings.Contains(strings.ToLower(b.Category), q)
}

// Filter returns the books matching every set criterion, in input order.
func Filter(books []models.Book, q Query) []models.Book {
	cats := categorySet(q.Categories)
	author := strings.ToLower(strings.TrimSpace(q.Author))

	out := make([]models.Book, 0, len(books))
	for _, b := range books {
		if len(cats) > 0 {
			if _, ok := cats[b.Category]; !ok {
				continue
			}
		}
		if q.MinPrice != nil && b.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && b.Price > *q.MaxPrice {
			continue
		}
		if b.Rating < q.MinRating {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(b.Author), author) {
			continue
		}
		if !MatchesText(b, q.Text) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func FindByID(books []models.Book, id uint) (models.Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return models.Book{}, false
}
