package catalog

import (
	"sort"
	"strings"

	"github.com/Skotchmaster/biblion/internal/models"
)

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories counts books per category. Known categories come first in
// storefront order (zero counts included), unknown ones follow by name.
func Categories(books []models.Book) []NameCount {
	counts := make(map[string]int)
	for _, b := range books {
		counts[b.Category]++
	}

	out := make([]NameCount, 0, len(Names))
	for _, n := range Names {
		out = append(out, NameCount{Name: n, Count: counts[n]})
		delete(counts, n)
	}

	extra := make([]string, 0, len(counts))
	for n := range counts {
		extra = append(extra, n)
	}
	sort.Strings(extra)
	for _, n := range extra {
		out = append(out, NameCount{Name: n, Count: counts[n]})
	}
	return out
}

const DefaultRelated = 4

// Related returns up to n books sharing the category of book, excluding it.
func Related(books []models.Book, book models.Book, n int) []models.Book {
	if n <= 0 {
		n = DefaultRelated
	}
	out := make([]models.Book, 0, n)
	for _, b := range books {
		if len(out) == n {
			break
		}
		if b.ID != book.ID && b.Category == book.Category {
			out = append(out, b)
		}
	}
	return out
}

const (
	maxTitleSuggestions    = 4
	maxAuthorSuggestions   = 2
	maxCategorySuggestions = 2
)

type Suggestions struct {
	Books      []models.Book `json:"books"`
	Authors    []NameCount   `json:"authors"`
	Categories []NameCount   `json:"categories"`
}

// Suggest builds search-as-you-type suggestions in catalog order.
func Suggest(books []models.Book, text string) Suggestions {
	s := Suggestions{
		Books:      []models.Book{},
		Authors:    []NameCount{},
		Categories: []NameCount{},
	}
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return s
	}

	authorCount := make(map[string]int)
	categoryCount := make(map[string]int)
	for _, b := range books {
		authorCount[b.Author]++
		categoryCount[b.Category]++
	}

	seenAuthor := make(map[string]bool)
	seenCategory := make(map[string]bool)
	for _, b := range books {
		if len(s.Books) < maxTitleSuggestions && strings.Contains(strings.ToLower(b.Title), q) {
			s.Books = append(s.Books, b)
		}
		if len(s.Authors) < maxAuthorSuggestions && !seenAuthor[b.Author] &&
			strings.Contains(strings.ToLower(b.Author), q) {
			seenAuthor[b.Author] = true
			s.Authors = append(s.Authors, NameCount{Name: b.Author, Count: authorCount[b.Author]})
		}
		if len(s.Categories) < maxCategorySuggestions && !seenCategory[b.Category] &&
			strings.Contains(strings.ToLower(b.Category), q) {
			seenCategory[b.Category] = true
			s.Categories = append(s.Categories, NameCount{Name: b.Category, Count: categoryCount[b.Category]})
		}
	}
	return s
}
