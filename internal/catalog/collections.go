package catalog

import (
	"slices"
	"time"

	"github.com/Skotchmaster/biblion/internal/models"
)

type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BookIDs     []uint `json:"bookIds"`
}

type SeasonalList struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Subtitle    string       `json:"subtitle"`
	Description string       `json:"description"`
	BookIDs     []uint       `json:"bookIds"`
	Months      []time.Month `json:"months"`
}

type Adaptation struct {
	ID          int    `json:"id"`
	MovieTitle  string `json:"movieTitle"`
	MovieYear   string `json:"movieYear"`
	StreamingOn string `json:"streamingOn"`
	Type        string `json:"type"`
	Tagline     string `json:"tagline"`
	BookID      uint   `json:"bookId"`
}

var collections = []Collection{
	{ID: "staff-picks", Name: "Staff Picks", Description: "Handpicked favorites from our expert booksellers", BookIDs: []uint{1, 4, 7}},
	{ID: "romance-essentials", Name: "Romance Essentials", Description: "Swoon-worthy love stories that will capture your heart", BookIDs: []uint{6}},
	{ID: "trending-now", Name: "Trending Now", Description: "The most talked-about books of the moment", BookIDs: []uint{1, 2, 3}},
	{ID: "quick-reads", Name: "Quick Reads", Description: "Perfect for busy readers - finish in a weekend", BookIDs: []uint{4, 6}},
	{ID: "award-winners", Name: "Award Winners", Description: "Critically acclaimed masterpieces", BookIDs: []uint{5, 7, 8}},
	{ID: "book-club", Name: "Book Club Favorites", Description: "Great conversation starters for your next meeting", BookIDs: []uint{1, 5, 7}},
	{ID: "mind-expanding", Name: "Mind-Expanding", Description: "Books that will change the way you think", BookIDs: []uint{2, 7}},
	{ID: "late-night", Name: "Late Night Reads", Description: "Page-turners you won't be able to put down", BookIDs: []uint{3, 4, 8}},
}

var seasonalLists = []SeasonalList{
	{
		ID: "winter", Name: "Winter Warmers", Subtitle: "Cozy reads for cold nights",
		Description: "Curl up with these heartwarming stories perfect for snowy days and warm blankets.",
		BookIDs:     []uint{1, 5, 6}, Months: []time.Month{time.December, time.January, time.February},
	},
	{
		ID: "spring", Name: "Spring Awakening", Subtitle: "Fresh starts & new beginnings",
		Description: "Celebrate renewal with uplifting stories of growth, change, and fresh perspectives.",
		BookIDs:     []uint{2, 4, 6}, Months: []time.Month{time.March, time.April, time.May},
	},
	{
		ID: "summer", Name: "Summer Escapes", Subtitle: "Beach reads & adventures",
		Description: "Light, breezy reads perfect for lazy days at the beach or by the pool.",
		BookIDs:     []uint{3, 4, 8}, Months: []time.Month{time.June, time.July, time.August},
	},
	{
		ID: "fall", Name: "Autumn Treasures", Subtitle: "Mysteries & magical tales",
		Description: "Atmospheric reads that capture the magic of falling leaves and crisp evenings.",
		BookIDs:     []uint{3, 5, 7}, Months: []time.Month{time.September, time.October, time.November},
	},
}

var adaptations = []Adaptation{
	{ID: 1, MovieTitle: "The Midnight Library", MovieYear: "Coming Soon", StreamingOn: "Netflix", Type: "movie", Tagline: "Every choice creates a new world", BookID: 1},
	{ID: 2, MovieTitle: "Atomic Habits", MovieYear: "Documentary 2024", StreamingOn: "Prime Video", Type: "documentary", Tagline: "Small changes, remarkable results", BookID: 2},
	{ID: 3, MovieTitle: "The Silent Patient", MovieYear: "Coming 2025", StreamingOn: "HBO Max", Type: "movie", Tagline: "She stopped speaking. He needs to know why.", BookID: 3},
	{ID: 4, MovieTitle: "Project Hail Mary", MovieYear: "Coming 2026", StreamingOn: "Theaters", Type: "movie", Tagline: "Starring Ryan Gosling", BookID: 4},
	{ID: 5, MovieTitle: "Educated", MovieYear: "In Development", StreamingOn: "Universal", Type: "movie", Tagline: "A true story of survival and self-discovery", BookID: 5},
}

func Collections() []Collection      { return slices.Clone(collections) }
func SeasonalLists() []SeasonalList { return slices.Clone(seasonalLists) }
func Adaptations() []Adaptation     { return slices.Clone(adaptations) }

// FindCollection looks up regular collections first, then seasonal lists.
func FindCollection(id string) (Collection, bool) {
	for _, c := range collections {
		if c.ID == id {
			return c, true
		}
	}
	for _, s := range seasonalLists {
		if s.ID == id {
			return Collection{ID: s.ID, Name: s.Name, Description: s.Description, BookIDs: s.BookIDs}, true
		}
	}
	return Collection{}, false
}

// SeasonFor falls back to the first (winter) list.
func SeasonFor(month time.Month) SeasonalList {
	for _, s := range seasonalLists {
		if slices.Contains(s.Months, month) {
			return s
		}
	}
	return seasonalLists[0]
}

// Resolve maps ids to books in id order, skipping unknown ids.
func Resolve(books []models.Book, ids []uint) []models.Book {
	out := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := FindByID(books, id); ok {
			out = append(out, b)
		}
	}
	return out
}
