package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/biblion/internal/catalog"
	"github.com/Skotchmaster/biblion/internal/models"
	"github.com/Skotchmaster/biblion/internal/mykafka"
	"github.com/Skotchmaster/biblion/internal/repo"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

type BookSearcher interface {
	SearchIDs(ctx context.Context, text string, size int) ([]uint, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Search BookSearcher
	Events Publisher
	Now    func() time.Time
}

type ListParams struct {
	Query catalog.Query
	Sort  catalog.SortKey
}

func (s *CatalogService) books(ctx context.Context) ([]models.Book, error) {
	return s.Repo.ListBooks(ctx)
}

// ListBooks filters and sorts the catalog. With a search backend the index
// hits come first and every substring match is kept after them.
func (s *CatalogService) ListBooks(ctx context.Context, p ListParams) ([]models.Book, error) {
	q := p.Query
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, fmt.Errorf("min_price is greater than max_price: %w", ErrValidation)
	}
	if q.MinRating < 0 || q.MinRating > 5 {
		return nil, fmt.Errorf("min_rating must be between 0 and 5: %w", ErrValidation)
	}

	books, err := s.books(ctx)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(q.Text)
	if text != "" && s.Search != nil {
		ids, err := s.Search.SearchIDs(ctx, text, len(books))
		if err == nil {
			rest := q
			rest.Text = ""
			hits := mergeHits(catalog.Resolve(books, ids), catalog.Filter(books, q))
			return catalog.Sort(catalog.Filter(hits, rest), p.Sort, text), nil
		}
		logging.FromContext(ctx).With("svc", "catalog.list").
			Warn("search_backend_failed", "reason", "falling back to substring match", "error", err)
	}

	return catalog.Sort(catalog.Filter(books, q), p.Sort, text), nil
}

// mergeHits appends the substring matches missing from the index hits.
func mergeHits(indexed, matched []models.Book) []models.Book {
	seen := make(map[uint]struct{}, len(indexed))
	out := make([]models.Book, 0, len(indexed)+len(matched))
	for _, b := range indexed {
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	for _, b := range matched {
		if _, ok := seen[b.ID]; !ok {
			out = append(out, b)
		}
	}
	return out
}

func (s *CatalogService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	b, err := s.Repo.GetBook(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "book")
	}
	return b, nil
}

func (s *CatalogService) Bestsellers(ctx context.Context, genre string, key catalog.SortKey) ([]models.Book, error) {
	books, err := s.books(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Bestsellers(books, genre, key), nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]catalog.NameCount, error) {
	books, err := s.books(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(books), nil
}

func (s *CatalogService) Related(ctx context.Context, id uint, n int) ([]models.Book, error) {
	books, err := s.books(ctx)
	if err != nil {
		return nil, err
	}
	book, ok := catalog.FindByID(books, id)
	if !ok {
		return nil, fmt.Errorf("book not found: %w", ErrNotFound)
	}
	if n <= 0 {
		n = catalog.DefaultRelated
	}
	return catalog.Related(books, book, n), nil
}

func (s *CatalogService) Suggest(ctx context.Context, text string) (catalog.Suggestions, error) {
	books, err := s.books(ctx)
	if err != nil {
		return catalog.Suggestions{}, err
	}
	return catalog.Suggest(books, text), nil
}

type CollectionView struct {
	catalog.Collection
	Books []models.Book `json:"books"`
}

type SeasonalView struct {
	catalog.SeasonalList
	Books []models.Book `json:"books"`
}

type AdaptationView struct {
	catalog.Adaptation
	Book *models.Book `json:"book"`
}

func (s *CatalogService) Collections(ctx context.Context) ([]CollectionView, error) {
	books, err := s.books(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CollectionView, 0)
	for _, c := range catalog.Collections() {
		out = append(out, CollectionView{Collection: c, Books: catalog.Resolve(books, c.BookIDs)})
	}
	return out, nil
}

func (s *CatalogService) Collection(ctx context.Context, id string) (*CollectionView, error) {
	c, ok := catalog.FindCollection(id)
	if !ok {
		return nil, fmt.Errorf("collection %q not found: %w", id, ErrNotFound)
	}
	books, err := s.books(ctx)
	if err != nil {
		return nil, err
	}
	return &CollectionView{Collection: c, Books: catalog.Resolve(books, c.BookIDs)}, nil
}

func (s *CatalogService) CurrentSeason(ctx context.Context) (*SeasonalView, error) {
	books, err := s.books(ctx)
	if err != nil {
		return nil, err
	}
	season := catalog.SeasonFor(nowOr(s.Now).Month())
	return &SeasonalView{SeasonalList: season, Books: catalog.Resolve(books, season.BookIDs)}, nil
}

func (s *CatalogService) Adaptations(ctx context.Context) ([]AdaptationView, error) {
	books, err := s.books(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AdaptationView, 0)
	for _, a := range catalog.Adaptations() {
		v := AdaptationView{Adaptation: a}
		if b, ok := catalog.FindByID(books, a.BookID); ok {
			v.Book = &b
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *CatalogService) PatchBook(ctx context.Context, id uint, p repo.BookPatch) (*models.Book, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.patch", "book_id", id)

	if p.Price != nil && *p.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < 0 {
		return nil, fmt.Errorf("original price cannot be negative: %w", ErrValidation)
	}

	book, err := s.Repo.PatchBook(ctx, id, p)
	if err != nil {
		return nil, lookupErr(err, "book")
	}
	l.Info("book_updated", "price", book.Price)

	publish(ctx, s.Events, mykafka.TopicBookEvents, fmt.Sprint(book.ID), mykafka.EventBookUpdated, map[string]any{
		"book_id":        book.ID,
		"price":          book.Price,
		"original_price": book.OriginalPrice,
		"badge":          book.Badge,
	})
	return book, nil
}
