package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/biblion/internal/catalog"
	"github.com/Skotchmaster/biblion/internal/repo"
	"github.com/Skotchmaster/biblion/internal/service"
	"github.com/Skotchmaster/biblion/internal/transport"
	"github.com/Skotchmaster/biblion/internal/util"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

const HeaderReaderFallback = "X-Reader-Fallback"

type BookHTTP struct {
	Svc    *service.CatalogService
	Reader *service.ReaderService
}

// categories accepts repeated and comma separated values.
func categories(c echo.Context) []string {
	var out []string
	for _, v := range c.QueryParams()["category"] {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (h *BookHTTP) ListBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.list")

	minPrice, err := util.ParseFloatPtr(c.QueryParam("min_price"))
	if err != nil {
		l.Warn("list_books_failed", "status", 400, "reason", "min_price is not a number")
		return echo.NewHTTPError(http.StatusBadRequest, "min_price must be a number")
	}
	maxPrice, err := util.ParseFloatPtr(c.QueryParam("max_price"))
	if err != nil {
		l.Warn("list_books_failed", "status", 400, "reason", "max_price is not a number")
		return echo.NewHTTPError(http.StatusBadRequest, "max_price must be a number")
	}
	minRating, err := util.ParseFloatPtr(c.QueryParam("min_rating"))
	if err != nil {
		l.Warn("list_books_failed", "status", 400, "reason", "min_rating is not a number")
		return echo.NewHTTPError(http.StatusBadRequest, "min_rating must be a number")
	}

	q := catalog.Query{
		Text:       c.QueryParam("q"),
		Author:     c.QueryParam("author"),
		Categories: categories(c),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	}
	if minRating != nil {
		q.MinRating = *minRating
	}

	books, err := h.Svc.ListBooks(ctx, service.ListParams{Query: q, Sort: catalog.ParseSort(c.QueryParam("sort"))})
	if err != nil {
		return fail(l, "list_books_failed", err, "cannot list books")
	}

	if c.QueryParam("page") == "" && c.QueryParam("size") == "" {
		return c.JSON(http.StatusOK, map[string]any{"data": books, "total": len(books)})
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	start := min(max(offset, 0), len(books))
	end := min(start+limit, len(books))
	pageItems := books[start:end]
	return c.JSON(http.StatusOK, map[string]any{
		"data": pageItems,
		"meta": util.Meta(page, offset, limit, int64(len(books))),
	})
}

func (h *BookHTTP) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.get")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_book_failed", "status", 400, "reason", "id is not an integer")
		return err
	}
	book, err := h.Svc.GetBook(ctx, id)
	if err != nil {
		return fail(l, "get_book_failed", err, "cannot get book")
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) Bestsellers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.bestsellers")

	books, err := h.Svc.Bestsellers(ctx, c.QueryParam("genre"), catalog.ParseSort(c.QueryParam("sort")))
	if err != nil {
		return fail(l, "bestsellers_failed", err, "cannot rank books")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": books, "total": len(books)})
}

func (h *BookHTTP) Related(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.related")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	books, err := h.Svc.Related(ctx, id, util.ParseIntDefault(c.QueryParam("limit"), catalog.DefaultRelated))
	if err != nil {
		return fail(l, "related_failed", err, "cannot load related books")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": books})
}

func (h *BookHTTP) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.categories")

	cats, err := h.Svc.Categories(ctx)
	if err != nil {
		return fail(l, "categories_failed", err, "cannot count categories")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": cats})
}

func (h *BookHTTP) Suggestions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.suggestions")

	s, err := h.Svc.Suggest(ctx, c.QueryParam("q"))
	if err != nil {
		return fail(l, "suggestions_failed", err, "cannot build suggestions")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *BookHTTP) Collections(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "collections.list")

	cols, err := h.Svc.Collections(ctx)
	if err != nil {
		return fail(l, "collections_failed", err, "cannot load collections")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": cols})
}

func (h *BookHTTP) Collection(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "collections.get")

	col, err := h.Svc.Collection(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "collection_failed", err, "cannot load collection")
	}
	return c.JSON(http.StatusOK, col)
}

func (h *BookHTTP) CurrentSeason(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "collections.season")

	season, err := h.Svc.CurrentSeason(ctx)
	if err != nil {
		return fail(l, "season_failed", err, "cannot load seasonal list")
	}
	return c.JSON(http.StatusOK, season)
}

func (h *BookHTTP) Adaptations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "collections.adaptations")

	list, err := h.Svc.Adaptations(ctx)
	if err != nil {
		return fail(l, "adaptations_failed", err, "cannot load adaptations")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": list})
}

func (h *BookHTTP) PatchBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.patch")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req transport.PatchBookRequest
	if err := bindValid(c, &req); err != nil {
		l.Warn("book_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	book, err := h.Svc.PatchBook(ctx, id, repo.BookPatch{
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Badge:         req.Badge,
	})
	if err != nil {
		return fail(l, "book_patch_error", err, "cannot update book")
	}
	l.Info("book_patch_success", "book_id", id)
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) ReaderDescriptor(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.reader")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.Reader.Describe(ctx, id)
	if err != nil {
		return fail(l, "reader_failed", err, "cannot describe document")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *BookHTTP) ReaderFile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.file")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	doc, err := h.Reader.Open(ctx, id)
	if err != nil {
		return fail(l, "document_failed", err, "document unavailable")
	}
	defer doc.Body.Close()

	if doc.Fallback {
		c.Response().Header().Set(HeaderReaderFallback, "true")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+doc.Name+`"`)
	return c.Stream(http.StatusOK, doc.ContentType, doc.Body)
}
