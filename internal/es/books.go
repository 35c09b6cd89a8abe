package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/biblion/internal/models"
)

const indexMapping = `{
  "mappings": {
    "properties": {
      "title":       {"type": "text"},
      "author":      {"type": "text"},
      "description": {"type": "text"},
      "category":    {"type": "keyword", "fields": {"text": {"type": "text"}}},
      "price":       {"type": "float"},
      "rating":      {"type": "float"},
      "reviews":     {"type": "integer"}
    }
  }
}`

type BookIndex struct {
	Client *elasticsearch.Client
	Index  string
}

type bookDoc struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("elasticsearch %s: %s: %s", op, res.Status(), strings.TrimSpace(string(body)))
}

func (i *BookIndex) EnsureIndex(ctx context.Context) error {
	res, err := i.Client.Indices.Exists([]string{i.Index}, i.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = i.Client.Indices.Create(i.Index,
		i.Client.Indices.Create.WithContext(ctx),
		i.Client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

// BulkBody renders books as an NDJSON bulk request keyed by book id.
func BulkBody(books []models.Book) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, b := range books {
		meta := map[string]any{"index": map[string]any{"_id": strconv.FormatUint(uint64(b.ID), 10)}}
		if err := enc.Encode(meta); err != nil {
			return nil, err
		}
		doc := bookDoc{
			Title: b.Title, Author: b.Author, Description: b.Description, Category: b.Category,
			Price: b.Price, Rating: b.Rating, Reviews: b.Reviews,
		}
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	}
	return &buf, nil
}

func (i *BookIndex) IndexBooks(ctx context.Context, books []models.Book) error {
	if len(books) == 0 {
		return nil
	}
	body, err := BulkBody(books)
	if err != nil {
		return err
	}

	res, err := i.Client.Bulk(body,
		i.Client.Bulk.WithContext(ctx),
		i.Client.Bulk.WithIndex(i.Index),
		i.Client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch bulk: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("bulk", res)
	}

	var out struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return fmt.Errorf("elasticsearch bulk decode: %w", err)
	}
	if out.Errors {
		return fmt.Errorf("elasticsearch bulk: some documents were rejected")
	}
	return nil
}

func SearchBody(text string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     text,
				"fields":    []string{"title^3", "author^2", "description", "category.text"},
				"fuzziness": "AUTO",
			},
		},
		"size":    size,
		"_source": false,
	}
}

// SearchIDs returns matching book ids ordered by score.
func (i *BookIndex) SearchIDs(ctx context.Context, text string, size int) ([]uint, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(SearchBody(text, size)); err != nil {
		return nil, err
	}

	res, err := i.Client.Search(
		i.Client.Search.WithContext(ctx),
		i.Client.Search.WithIndex(i.Index),
		i.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("search", res)
	}

	var r struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("elasticsearch search decode: %w", err)
	}

	ids := make([]uint, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		id, err := strconv.ParseUint(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
