package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/biblion/internal/reader"
	"github.com/Skotchmaster/biblion/internal/repo"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

type ReaderService struct {
	Repo   *repo.GormRepo
	Opener *reader.Opener
}

func (s *ReaderService) Describe(ctx context.Context, bookID uint) (*reader.Descriptor, error) {
	book, err := s.Repo.GetBook(ctx, bookID)
	if err != nil {
		return nil, lookupErr(err, "book")
	}
	d, err := reader.Describe(book)
	if errors.Is(err, reader.ErrNoDocument) {
		return nil, fmt.Errorf("%v: %w", err, ErrNotFound)
	}
	return d, err
}

// Open returns the document, falling back to the bundled sample when the
// remote file cannot be loaded.
func (s *ReaderService) Open(ctx context.Context, bookID uint) (*reader.Document, error) {
	l := logging.FromContext(ctx).With("svc", "reader.open", "book_id", bookID)

	book, err := s.Repo.GetBook(ctx, bookID)
	if err != nil {
		return nil, lookupErr(err, "book")
	}
	doc, err := s.Opener.Open(ctx, book)
	if errors.Is(err, reader.ErrNoDocument) {
		return nil, fmt.Errorf("%v: %w", err, ErrNotFound)
	}
	if doc == nil {
		l.Error("document_unavailable", "error", err)
		return nil, err
	}
	if doc.Fallback {
		l.Warn("document_fallback", "reason", "remote file unavailable", "error", err)
	}
	return doc, nil
}
