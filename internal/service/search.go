package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/biblion/internal/kv"
)

const maxQueryLen = 200

type SearchHistoryService struct {
	Store kv.RecentSearches
}

func (s *SearchHistoryService) Record(ctx context.Context, userID uuid.UUID, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required: %w", ErrValidation)
	}
	if len(query) > maxQueryLen {
		return nil, fmt.Errorf("query is too long: %w", ErrValidation)
	}
	return s.Store.Add(ctx, userID.String(), query)
}

func (s *SearchHistoryService) List(ctx context.Context, userID uuid.UUID) ([]string, error) {
	list, err := s.Store.List(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func (s *SearchHistoryService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.Store.Clear(ctx, userID.String())
}
