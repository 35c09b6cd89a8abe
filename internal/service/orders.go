package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/biblion/internal/models"
	"github.com/Skotchmaster/biblion/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

func (s *OrderService) List(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	total, orders, err := s.Repo.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return total, orders, nil
}

func (s *OrderService) Get(ctx context.Context, userID uuid.UUID, number string) (*models.Order, error) {
	order, err := s.Repo.GetOrderByNumber(ctx, userID, number)
	if err != nil {
		return nil, lookupErr(err, "order")
	}
	return order, nil
}
