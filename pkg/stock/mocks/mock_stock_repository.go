package mocks

import (
	"GIVD-Backend/entities"
	"context"

	"github.com/stretchr/testify/mock"
)

type StockRepository struct {
	mock.Mock
}

func (m *StockRepository) GetStockItems(ctx context.Context, userID string) ([]*entities.StockItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StockItem), args.Error(1)
}

func (m *StockRepository) GetStockItemByID(ctx context.Context, id string) (*entities.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StockItem), args.Error(1)
}

func (m *StockRepository) UpdateStockItem(ctx context.Context, item *entities.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *StockRepository) GetLowStockItems(ctx context.Context, userID string) ([]*entities.StockItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StockItem), args.Error(1)
}

func (m *StockRepository) CountStockItems(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
