package mocks

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/entities"
	"context"

	"github.com/stretchr/testify/mock"
)

type ConsumptionRepository struct {
	mock.Mock
}

func (m *ConsumptionRepository) CreateLog(ctx context.Context, log *entities.ConsumptionLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *ConsumptionRepository) GetLogs(ctx context.Context, userID string) ([]*entities.ConsumptionLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ConsumptionLog), args.Error(1)
}

func (m *ConsumptionRepository) GetRecentLogs(ctx context.Context, userID string, limit int) ([]*entities.ConsumptionLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ConsumptionLog), args.Error(1)
}

func (m *ConsumptionRepository) GetTopProducts(ctx context.Context, userID string, limit int) ([]domain.TopProductResponse, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopProductResponse), args.Error(1)
}

func (m *ConsumptionRepository) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

func (m *ConsumptionRepository) DecrementStock(ctx context.Context, userID, productID string, quantity float64) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}
