package mocks

import (
	"GIVD-Backend/entities"
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ReceiptRepository struct {
	mock.Mock
}

func (m *ReceiptRepository) CreateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *ReceiptRepository) GetReceiptByID(ctx context.Context, id string) (*entities.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Receipt), args.Error(1)
}

func (m *ReceiptRepository) GetReceipts(ctx context.Context, userID string) ([]*entities.Receipt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Receipt), args.Error(1)
}

func (m *ReceiptRepository) UpdateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *ReceiptRepository) CreateReceiptItem(ctx context.Context, item *entities.ReceiptItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ReceiptRepository) GetReceiptItems(ctx context.Context, receiptID string) ([]*entities.ReceiptItem, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ReceiptItem), args.Error(1)
}

func (m *ReceiptRepository) GetProducts(ctx context.Context) ([]*entities.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Product), args.Error(1)
}

func (m *ReceiptRepository) FindProductByName(ctx context.Context, name string) (*entities.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

func (m *ReceiptRepository) CreateProduct(ctx context.Context, product *entities.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ReceiptRepository) UpsertStockIncrement(ctx context.Context, userID, productID uuid.UUID, quantity, threshold float64) error {
	args := m.Called(ctx, userID, productID, quantity, threshold)
	return args.Error(0)
}
