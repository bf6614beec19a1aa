package stock

import (
	"GIVD-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	StockRepository interface {
		GetStockItems(ctx context.Context, userID string) ([]*entities.StockItem, error)
		GetStockItemByID(ctx context.Context, id string) (*entities.StockItem, error)
		UpdateStockItem(ctx context.Context, item *entities.StockItem) error
		GetLowStockItems(ctx context.Context, userID string) ([]*entities.StockItem, error)
		CountStockItems(ctx context.Context, userID string) (int64, error)
	}

	stockRepository struct {
		db *gorm.DB
	}
)

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) GetStockItems(ctx context.Context, userID string) ([]*entities.StockItem, error) {
	var items []*entities.StockItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Product").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *stockRepository) GetStockItemByID(ctx context.Context, id string) (*entities.StockItem, error) {
	var item entities.StockItem
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Product").
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) UpdateStockItem(ctx context.Context, item *entities.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *stockRepository) GetLowStockItems(ctx context.Context, userID string) ([]*entities.StockItem, error) {
	var items []*entities.StockItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND quantity <= threshold", userID).
		Preload("Product").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *stockRepository) CountStockItems(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.StockItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
