package consumption

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ConsumptionRepository interface {
		CreateLog(ctx context.Context, log *entities.ConsumptionLog) error
		GetLogs(ctx context.Context, userID string) ([]*entities.ConsumptionLog, error)
		GetRecentLogs(ctx context.Context, userID string, limit int) ([]*entities.ConsumptionLog, error)
		GetTopProducts(ctx context.Context, userID string, limit int) ([]domain.TopProductResponse, error)
		GetProductByID(ctx context.Context, id string) (*entities.Product, error)
		DecrementStock(ctx context.Context, userID, productID string, quantity float64) error
	}

	consumptionRepository struct {
		db *gorm.DB
	}
)

func NewConsumptionRepository(db *gorm.DB) ConsumptionRepository {
	return &consumptionRepository{db: db}
}

func (r *consumptionRepository) CreateLog(ctx context.Context, log *entities.ConsumptionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *consumptionRepository) GetLogs(ctx context.Context, userID string) ([]*entities.ConsumptionLog, error) {
	var logs []*entities.ConsumptionLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Product").
		Order("date desc").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *consumptionRepository) GetRecentLogs(ctx context.Context, userID string, limit int) ([]*entities.ConsumptionLog, error) {
	var logs []*entities.ConsumptionLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Product").
		Order("date desc").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *consumptionRepository) GetTopProducts(ctx context.Context, userID string, limit int) ([]domain.TopProductResponse, error) {
	var rows []domain.TopProductResponse
	if err := r.db.WithContext(ctx).Model(&entities.ConsumptionLog{}).
		Select("products.name AS product_name, SUM(consumption_logs.quantity) AS total").
		Joins("JOIN products ON products.id = consumption_logs.product_id").
		Where("consumption_logs.user_id = ?", userID).
		Group("products.name").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *consumptionRepository) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock clamps at zero inside the statement, so racing increments
// from receipt ingestion cannot be lost and quantity never goes negative.
func (r *consumptionRepository) DecrementStock(ctx context.Context, userID, productID string, quantity float64) error {
	return r.db.WithContext(ctx).Model(&entities.StockItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		UpdateColumn("quantity", gorm.Expr("GREATEST(quantity - ?, 0)", quantity)).Error
}
