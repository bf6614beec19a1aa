package stock

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/entities"
	"GIVD-Backend/pkg/consumption"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	StockService interface {
		GetStock(ctx context.Context, userID string) ([]domain.StockItemResponse, error)
		UpdateStockItem(ctx context.Context, id string, req domain.UpdateStockRequest, userID string) error
		GetLowStock(ctx context.Context, userID string) ([]domain.StockItemResponse, error)
		GetDashboardSummary(ctx context.Context, userID string) (domain.DashboardSummaryResponse, error)
	}

	stockService struct {
		stockRepository       StockRepository
		consumptionRepository consumption.ConsumptionRepository
	}
)

func NewStockService(stockRepository StockRepository, consumptionRepository consumption.ConsumptionRepository) StockService {
	return &stockService{
		stockRepository:       stockRepository,
		consumptionRepository: consumptionRepository,
	}
}

func (s *stockService) GetStock(ctx context.Context, userID string) ([]domain.StockItemResponse, error) {
	items, err := s.stockRepository.GetStockItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(items), nil
}

func (s *stockService) UpdateStockItem(ctx context.Context, id string, req domain.UpdateStockRequest, userID string) error {
	item, err := s.stockRepository.GetStockItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrStockItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.ErrNegativeQuantity
		}
		item.Quantity = *req.Quantity
	}
	if req.Threshold != nil {
		item.Threshold = *req.Threshold
	}

	return s.stockRepository.UpdateStockItem(ctx, item)
}

func (s *stockService) GetLowStock(ctx context.Context, userID string) ([]domain.StockItemResponse, error) {
	items, err := s.stockRepository.GetLowStockItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(items), nil
}

func (s *stockService) GetDashboardSummary(ctx context.Context, userID string) (domain.DashboardSummaryResponse, error) {
	total, err := s.stockRepository.CountStockItems(ctx, userID)
	if err != nil {
		return domain.DashboardSummaryResponse{}, err
	}

	lowItems, err := s.stockRepository.GetLowStockItems(ctx, userID)
	if err != nil {
		return domain.DashboardSummaryResponse{}, err
	}

	recentLogs, err := s.consumptionRepository.GetRecentLogs(ctx, userID, 5)
	if err != nil {
		return domain.DashboardSummaryResponse{}, err
	}

	summary := domain.DashboardSummaryResponse{
		TotalStockItems: int(total),
		LowStockCount:   len(lowItems),
		LowStock:        toStockResponses(lowItems),
	}
	for _, log := range recentLogs {
		productName := ""
		if log.Product != nil {
			productName = log.Product.Name
		}
		summary.RecentLogs = append(summary.RecentLogs, domain.ConsumptionLogResponse{
			ID:          log.ID.String(),
			ProductID:   log.ProductID.String(),
			ProductName: productName,
			Quantity:    log.Quantity,
			Date:        log.Date,
		})
	}
	return summary, nil
}

func toStockResponses(items []*entities.StockItem) []domain.StockItemResponse {
	response := make([]domain.StockItemResponse, 0, len(items))
	for _, item := range items {
		res := domain.StockItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Threshold: item.Threshold,
			IsLow:     item.Quantity <= item.Threshold,
		}
		if item.Product != nil {
			res.ProductName = item.Product.Name
			res.Category = item.Product.Category
			res.Unit = item.Product.Unit
		}
		response = append(response, res)
	}
	return response
}
