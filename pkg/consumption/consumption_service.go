package consumption

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/entities"
	"GIVD-Backend/internal/events"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ConsumptionService interface {
		LogConsumption(ctx context.Context, req domain.LogConsumptionRequest, userID string) (domain.ConsumptionLogResponse, error)
		GetConsumptionLogs(ctx context.Context, userID string) ([]domain.ConsumptionLogResponse, error)
		GetTopProducts(ctx context.Context, userID string) ([]domain.TopProductResponse, error)
	}

	consumptionService struct {
		consumptionRepository ConsumptionRepository
		hub                   *events.Hub
	}
)

func NewConsumptionService(consumptionRepository ConsumptionRepository, hub *events.Hub) ConsumptionService {
	return &consumptionService{
		consumptionRepository: consumptionRepository,
		hub:                   hub,
	}
}

// LogConsumption appends a log row then decrements the stock row, clamped at
// zero. The two writes are independent; the log is the source of truth for
// the history and charts, the stock row is best-effort current state.
func (s *consumptionService) LogConsumption(ctx context.Context, req domain.LogConsumptionRequest, userID string) (domain.ConsumptionLogResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ConsumptionLogResponse{}, domain.ErrParseUUID
	}
	productUUID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return domain.ConsumptionLogResponse{}, domain.ErrParseUUID
	}

	product, err := s.consumptionRepository.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ConsumptionLogResponse{}, domain.ErrProductNotFound
		}
		return domain.ConsumptionLogResponse{}, err
	}

	log := &entities.ConsumptionLog{
		ID:        uuid.New(),
		UserID:    userUUID,
		ProductID: productUUID,
		Quantity:  req.Quantity,
		Date:      time.Now(),
	}
	if err := s.consumptionRepository.CreateLog(ctx, log); err != nil {
		return domain.ConsumptionLogResponse{}, err
	}

	if err := s.consumptionRepository.DecrementStock(ctx, userID, req.ProductID, req.Quantity); err != nil {
		return domain.ConsumptionLogResponse{}, err
	}

	response := domain.ConsumptionLogResponse{
		ID:          log.ID.String(),
		ProductID:   log.ProductID.String(),
		ProductName: product.Name,
		Quantity:    log.Quantity,
		Date:        log.Date,
	}

	s.hub.Publish(userID, events.ChangeEvent{
		Table:    "consumption_logs",
		Action:   events.ActionInsert,
		RecordID: response.ID,
		Payload:  response,
	})

	return response, nil
}

func (s *consumptionService) GetConsumptionLogs(ctx context.Context, userID string) ([]domain.ConsumptionLogResponse, error) {
	logs, err := s.consumptionRepository.GetLogs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var response []domain.ConsumptionLogResponse
	for _, log := range logs {
		productName := ""
		if log.Product != nil {
			productName = log.Product.Name
		}
		response = append(response, domain.ConsumptionLogResponse{
			ID:          log.ID.String(),
			ProductID:   log.ProductID.String(),
			ProductName: productName,
			Quantity:    log.Quantity,
			Date:        log.Date,
		})
	}
	return response, nil
}

func (s *consumptionService) GetTopProducts(ctx context.Context, userID string) ([]domain.TopProductResponse, error) {
	return s.consumptionRepository.GetTopProducts(ctx, userID, domain.TopProductsLimit)
}
