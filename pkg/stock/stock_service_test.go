package stock_test

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/entities"
	"GIVD-Backend/pkg/stock"
	"GIVD-Backend/pkg/stock/mocks"
	"context"
	"testing"
	"time"

	consumptionmocks "GIVD-Backend/pkg/consumption/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetStock_FlagsLowItems(t *testing.T) {
	repo := new(mocks.StockRepository)
	service := stock.NewStockService(repo, new(consumptionmocks.ConsumptionRepository))

	userID := uuid.New().String()
	repo.On("GetStockItems", mock.Anything, userID).Return([]*entities.StockItem{
		{ID: uuid.New(), Quantity: 2, Threshold: 5, Product: &entities.Product{Name: "Milk"}},
		{ID: uuid.New(), Quantity: 9, Threshold: 5, Product: &entities.Product{Name: "Rice"}},
		{ID: uuid.New(), Quantity: 5, Threshold: 5, Product: &entities.Product{Name: "Eggs"}},
	}, nil)

	items, err := service.GetStock(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, items, 3)
	assert.True(t, items[0].IsLow)
	assert.False(t, items[1].IsLow)
	// Quantity equal to the threshold counts as low.
	assert.True(t, items[2].IsLow)
}

func TestUpdateStockItem_RejectsOtherUsers(t *testing.T) {
	repo := new(mocks.StockRepository)
	service := stock.NewStockService(repo, new(consumptionmocks.ConsumptionRepository))

	itemID := uuid.New()
	repo.On("GetStockItemByID", mock.Anything, itemID.String()).Return(&entities.StockItem{
		ID:     itemID,
		UserID: uuid.New(),
	}, nil)

	qty := 3.0
	err := service.UpdateStockItem(context.Background(), itemID.String(), domain.UpdateStockRequest{Quantity: &qty}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
	repo.AssertNotCalled(t, "UpdateStockItem", mock.Anything, mock.Anything)
}

func TestUpdateStockItem_RejectsNegativeQuantity(t *testing.T) {
	repo := new(mocks.StockRepository)
	service := stock.NewStockService(repo, new(consumptionmocks.ConsumptionRepository))

	userID := uuid.New()
	itemID := uuid.New()
	repo.On("GetStockItemByID", mock.Anything, itemID.String()).Return(&entities.StockItem{
		ID:     itemID,
		UserID: userID,
	}, nil)

	qty := -1.0
	err := service.UpdateStockItem(context.Background(), itemID.String(), domain.UpdateStockRequest{Quantity: &qty}, userID.String())
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)
}

func TestUpdateStockItem_PartialUpdateKeepsOtherFields(t *testing.T) {
	repo := new(mocks.StockRepository)
	service := stock.NewStockService(repo, new(consumptionmocks.ConsumptionRepository))

	userID := uuid.New()
	itemID := uuid.New()
	repo.On("GetStockItemByID", mock.Anything, itemID.String()).Return(&entities.StockItem{
		ID:        itemID,
		UserID:    userID,
		Quantity:  4,
		Threshold: 5,
	}, nil)
	repo.On("UpdateStockItem", mock.Anything, mock.MatchedBy(func(item *entities.StockItem) bool {
		return item.Quantity == 4 && item.Threshold == 2
	})).Return(nil)

	threshold := 2.0
	err := service.UpdateStockItem(context.Background(), itemID.String(), domain.UpdateStockRequest{Threshold: &threshold}, userID.String())
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetDashboardSummary(t *testing.T) {
	repo := new(mocks.StockRepository)
	consumptionRepo := new(consumptionmocks.ConsumptionRepository)
	service := stock.NewStockService(repo, consumptionRepo)

	userID := uuid.New().String()
	low := []*entities.StockItem{
		{ID: uuid.New(), Quantity: 1, Threshold: 5, Product: &entities.Product{Name: "Milk"}},
	}
	repo.On("CountStockItems", mock.Anything, userID).Return(int64(7), nil)
	repo.On("GetLowStockItems", mock.Anything, userID).Return(low, nil)
	consumptionRepo.On("GetRecentLogs", mock.Anything, userID, 5).Return([]*entities.ConsumptionLog{
		{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2, Date: time.Now(), Product: &entities.Product{Name: "Milk"}},
	}, nil)

	summary, err := service.GetDashboardSummary(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, 7, summary.TotalStockItems)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Len(t, summary.RecentLogs, 1)
	assert.Equal(t, "Milk", summary.RecentLogs[0].ProductName)
}
