package consumption_test

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/entities"
	"GIVD-Backend/internal/events"
	"GIVD-Backend/pkg/consumption"
	"GIVD-Backend/pkg/consumption/mocks"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestLogConsumption_DecrementsStockAndPublishes(t *testing.T) {
	repo := new(mocks.ConsumptionRepository)
	hub := events.NewHub()
	defer hub.Close()
	service := consumption.NewConsumptionService(repo, hub)

	userID := uuid.New().String()
	product := &entities.Product{ID: uuid.New(), Name: "Milk"}

	repo.On("GetProductByID", mock.Anything, product.ID.String()).Return(product, nil)
	repo.On("CreateLog", mock.Anything, mock.AnythingOfType("*entities.ConsumptionLog")).Return(nil)
	// The zero clamp itself lives in DecrementStock's SQL
	// (GREATEST(quantity - ?, 0)); the service hands over the raw quantity
	// and must not pre-adjust it.
	repo.On("DecrementStock", mock.Anything, userID, product.ID.String(), 2.0).Return(nil)

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	res, err := service.LogConsumption(context.Background(), domain.LogConsumptionRequest{
		ProductID: product.ID.String(),
		Quantity:  2,
	}, userID)

	assert.NoError(t, err)
	assert.Equal(t, "Milk", res.ProductName)
	assert.Equal(t, 2.0, res.Quantity)
	repo.AssertExpectations(t)

	select {
	case event := <-ch:
		assert.Equal(t, "consumption_logs", event.Table)
		assert.Equal(t, events.ActionInsert, event.Action)
		assert.Equal(t, res.ID, event.RecordID)
	case <-time.After(time.Second):
		t.Fatal("expected a change event")
	}
}

func TestLogConsumption_UnknownProduct(t *testing.T) {
	repo := new(mocks.ConsumptionRepository)
	hub := events.NewHub()
	defer hub.Close()
	service := consumption.NewConsumptionService(repo, hub)

	productID := uuid.New().String()
	repo.On("GetProductByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.LogConsumption(context.Background(), domain.LogConsumptionRequest{
		ProductID: productID,
		Quantity:  1,
	}, uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	repo.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogConsumption_BadUserID(t *testing.T) {
	repo := new(mocks.ConsumptionRepository)
	hub := events.NewHub()
	defer hub.Close()
	service := consumption.NewConsumptionService(repo, hub)

	_, err := service.LogConsumption(context.Background(), domain.LogConsumptionRequest{
		ProductID: uuid.New().String(),
		Quantity:  1,
	}, "not-a-uuid")

	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestGetTopProducts_UsesDefaultLimit(t *testing.T) {
	repo := new(mocks.ConsumptionRepository)
	hub := events.NewHub()
	defer hub.Close()
	service := consumption.NewConsumptionService(repo, hub)

	userID := uuid.New().String()
	rows := []domain.TopProductResponse{
		{ProductName: "Milk", Total: 12},
		{ProductName: "Eggs", Total: 8},
	}
	repo.On("GetTopProducts", mock.Anything, userID, domain.TopProductsLimit).Return(rows, nil)

	top, err := service.GetTopProducts(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, rows, top)
	repo.AssertExpectations(t)
}
