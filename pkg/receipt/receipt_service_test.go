package receipt_test

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/entities"
	"GIVD-Backend/pkg/receipt"
	"GIVD-Backend/pkg/receipt/mocks"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

var testUserID = uuid.New()

func newService(repo *mocks.ReceiptRepository) receipt.ReceiptService {
	return receipt.NewReceiptService(repo, nil)
}

func TestSubmitReceipt_EmptyDraft(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	repo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*entities.Receipt")).Return(nil)

	res, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "2025-01-15",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: ""},
			{ProductName: "   "},
		},
	}, testUserID.String())

	assert.NoError(t, err)
	assert.Equal(t, 0.0, res.TotalAmount)
	assert.Equal(t, 0, res.LinesSaved)
	repo.AssertNotCalled(t, "CreateReceiptItem", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpsertStockIncrement", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitReceipt_TotalSumsNonBlankLines(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	repo.On("GetProducts", mock.Anything).Return([]*entities.Product{}, nil)
	repo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*entities.Receipt")).Return(nil)
	repo.On("FindProductByName", mock.Anything, mock.AnythingOfType("string")).Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*entities.Product")).Return(nil)
	repo.On("CreateReceiptItem", mock.Anything, mock.AnythingOfType("*entities.ReceiptItem")).Return(nil)
	repo.On("UpsertStockIncrement", mock.Anything, testUserID, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("float64"), float64(domain.DefaultStockThreshold)).Return(nil)

	res, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "2025-01-15",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: "Eggs", Quantity: 2, PriceUnit: 3.5},
			{ProductName: ""},
			{ProductName: "Milk", Quantity: 3, PriceUnit: 1.2},
		},
	}, testUserID.String())

	assert.NoError(t, err)
	assert.InDelta(t, 2*3.5+3*1.2, res.TotalAmount, 1e-9)
	assert.Equal(t, 2, res.LinesSaved)
	repo.AssertNumberOfCalls(t, "CreateReceiptItem", 2)
}

func TestSubmitReceipt_RejectsNonPositiveQuantity(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	_, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "2025-01-15",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: "Eggs", Quantity: 0, PriceUnit: 3.5},
		},
	}, testUserID.String())

	assert.ErrorIs(t, err, domain.ErrInvalidLineValues)
	repo.AssertNotCalled(t, "CreateReceipt", mock.Anything, mock.Anything)
}

func TestSubmitReceipt_RejectsBadDate(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	_, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "15/01/2025",
	}, testUserID.String())

	assert.ErrorIs(t, err, domain.ErrInvalidReceiptDate)
}

func TestSubmitReceipt_ReusesProductCaseInsensitively(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	milk := &entities.Product{ID: uuid.New(), Name: "Milk"}
	repo.On("GetProducts", mock.Anything).Return([]*entities.Product{milk}, nil)
	repo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*entities.Receipt")).Return(nil)
	repo.On("CreateReceiptItem", mock.Anything, mock.MatchedBy(func(item *entities.ReceiptItem) bool {
		return item.ProductID == milk.ID
	})).Return(nil)
	repo.On("UpsertStockIncrement", mock.Anything, testUserID, milk.ID, 2.0, float64(domain.DefaultStockThreshold)).Return(nil)

	res, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Monoprix",
		Date:      "2025-02-01",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: "milk", Quantity: 2, PriceUnit: 1.1},
		},
	}, testUserID.String())

	assert.NoError(t, err)
	assert.Equal(t, 1, res.LinesSaved)
	repo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "FindProductByName", mock.Anything, mock.Anything)
}

func TestSubmitReceipt_SameNameCreatedOnceWithinDraft(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	repo.On("GetProducts", mock.Anything).Return([]*entities.Product{}, nil)
	repo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*entities.Receipt")).Return(nil)
	repo.On("FindProductByName", mock.Anything, "Eggs").Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*entities.Product")).Return(nil)
	repo.On("CreateReceiptItem", mock.Anything, mock.AnythingOfType("*entities.ReceiptItem")).Return(nil)
	repo.On("UpsertStockIncrement", mock.Anything, testUserID, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("float64"), float64(domain.DefaultStockThreshold)).Return(nil)

	res, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "2025-01-15",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: "Eggs", Quantity: 1, PriceUnit: 3.0},
			{ProductName: "eggs", Quantity: 2, PriceUnit: 3.0},
		},
	}, testUserID.String())

	assert.NoError(t, err)
	assert.Equal(t, 2, res.LinesSaved)
	repo.AssertNumberOfCalls(t, "CreateProduct", 1)
}

func TestSubmitReceipt_NewProductStockUsesDefaultThreshold(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	repo.On("GetProducts", mock.Anything).Return([]*entities.Product{}, nil)
	repo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*entities.Receipt")).Return(nil)
	repo.On("FindProductByName", mock.Anything, "Butter").Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*entities.Product")).Return(nil)
	repo.On("CreateReceiptItem", mock.Anything, mock.AnythingOfType("*entities.ReceiptItem")).Return(nil)
	repo.On("UpsertStockIncrement", mock.Anything, testUserID, mock.AnythingOfType("uuid.UUID"), 3.0, 5.0).Return(nil)

	_, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "2025-01-15",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: "Butter", Quantity: 3, PriceUnit: 2.4},
		},
	}, testUserID.String())

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSubmitReceipt_CreateRaceFallsBackToWinner(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	winner := &entities.Product{ID: uuid.New(), Name: "Yogurt"}
	repo.On("GetProducts", mock.Anything).Return([]*entities.Product{}, nil)
	repo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*entities.Receipt")).Return(nil)
	repo.On("FindProductByName", mock.Anything, "Yogurt").Return(nil, gorm.ErrRecordNotFound).Once()
	repo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*entities.Product")).Return(errors.New("duplicate key value violates unique constraint"))
	repo.On("FindProductByName", mock.Anything, "Yogurt").Return(winner, nil)
	repo.On("CreateReceiptItem", mock.Anything, mock.MatchedBy(func(item *entities.ReceiptItem) bool {
		return item.ProductID == winner.ID
	})).Return(nil)
	repo.On("UpsertStockIncrement", mock.Anything, testUserID, winner.ID, 1.0, float64(domain.DefaultStockThreshold)).Return(nil)

	res, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "2025-01-15",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: "Yogurt", Quantity: 1, PriceUnit: 0.9},
		},
	}, testUserID.String())

	assert.NoError(t, err)
	assert.Equal(t, 1, res.LinesSaved)
}

func TestSubmitReceipt_HeaderFailureAbortsBeforeLines(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	dbErr := errors.New("connection reset")
	repo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*entities.Receipt")).Return(dbErr)

	_, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "2025-01-15",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: "Eggs", Quantity: 1, PriceUnit: 3.0},
		},
	}, testUserID.String())

	var ingErr *domain.IngestionError
	assert.ErrorAs(t, err, &ingErr)
	assert.Empty(t, ingErr.ReceiptID)
	assert.Equal(t, -1, ingErr.LineIndex)
	assert.Equal(t, domain.StepReceiptCreate, ingErr.Step)
	assert.ErrorIs(t, err, dbErr)
	repo.AssertNotCalled(t, "CreateReceiptItem", mock.Anything, mock.Anything)
}

func TestSubmitReceipt_MidDraftFailureKeepsEarlierLines(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	eggs := &entities.Product{ID: uuid.New(), Name: "Eggs"}
	milk := &entities.Product{ID: uuid.New(), Name: "Milk"}
	dbErr := errors.New("connection reset")

	repo.On("GetProducts", mock.Anything).Return([]*entities.Product{eggs, milk}, nil)
	repo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*entities.Receipt")).Return(nil)
	repo.On("CreateReceiptItem", mock.Anything, mock.MatchedBy(func(item *entities.ReceiptItem) bool {
		return item.ProductID == eggs.ID
	})).Return(nil)
	repo.On("UpsertStockIncrement", mock.Anything, testUserID, eggs.ID, 2.0, float64(domain.DefaultStockThreshold)).Return(nil)
	repo.On("CreateReceiptItem", mock.Anything, mock.MatchedBy(func(item *entities.ReceiptItem) bool {
		return item.ProductID == milk.ID
	})).Return(dbErr)

	_, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "2025-01-15",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: "Eggs", Quantity: 2, PriceUnit: 3.5},
			{ProductName: "Milk", Quantity: 1, PriceUnit: 1.2},
		},
	}, testUserID.String())

	var ingErr *domain.IngestionError
	assert.ErrorAs(t, err, &ingErr)
	assert.NotEmpty(t, ingErr.ReceiptID)
	assert.Equal(t, 1, ingErr.LineIndex)
	assert.Equal(t, domain.StepItemWrite, ingErr.Step)

	// Line 0 stays applied, nothing is rolled back.
	repo.AssertCalled(t, "UpsertStockIncrement", mock.Anything, testUserID, eggs.ID, 2.0, float64(domain.DefaultStockThreshold))
	repo.AssertNotCalled(t, "UpsertStockIncrement", mock.Anything, testUserID, milk.ID, 1.0, float64(domain.DefaultStockThreshold))
}

func TestSubmitReceipt_LineIndexCountsSkippedLines(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	milk := &entities.Product{ID: uuid.New(), Name: "Milk"}
	dbErr := errors.New("connection reset")

	repo.On("GetProducts", mock.Anything).Return([]*entities.Product{milk}, nil)
	repo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*entities.Receipt")).Return(nil)
	repo.On("CreateReceiptItem", mock.Anything, mock.AnythingOfType("*entities.ReceiptItem")).Return(dbErr)

	_, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "2025-01-15",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: "   "},
			{ProductName: ""},
			{ProductName: "Milk", Quantity: 1, PriceUnit: 1.2},
		},
	}, testUserID.String())

	var ingErr *domain.IngestionError
	assert.ErrorAs(t, err, &ingErr)
	assert.Equal(t, 2, ingErr.LineIndex)
}

func TestGetReceiptDetails_RejectsOtherUsers(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	receiptID := uuid.New()
	repo.On("GetReceiptByID", mock.Anything, receiptID.String()).Return(&entities.Receipt{
		ID:     receiptID,
		UserID: uuid.New(),
	}, nil)

	_, err := service.GetReceiptDetails(context.Background(), receiptID.String(), testUserID.String())
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
}

func TestKnownProducts_SortedAndLearnedMidSession(t *testing.T) {
	repo := new(mocks.ReceiptRepository)
	service := newService(repo)

	repo.On("GetProducts", mock.Anything).Return([]*entities.Product{
		{ID: uuid.New(), Name: "milk"},
		{ID: uuid.New(), Name: "Butter"},
	}, nil)
	repo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*entities.Receipt")).Return(nil)
	repo.On("FindProductByName", mock.Anything, "Apples").Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*entities.Product")).Return(nil)
	repo.On("CreateReceiptItem", mock.Anything, mock.AnythingOfType("*entities.ReceiptItem")).Return(nil)
	repo.On("UpsertStockIncrement", mock.Anything, testUserID, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("float64"), float64(domain.DefaultStockThreshold)).Return(nil)

	_, err := service.SubmitReceipt(context.Background(), domain.SubmitReceiptRequest{
		StoreName: "Carrefour",
		Date:      "2025-01-15",
		Lines: []domain.ReceiptLineRequest{
			{ProductName: "Apples", Quantity: 4, PriceUnit: 0.5},
		},
	}, testUserID.String())
	assert.NoError(t, err)

	products, err := service.KnownProducts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, "Apples", products[0].Name)
	assert.Equal(t, "Butter", products[1].Name)
	assert.Equal(t, "milk", products[2].Name)
	repo.AssertNumberOfCalls(t, "GetProducts", 1)
}
