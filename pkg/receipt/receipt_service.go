package receipt

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/entities"
	"GIVD-Backend/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type (
	ReceiptService interface {
		SubmitReceipt(ctx context.Context, req domain.SubmitReceiptRequest, userID string) (domain.SubmitReceiptResponse, error)
		GetReceipts(ctx context.Context, userID string) ([]domain.ReceiptResponse, error)
		GetReceiptDetails(ctx context.Context, id string, userID string) (domain.ReceiptDetailsResponse, error)
		KnownProducts(ctx context.Context) ([]domain.ProductResponse, error)
		AttachReceiptPhoto(ctx context.Context, req domain.AttachReceiptPhotoRequest, userID string) (string, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		s3                storage.AwsS3

		// catalog mirrors the product table keyed by lowercased name, so
		// repeated names within and across submissions resolve without a
		// round trip. Seeded lazily, updated as ingestion learns products.
		mu            sync.RWMutex
		catalog       map[string]entities.Product
		catalogSeeded bool
	}
)

func NewReceiptService(receiptRepository ReceiptRepository, s3 storage.AwsS3) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		s3:                s3,
		catalog:           make(map[string]entities.Product),
	}
}

// SubmitReceipt applies a draft receipt: header first, then per line a
// product resolution, an item insert and a stock upsert. The sequence is
// deliberately best-effort: a failure on line i returns an IngestionError
// naming the line and step, and everything written before it stays written.
func (s *receiptService) SubmitReceipt(ctx context.Context, req domain.SubmitReceiptRequest, userID string) (domain.SubmitReceiptResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SubmitReceiptResponse{}, domain.ErrParseUUID
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return domain.SubmitReceiptResponse{}, domain.ErrInvalidReceiptDate
	}

	totalAmount := 0.0
	for _, line := range req.Lines {
		if strings.TrimSpace(line.ProductName) == "" {
			continue
		}
		if line.Quantity <= 0 || line.PriceUnit < 0 {
			return domain.SubmitReceiptResponse{}, domain.ErrInvalidLineValues
		}
		totalAmount += line.Quantity * line.PriceUnit
	}

	receipt := &entities.Receipt{
		ID:          uuid.New(),
		UserID:      userUUID,
		StoreName:   req.StoreName,
		Date:        date,
		TotalAmount: totalAmount,
	}
	if err := s.receiptRepository.CreateReceipt(ctx, receipt); err != nil {
		return domain.SubmitReceiptResponse{}, &domain.IngestionError{
			LineIndex: -1,
			Step:      domain.StepReceiptCreate,
			Err:       err,
		}
	}

	linesSaved := 0
	for i, line := range req.Lines {
		if strings.TrimSpace(line.ProductName) == "" {
			continue
		}

		product, err := s.resolveProduct(ctx, line.ProductName)
		if err != nil {
			return domain.SubmitReceiptResponse{}, s.lineError(receipt.ID, i, domain.StepProductResolve, err)
		}

		item := &entities.ReceiptItem{
			ID:        uuid.New(),
			ReceiptID: receipt.ID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			PriceUnit: line.PriceUnit,
		}
		if err := s.receiptRepository.CreateReceiptItem(ctx, item); err != nil {
			return domain.SubmitReceiptResponse{}, s.lineError(receipt.ID, i, domain.StepItemWrite, err)
		}

		if err := s.receiptRepository.UpsertStockIncrement(ctx, userUUID, product.ID, line.Quantity, domain.DefaultStockThreshold); err != nil {
			return domain.SubmitReceiptResponse{}, s.lineError(receipt.ID, i, domain.StepStockReconcile, err)
		}

		linesSaved++
	}

	return domain.SubmitReceiptResponse{
		ReceiptID:   receipt.ID.String(),
		TotalAmount: totalAmount,
		LinesSaved:  linesSaved,
	}, nil
}

func (s *receiptService) lineError(receiptID uuid.UUID, index int, step string, err error) error {
	logrus.WithFields(logrus.Fields{
		"receipt_id": receiptID.String(),
		"line":       index,
		"step":       step,
	}).WithError(err).Warn("receipt ingestion stopped, earlier writes kept")

	return &domain.IngestionError{
		ReceiptID: receiptID.String(),
		LineIndex: index,
		Step:      step,
		Err:       err,
	}
}

// resolveProduct matches the name case-insensitively against the cached
// catalog, falling back to the store, and creates the product when unseen.
// Creation races with other sessions are resolved by re-reading after a
// failed insert: the unique index on LOWER(name) guarantees a single winner.
func (s *receiptService) resolveProduct(ctx context.Context, name string) (entities.Product, error) {
	if err := s.seedCatalog(ctx); err != nil {
		return entities.Product{}, err
	}

	key := strings.ToLower(strings.TrimSpace(name))

	s.mu.RLock()
	product, ok := s.catalog[key]
	s.mu.RUnlock()
	if ok {
		return product, nil
	}

	existing, err := s.receiptRepository.FindProductByName(ctx, strings.TrimSpace(name))
	if err == nil {
		s.remember(key, *existing)
		return *existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Product{}, err
	}

	created := &entities.Product{
		ID:   uuid.New(),
		Name: strings.TrimSpace(name),
	}
	if createErr := s.receiptRepository.CreateProduct(ctx, created); createErr != nil {
		// Lost the insert race: another session created the name first.
		existing, retryErr := s.receiptRepository.FindProductByName(ctx, strings.TrimSpace(name))
		if retryErr != nil {
			return entities.Product{}, createErr
		}
		s.remember(key, *existing)
		return *existing, nil
	}

	s.remember(key, *created)
	return *created, nil
}

func (s *receiptService) seedCatalog(ctx context.Context) error {
	s.mu.RLock()
	seeded := s.catalogSeeded
	s.mu.RUnlock()
	if seeded {
		return nil
	}

	products, err := s.receiptRepository.GetProducts(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalogSeeded {
		return nil
	}
	for _, p := range products {
		s.catalog[strings.ToLower(p.Name)] = *p
	}
	s.catalogSeeded = true
	return nil
}

func (s *receiptService) remember(key string, product entities.Product) {
	s.mu.Lock()
	s.catalog[key] = product
	s.mu.Unlock()
}

func (s *receiptService) GetReceipts(ctx context.Context, userID string) ([]domain.ReceiptResponse, error) {
	receipts, err := s.receiptRepository.GetReceipts(ctx, userID)
	if err != nil {
		return nil, err
	}

	var response []domain.ReceiptResponse
	for _, r := range receipts {
		response = append(response, domain.ReceiptResponse{
			ID:          r.ID.String(),
			StoreName:   r.StoreName,
			Date:        r.Date,
			TotalAmount: r.TotalAmount,
			PhotoURL:    r.PhotoURL,
			CreatedAt:   r.CreatedAt,
		})
	}
	return response, nil
}

func (s *receiptService) GetReceiptDetails(ctx context.Context, id string, userID string) (domain.ReceiptDetailsResponse, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptDetailsResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptDetailsResponse{}, err
	}

	if receipt.UserID.String() != userID {
		return domain.ReceiptDetailsResponse{}, domain.ErrUserNotAllowed
	}

	items, err := s.receiptRepository.GetReceiptItems(ctx, id)
	if err != nil {
		return domain.ReceiptDetailsResponse{}, err
	}

	details := domain.ReceiptDetailsResponse{
		ReceiptResponse: domain.ReceiptResponse{
			ID:          receipt.ID.String(),
			StoreName:   receipt.StoreName,
			Date:        receipt.Date,
			TotalAmount: receipt.TotalAmount,
			PhotoURL:    receipt.PhotoURL,
			CreatedAt:   receipt.CreatedAt,
		},
	}
	for _, item := range items {
		productName := ""
		if item.Product != nil {
			productName = item.Product.Name
		}
		details.Items = append(details.Items, domain.ReceiptItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: productName,
			Quantity:    item.Quantity,
			PriceUnit:   item.PriceUnit,
		})
	}
	return details, nil
}

// KnownProducts feeds the client's autocomplete. Served from the same catalog
// the ingestion path maintains, so products learned mid-session show up
// without another full fetch.
func (s *receiptService) KnownProducts(ctx context.Context) ([]domain.ProductResponse, error) {
	if err := s.seedCatalog(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	response := make([]domain.ProductResponse, 0, len(s.catalog))
	for _, p := range s.catalog {
		response = append(response, domain.ProductResponse{
			ID:       p.ID.String(),
			Name:     p.Name,
			Category: p.Category,
			Unit:     p.Unit,
		})
	}
	s.mu.RUnlock()

	sort.Slice(response, func(i, j int) bool {
		return strings.ToLower(response[i].Name) < strings.ToLower(response[j].Name)
	})
	return response, nil
}

func (s *receiptService) AttachReceiptPhoto(ctx context.Context, req domain.AttachReceiptPhotoRequest, userID string) (string, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, req.ReceiptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrReceiptNotFound
		}
		return "", err
	}

	if receipt.UserID.String() != userID {
		return "", domain.ErrUserNotAllowed
	}

	fileName := fmt.Sprintf("receipt-%s", receipt.ID.String())
	var objectKey string
	if receipt.PhotoURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(receipt.PhotoURL)
		if existingKey != "" {
			objectKey, err = s.s3.UpdateFile(existingKey, req.Photo, storage.AllowImage...)
		} else {
			objectKey, err = s.s3.UploadFile(fileName, req.Photo, "receipts", storage.AllowImage...)
		}
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Photo, "receipts", storage.AllowImage...)
	}
	if err != nil {
		return "", err
	}

	receipt.PhotoURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.receiptRepository.UpdateReceipt(ctx, receipt); err != nil {
		return "", err
	}
	return receipt.PhotoURL, nil
}
