package domain

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessSubmitReceipt      = "receipt saved and stock updated"
	MessageSuccessGetReceipts        = "receipts retrieved successfully"
	MessageSuccessGetReceiptDetails  = "receipt details retrieved successfully"
	MessageSuccessGetProducts        = "products retrieved successfully"
	MessageSuccessAttachReceiptPhoto = "receipt photo uploaded successfully"

	MessageFailedSubmitReceipt      = "failed to save receipt"
	MessagePartialSubmitReceipt     = "receipt partially saved, some lines were not applied"
	MessageFailedGetReceipts        = "failed to retrieve receipts"
	MessageFailedGetReceiptDetails  = "failed to retrieve receipt details"
	MessageFailedGetProducts        = "failed to retrieve products"
	MessageFailedAttachReceiptPhoto = "failed to upload receipt photo"

	ErrInvalidReceiptDate = errors.New("invalid receipt date")
	ErrInvalidLineValues  = errors.New("line quantity must be positive and price non-negative")
	ErrReceiptNotFound    = errors.New("receipt not found")
)

// Ingestion steps, reported inside IngestionError so the caller knows exactly
// which write failed and what state is already persisted.
const (
	StepReceiptCreate  = "receipt_create"
	StepProductResolve = "product_resolve"
	StepItemWrite      = "item_write"
	StepStockReconcile = "stock_reconcile"
)

// IngestionError is line-scoped except for StepReceiptCreate, which aborts
// before any line is processed. LineIndex refers to the submitted draft,
// skipped blank lines included. When ReceiptID is set, the header and every
// line before LineIndex are already persisted and are not rolled back.
type IngestionError struct {
	ReceiptID string
	LineIndex int
	Step      string
	Err       error
}

func (e *IngestionError) Error() string {
	if e.Step == StepReceiptCreate {
		return fmt.Sprintf("receipt ingestion: %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("receipt ingestion: line %d: %s: %v", e.LineIndex, e.Step, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

type (
	// Line values are checked in the service rather than by validator tags:
	// blank-named lines are skipped, not rejected, so their numbers must not
	// fail the request as a whole.
	ReceiptLineRequest struct {
		ProductName string  `json:"product_name"`
		Quantity    float64 `json:"quantity"`
		PriceUnit   float64 `json:"price_unit"`
	}

	SubmitReceiptRequest struct {
		StoreName string               `json:"store_name" validate:"required"`
		Date      string               `json:"date" validate:"required"`
		Lines     []ReceiptLineRequest `json:"lines" validate:"dive"`
	}

	SubmitReceiptResponse struct {
		ReceiptID   string  `json:"receipt_id"`
		TotalAmount float64 `json:"total_amount"`
		LinesSaved  int     `json:"lines_saved"`
	}

	ReceiptResponse struct {
		ID          string    `json:"id"`
		StoreName   string    `json:"store_name"`
		Date        time.Time `json:"date"`
		TotalAmount float64   `json:"total_amount"`
		PhotoURL    string    `json:"photo_url,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}

	ReceiptItemResponse struct {
		ID          string  `json:"id"`
		ProductID   string  `json:"product_id"`
		ProductName string  `json:"product_name"`
		Quantity    float64 `json:"quantity"`
		PriceUnit   float64 `json:"price_unit"`
	}

	ReceiptDetailsResponse struct {
		ReceiptResponse
		Items []ReceiptItemResponse `json:"items"`
	}

	ProductResponse struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category,omitempty"`
		Unit     string `json:"unit,omitempty"`
	}

	AttachReceiptPhotoRequest struct {
		ReceiptID string                `json:"receipt_id" form:"receipt_id" validate:"required,uuid"`
		Photo     *multipart.FileHeader `json:"photo" form:"photo" validate:"required"`
	}
)
