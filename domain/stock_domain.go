package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetStock     = "stock retrieved successfully"
	MessageSuccessUpdateStock  = "stock item updated successfully"
	MessageSuccessGetLowStock  = "low stock items retrieved successfully"
	MessageSuccessGetDashboard = "dashboard summary retrieved successfully"

	MessageFailedGetStock     = "failed to retrieve stock"
	MessageFailedUpdateStock  = "failed to update stock item"
	MessageFailedGetLowStock  = "failed to retrieve low stock items"
	MessageFailedGetDashboard = "failed to retrieve dashboard summary"

	ErrStockItemNotFound = errors.New("stock item not found")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
)

// DefaultStockThreshold is applied to stock rows created by receipt
// ingestion. It is editable afterwards through UpdateStockItem.
const DefaultStockThreshold = 5

type (
	StockItemResponse struct {
		ID          string  `json:"id"`
		ProductID   string  `json:"product_id"`
		ProductName string  `json:"product_name"`
		Category    string  `json:"category,omitempty"`
		Unit        string  `json:"unit,omitempty"`
		Quantity    float64 `json:"quantity"`
		Threshold   float64 `json:"threshold"`
		IsLow       bool    `json:"is_low"`
	}

	UpdateStockRequest struct {
		Quantity  *float64 `json:"quantity" validate:"omitempty,gte=0"`
		Threshold *float64 `json:"threshold" validate:"omitempty,gte=0"`
	}

	DashboardSummaryResponse struct {
		TotalStockItems int                      `json:"total_stock_items"`
		LowStockCount   int                      `json:"low_stock_count"`
		LowStock        []StockItemResponse      `json:"low_stock"`
		RecentLogs      []ConsumptionLogResponse `json:"recent_logs"`
	}
)

type ConsumptionLogResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity"`
	Date        time.Time `json:"date"`
}
