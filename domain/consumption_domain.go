package domain

import (
	"errors"
)

var (
	MessageSuccessLogConsumption = "consumption logged successfully"
	MessageSuccessGetConsumption = "consumption logs retrieved successfully"
	MessageSuccessGetTopProducts = "top consumed products retrieved successfully"

	MessageFailedLogConsumption = "failed to log consumption"
	MessageFailedGetConsumption = "failed to retrieve consumption logs"
	MessageFailedGetTopProducts = "failed to retrieve top consumed products"

	ErrProductNotFound = errors.New("product not found")
)

// TopProductsLimit bounds the chart aggregation.
const TopProductsLimit = 10

type (
	LogConsumptionRequest struct {
		ProductID string  `json:"product_id" validate:"required,uuid"`
		Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	}

	TopProductResponse struct {
		ProductName string  `json:"product_name"`
		Total       float64 `json:"total"`
	}
)
