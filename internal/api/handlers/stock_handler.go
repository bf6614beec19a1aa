package handlers

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/internal/api/presenters"
	"GIVD-Backend/pkg/stock"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	StockHandler interface {
		GetStock(c *fiber.Ctx) error
		UpdateStockItem(c *fiber.Ctx) error
		GetLowStock(c *fiber.Ctx) error
		GetDashboardSummary(c *fiber.Ctx) error
	}

	stockHandler struct {
		stockService stock.StockService
		validator    *validator.Validate
	}
)

func NewStockHandler(stockService stock.StockService, validator *validator.Validate) StockHandler {
	return &stockHandler{
		stockService: stockService,
		validator:    validator,
	}
}

func (h *stockHandler) GetStock(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.stockService.GetStock(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStock, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetStock)
}

func (h *stockHandler) UpdateStockItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")
	req := new(domain.UpdateStockRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStock, err)
	}

	if err := h.stockService.UpdateStockItem(c.Context(), itemID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStock, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateStock)
}

func (h *stockHandler) GetLowStock(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.stockService.GetLowStock(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLowStock, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetLowStock)
}

func (h *stockHandler) GetDashboardSummary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	summary, err := h.stockService.GetDashboardSummary(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
