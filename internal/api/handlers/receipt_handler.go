package handlers

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/internal/api/presenters"
	"GIVD-Backend/pkg/receipt"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReceiptHandler interface {
		SubmitReceipt(c *fiber.Ctx) error
		GetReceipts(c *fiber.Ctx) error
		GetReceiptDetails(c *fiber.Ctx) error
		GetProducts(c *fiber.Ctx) error
		AttachReceiptPhoto(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func (h *receiptHandler) SubmitReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SubmitReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitReceipt, err)
	}

	res, err := h.receiptService.SubmitReceipt(c.Context(), *req, userID)
	if err != nil {
		var ingErr *domain.IngestionError
		if errors.As(err, &ingErr) && ingErr.ReceiptID != "" {
			// Header and earlier lines are persisted; the client must warn
			// the user about partial state instead of a clean failure.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success":    false,
				"message":    domain.MessagePartialSubmitReceipt,
				"error":      ingErr.Error(),
				"receipt_id": ingErr.ReceiptID,
				"line_index": ingErr.LineIndex,
				"step":       ingErr.Step,
			})
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubmitReceipt)
}

func (h *receiptHandler) GetReceipts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	receipts, err := h.receiptService.GetReceipts(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, receipts, fiber.StatusOK, domain.MessageSuccessGetReceipts)
}

func (h *receiptHandler) GetReceiptDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	receiptID := c.Params("id")

	details, err := h.receiptService.GetReceiptDetails(c.Context(), receiptID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReceiptDetails, err)
	}

	return presenters.SuccessResponse(c, details, fiber.StatusOK, domain.MessageSuccessGetReceiptDetails)
}

func (h *receiptHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.receiptService.KnownProducts(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProducts, err)
	}

	return presenters.SuccessResponse(c, products, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

func (h *receiptHandler) AttachReceiptPhoto(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AttachReceiptPhotoRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Photo = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAttachReceiptPhoto, err)
	}

	photoURL, err := h.receiptService.AttachReceiptPhoto(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAttachReceiptPhoto, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"photo_url": photoURL}, fiber.StatusOK, domain.MessageSuccessAttachReceiptPhoto)
}
