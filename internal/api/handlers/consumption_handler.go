package handlers

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/internal/api/presenters"
	"GIVD-Backend/internal/events"
	"GIVD-Backend/pkg/consumption"
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// heartbeatInterval paces SSE keep-alive comments. A dead connection is
// detected on the next heartbeat write, which unblocks the stream goroutine
// and releases its hub subscription.
const heartbeatInterval = 20 * time.Second

type (
	ConsumptionHandler interface {
		LogConsumption(c *fiber.Ctx) error
		GetConsumptionLogs(c *fiber.Ctx) error
		GetTopProducts(c *fiber.Ctx) error
		StreamEvents(c *fiber.Ctx) error
	}

	consumptionHandler struct {
		consumptionService consumption.ConsumptionService
		hub                *events.Hub
		validator          *validator.Validate
	}
)

func NewConsumptionHandler(consumptionService consumption.ConsumptionService, hub *events.Hub, validator *validator.Validate) ConsumptionHandler {
	return &consumptionHandler{
		consumptionService: consumptionService,
		hub:                hub,
		validator:          validator,
	}
}

func (h *consumptionHandler) LogConsumption(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.LogConsumptionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogConsumption, err)
	}

	res, err := h.consumptionService.LogConsumption(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogConsumption, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessLogConsumption)
}

func (h *consumptionHandler) GetConsumptionLogs(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	logs, err := h.consumptionService.GetConsumptionLogs(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetConsumption, err)
	}

	return presenters.SuccessResponse(c, logs, fiber.StatusOK, domain.MessageSuccessGetConsumption)
}

func (h *consumptionHandler) GetTopProducts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	top, err := h.consumptionService.GetTopProducts(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTopProducts, err)
	}

	return presenters.SuccessResponse(c, top, fiber.StatusOK, domain.MessageSuccessGetTopProducts)
}

// StreamEvents serves the user's change feed as server-sent events. Each
// event carries the record id so the client merges by id instead of blindly
// appending.
func (h *consumptionHandler) StreamEvents(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ch, unsubscribe := h.hub.Subscribe(userID)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()
		streamChangeEvents(w, ch, heartbeatInterval)
	})

	return nil
}

// streamChangeEvents writes SSE frames until the channel closes or the
// connection dies. Heartbeat comments bound how long an abandoned connection
// can hold the goroutine: without them a subscriber that never receives an
// event would block on the channel forever.
func streamChangeEvents(w *bufio.Writer, ch <-chan events.ChangeEvent, heartbeat time.Duration) {
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				// Client went away.
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}
}
