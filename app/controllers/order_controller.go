package controllers

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/boostgridhq/BoostGrid/app/models"
	"github.com/boostgridhq/BoostGrid/app/repository"
	"github.com/boostgridhq/BoostGrid/internal/pkg/smmprovider"
)

var (
	orderRepo      repository.OrderRepository
	orderSubmitter smmprovider.OrderSubmitter
)

// InitializeOrderController wires the order repository and the upstream
// submission boundary.
func InitializeOrderController(repo repository.OrderRepository, submitter smmprovider.OrderSubmitter) {
	orderRepo = repo
	orderSubmitter = submitter
}

type placeOrderRequest struct {
	ServiceID string `json:"serviceId"`
	Link      string `json:"link"`
	Quantity  int    `json:"quantity"`
}

// HandlePlaceOrder validates an order against the final catalog, prices it,
// persists it and hands it to the upstream submitter.
func HandlePlaceOrder(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.ServiceID == "" || req.Link == "" || req.Quantity <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "serviceId, link and a positive quantity are required")
	}

	var target *smmprovider.Service
	for _, svc := range serviceCatalog.Services(c.Context()) {
		if svc.ID == req.ServiceID {
			target = &svc
			break
		}
	}
	if target == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Unknown service")
	}
	if req.Quantity < target.Min || (target.Max > 0 && req.Quantity > target.Max) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "quantity_out_of_range", "Quantity is outside the service's min/max bounds")
	}

	charge := math.Round(target.RatePer1000*float64(req.Quantity)/1000*100) / 100

	order := &models.Order{
		ServiceID: target.ID,
		Source:    target.Source,
		Link:      req.Link,
		Quantity:  req.Quantity,
		ChargeUSD: charge,
		Status:    models.ORDER_STATUS_PENDING,
	}
	if err := orderRepo.Create(order); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to store order")
	}

	providerOrderID, err := orderSubmitter.Submit(c.Context(), *target, req.Link, req.Quantity)
	status := models.ORDER_STATUS_SUBMITTED
	if err != nil {
		log.Errorf("upstream submission for order %d failed: %v", order.ID, err)
		status = models.ORDER_STATUS_FAILED
	}
	if err := orderRepo.UpdateStatus(order.ID, status, providerOrderID); err != nil {
		log.Errorf("failed to update order %d status: %v", order.ID, err)
	}
	order.Status = status
	order.ProviderOrderID = providerOrderID

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrder returns one order by id.
func HandleGetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid order id")
	}
	order, err := orderRepo.GetByID(uint(id))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Order not found")
	}
	return c.JSON(order)
}
