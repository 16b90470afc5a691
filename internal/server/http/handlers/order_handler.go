package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
	"github.com/dukahub/storefront/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/user/orders. Only orders submitted to the processor
// are shown unless ?all=true is passed.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	includeUntracked := c.Query("all") == "true"

	orders, err := h.facade.Orders(c.Request.Context(), userID, includeUntracked)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/user/orders/:orderID.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderID"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Fulfillment handles PATCH /api/admin/orders/:orderID/fulfillment.
func (h *OrderHandler) Fulfillment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderID"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.FulfillmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.facade.AdvanceFulfillment(c.Request.Context(), orderID, model.FulfillmentStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID.String(),
		Number:        order.Number,
		Items:         order.Items,
		Subtotal:      order.Subtotal,
		DeliveryCost:  order.DeliveryCost,
		TotalAmount:   order.TotalAmount,
		PaymentStatus: string(order.Payment),
		OrderStatus:   string(order.Fulfillment),
		TrackingID:    order.TrackingID,
		CreatedAt:     order.CreatedAt,
	}
}
