package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukahub/storefront/internal/adapter/pesapal"
	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
	"github.com/dukahub/storefront/internal/server/http/dto"
)

// CheckoutHandler turns carts into submitted payment orders.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Checkout handles POST /api/checkout.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.CheckoutResponse{Error: "malformed request body"})
		return
	}

	items := make([]model.LineItem, len(req.CartItems))
	for i, item := range req.CartItems {
		items[i] = model.LineItem{
			ProductID:   item.ID,
			ProductName: item.Name,
			UnitPrice:   item.Price,
			Quantity:    item.Quantity,
			Category:    item.Category,
		}
	}
	customer := model.CustomerInfo{
		FirstName: req.CustomerInfo.FirstName,
		LastName:  req.CustomerInfo.LastName,
		Email:     req.CustomerInfo.Email,
		Phone:     req.CustomerInfo.Phone,
		Address:   req.CustomerInfo.Address,
	}
	delivery := model.DeliveryInfo{
		County:  req.DeliveryInfo.County,
		Address: req.DeliveryInfo.Address,
		Option:  req.DeliveryInfo.Option,
	}

	order, redirectURL, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), items, customer, delivery, req.TotalAmount)
	if err != nil {
		var (
			subErr  pesapal.SubmissionError
			authErr pesapal.AuthError
			regErr  pesapal.RegistrationError
		)
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.CheckoutResponse{Error: err.Error()})
		case errors.As(err, &subErr), errors.As(err, &authErr), errors.As(err, &regErr):
			// processor detail stays in the logs, not in the client response
			c.JSON(http.StatusBadGateway, dto.CheckoutResponse{Error: "payment service is unavailable, try again later"})
		default:
			c.JSON(http.StatusInternalServerError, dto.CheckoutResponse{Error: "checkout failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{
		Success: true,
		Data: &dto.CheckoutData{
			OrderID:         order.ID.String(),
			OrderNumber:     order.Number,
			OrderTrackingID: order.TrackingID,
			RedirectURL:     redirectURL,
		},
	})
}
