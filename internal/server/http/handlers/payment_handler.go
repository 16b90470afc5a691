package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
	"github.com/dukahub/storefront/internal/server/http/dto"
)

// PaymentHandler serves processor notifications and status queries.
type PaymentHandler struct {
	facade PaymentFacade
	logger *slog.Logger
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{facade: facade, logger: logger}
}

// IPN handles POST /api/payments/ipn. The notification is treated as a
// hint only: settlement is re-read from the processor, and the response is
// always 200 so the processor does not hammer us over transient failures.
func (h *PaymentHandler) IPN(c *gin.Context) {
	notificationType := c.DefaultQuery("type", "ecommerce")

	var req dto.IPNRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderTrackingID == "" {
		h.logger.Warn("malformed payment notification", slog.Any("error", err))
		c.JSON(http.StatusOK, dto.IPNResponse{Message: "malformed notification", Type: notificationType})
		return
	}

	if _, err := h.facade.SyncPaymentStatus(c.Request.Context(), req.OrderTrackingID); err != nil {
		h.logger.Error("payment notification processing failed",
			slog.String("tracking_id", req.OrderTrackingID),
			slog.String("merchant_reference", req.OrderMerchantReference),
			slog.Any("error", err),
		)
		c.JSON(http.StatusOK, dto.IPNResponse{Message: "notification deferred", Type: notificationType})
		return
	}

	c.JSON(http.StatusOK, dto.IPNResponse{Success: true, Message: "notification processed", Type: notificationType})
}

// Status handles GET /api/orders/:trackingID/status. With ?wait=true the
// request blocks on the bounded poller until the payment settles or the
// attempt budget runs out.
func (h *PaymentHandler) Status(c *gin.Context) {
	trackingID := c.Param("trackingID")

	var (
		status   *model.ProcessorStatus
		timedOut bool
		err      error
	)
	if c.Query("wait") == "true" {
		status, timedOut, err = h.facade.AwaitPaymentStatus(c.Request.Context(), trackingID)
	} else {
		status, err = h.facade.SyncPaymentStatus(c.Request.Context(), trackingID)
	}

	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentStatusResponse{
		PaymentStatusDescription: status.Description,
		Amount:                   status.Amount,
		Timeout:                  timedOut,
	})
}
