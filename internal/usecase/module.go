package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/dukahub/storefront/internal/adapter/pesapal"
	"github.com/dukahub/storefront/internal/config"
	"github.com/dukahub/storefront/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	newCheckoutUseCase,
	newStatusPoller,
)

func newCheckoutUseCase(cfg *config.Config, orders repository.OrderRepository, processor pesapal.Client, logger *slog.Logger) *CheckoutUseCase {
	return NewCheckoutUseCase(orders, processor, cfg.AppBaseURL, logger)
}

func newStatusPoller(cfg *config.Config, orders *OrderUseCase, logger *slog.Logger) *StatusPoller {
	return NewStatusPoller(orders, cfg.StatusPollAttempts, cfg.StatusPollInterval, logger)
}
