package di

import (
	"go.uber.org/fx"

	"github.com/dukahub/storefront/internal/adapter/pesapal"
	"github.com/dukahub/storefront/internal/app"
	"github.com/dukahub/storefront/internal/config"
	"github.com/dukahub/storefront/internal/logger"
	"github.com/dukahub/storefront/internal/pkg/auth"
	"github.com/dukahub/storefront/internal/server/http/handlers"
	"github.com/dukahub/storefront/internal/server/http/router"
	"github.com/dukahub/storefront/internal/storage/postgres"
	"github.com/dukahub/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		pesapal.Module,
		usecase.Module,
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
