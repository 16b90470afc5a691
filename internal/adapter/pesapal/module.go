package pesapal

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/dukahub/storefront/internal/config"
)

// Module exposes the processor session and client to the fx graph.
var Module = fx.Options(
	fx.Provide(newSession),
	fx.Provide(newClient),
)

func newSession(cfg *config.Config) *Session {
	return NewSession(cfg.TokenTTL)
}

type clientParams struct {
	fx.In

	Config  *config.Config
	Session *Session
	Logger  *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(Config{
		ConsumerKey:    p.Config.ConsumerKey,
		ConsumerSecret: p.Config.ConsumerSecret,
		Environment:    p.Config.Environment,
		IPNURL:         p.Config.IPNURL,
	}, p.Session, p.Logger)
}
