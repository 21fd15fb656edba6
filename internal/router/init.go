package router

import (
	app "github.com/ipdr-analysis/auth-server/internal/application"
	"github.com/ipdr-analysis/auth-server/internal/container"
	"github.com/ipdr-analysis/auth-server/internal/infrastructure/esindex"
	"github.com/ipdr-analysis/auth-server/internal/infrastructure/rabbitmq"
	handlers "github.com/ipdr-analysis/auth-server/internal/interface/http"
	"github.com/ipdr-analysis/auth-server/internal/interface/middleware"
	"github.com/ipdr-analysis/auth-server/internal/router/modules"
)

// BuildAuthService wires the auth core from container singletons. Optional
// collaborators are attached only when their client is configured.
func BuildAuthService() *app.AuthService {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	tokens := app.NewTokenService(container.GetJWT(), container.GetUserRepo())
	svc := app.NewAuthService(container.GetUserRepo(), container.GetLoginLogRepo(), tokens, logger)

	if es := container.GetES(); es != nil {
		svc.Mirror = esindex.NewLoginLogIndexer(es, cfg.ESLoginsIndex)
	}
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		svc.Notifier = rabbitmq.NewLockoutNotifier(pub, cfg)
	}
	return svc
}

func rateLimiter() middleware.Counter {
	if !container.GetConfig().RateLimitEnabled {
		return nil
	}
	// keep the interface nil rather than holding a typed nil client
	if rdb := container.GetRedis(); rdb != nil {
		return rdb
	}
	return nil
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	limiter := rateLimiter()

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(BuildAuthService(), container.GetLogger()), limiter))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limiter))
	}
}
