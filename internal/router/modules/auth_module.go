package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/ipdr-analysis/auth-server/internal/interface/http"
	"github.com/ipdr-analysis/auth-server/internal/interface/middleware"
)

// Per-IP budgets for the unauthenticated write endpoints.
const (
	loginPerMinute    = 10
	registerPerMinute = 5
	refreshPerMinute  = 30
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	// Limiter backs the rate limits; nil disables them.
	Limiter middleware.Counter
}

func NewAuthModule(h *handlers.AuthHandler, limiter middleware.Counter) *AuthModule {
	return &AuthModule{Handler: h, Limiter: limiter}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	limit := func(max int) gin.HandlerFunc {
		return middleware.RateLimit(m.Limiter, max, time.Minute, middleware.KeyByIPAndPath(), nil)
	}

	auth := rg.Group("/auth")
	auth.POST("/register", limit(registerPerMinute), m.Handler.Register)
	auth.POST("/login", limit(loginPerMinute), m.Handler.Login)
	auth.POST("/refresh", limit(refreshPerMinute), m.Handler.Refresh)
	auth.POST("/logout", m.Handler.Logout)
	auth.GET("/me", middleware.BearerToken(), m.Handler.Me)
	auth.GET("/logs", m.Handler.Logs)
}
