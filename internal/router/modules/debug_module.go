package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ipdr-analysis/auth-server/internal/interface/middleware"
)

// DebugModule exposes expvar counters (the "auth" map among them).
type DebugModule struct {
	Limiter middleware.Counter
}

func NewDebugModule(limiter middleware.Counter) *DebugModule {
	return &DebugModule{Limiter: limiter}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// operators on the private network are not throttled
	rl := middleware.RateLimit(m.Limiter, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
