package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"helpdesk/internal/metrics"
	"helpdesk/internal/middleware"
)

type RouterDeps struct {
	Chat        *ChatHandler
	Health      *HealthHandler
	Metrics     *metrics.Metrics
	MetricsPath string
	Logger      *zap.Logger
}

// NewRouter builds the gin engine with middleware and all routes. Metrics
// are served only when deps.Metrics is set.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(logger), middleware.AccessLog(logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(deps.Metrics.Handler()))
	}
	RegisterRoutes(r, deps)
	return r
}

func RegisterRoutes(r gin.IRoutes, deps RouterDeps) {
	r.GET("/", deps.Chat.Index)
	r.POST("/chat", deps.Chat.Chat)
	r.GET("/healthz", deps.Health.Health)
}
