package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cvbuilder/api/internal/container"
	handlers "github.com/cvbuilder/api/internal/interface/http"
	"github.com/cvbuilder/api/internal/interface/middleware"
)

// WebhookModule exposes the public identity-provider webhook intake.
// The endpoint carries no session auth; authenticity comes from the Svix
// signature checked inside the handler.
type WebhookModule struct {
	Handler *handlers.WebhookHandler
}

func NewWebhookModule(h *handlers.WebhookHandler) *WebhookModule {
	return &WebhookModule{Handler: h}
}

func (m *WebhookModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil) // 120 req/min per IP
	rg.POST("/webhooks/clerk", limiter, m.Handler.HandleClerk)
}
