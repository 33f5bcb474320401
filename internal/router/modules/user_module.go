package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cvbuilder/api/internal/container"
	handlers "github.com/cvbuilder/api/internal/interface/http"
	"github.com/cvbuilder/api/internal/interface/middleware"
)

// UserModule wires the authenticated profile route.
// Protected: GET /api/me

type UserModule struct {
	Handler *handlers.UserHandler
	Users   middleware.UserResolver
}

func NewUserModule(h *handlers.UserHandler, users middleware.UserResolver) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, container.GetSessionVerifier()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil))
	{
		auth.GET("/me", m.Handler.Me)
	}
}
