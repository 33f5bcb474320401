package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cvbuilder/api/internal/container"
	handlers "github.com/cvbuilder/api/internal/interface/http"
	"github.com/cvbuilder/api/internal/interface/middleware"
)

// ResumeModule wires the authenticated resume CRUD routes.
// Protected: POST/GET /api/resumes, GET /api/resumes/search,
// GET/PUT/DELETE /api/resumes/:id, POST /api/resumes/:id/avatar

type ResumeModule struct {
	Handler *handlers.ResumeHandler
	Users   middleware.UserResolver
}

func NewResumeModule(h *handlers.ResumeHandler, users middleware.UserResolver) *ResumeModule {
	return &ResumeModule{Handler: h, Users: users}
}

func (m *ResumeModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/resumes")
	auth.Use(middleware.Auth(m.Users, container.GetSessionVerifier()))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/avatar", m.Handler.UploadAvatar)
	}
}
