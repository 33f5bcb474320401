package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cvbuilder/api/internal/interface/middleware"
	"github.com/cvbuilder/api/pkg/response"
)

type UserHandler struct {
	Logger *logrus.Logger
}

func NewUserHandler(logger *logrus.Logger) *UserHandler {
	return &UserHandler{Logger: logger}
}

// Me returns the authenticated caller's profile as resolved by the auth
// middleware.
func (h *UserHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":          u.ID,
		"provider":    u.Provider,
		"provider_id": u.ProviderID,
		"email":       u.Email,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"avatar_url":  u.AvatarURL,
		"created_at":  u.CreatedAt,
		"updated_at":  u.UpdatedAt,
	}, "profile", nil)
}
