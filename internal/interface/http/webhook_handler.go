package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cvbuilder/api/internal/application"
	"github.com/cvbuilder/api/pkg/response"
)

// WebhookHandler receives identity-provider lifecycle webhooks. Verification
// is mandatory; no event reaches the dispatcher unverified.
type WebhookHandler struct {
	Verifier   *application.EventVerifier
	Dispatcher *application.Dispatcher
	Logger     *logrus.Logger
}

func NewWebhookHandler(v *application.EventVerifier, d *application.Dispatcher, logger *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{Verifier: v, Dispatcher: d, Logger: logger}
}

// HandleClerk processes one webhook delivery. A dispatch with no matching
// strategy is still a 2xx: unknown types are a forward-compatibility case,
// not an error.
func (h *WebhookHandler) HandleClerk(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to read request body", nil)
		return
	}

	evt, err := h.Verifier.Verify(c.Request.Header, body)
	if err != nil {
		if errors.Is(err, application.ErrInvalidEvent) {
			response.Error[any](c, http.StatusBadRequest, "malformed webhook event", nil)
			return
		}
		response.Error[any](c, http.StatusUnauthorized, "webhook verification failed", nil)
		return
	}

	if err := h.Dispatcher.Dispatch(c.Request.Context(), evt); err != nil {
		switch {
		case errors.Is(err, application.ErrUserExists):
			response.Error[any](c, http.StatusConflict, "user already exists", nil)
		case errors.Is(err, application.ErrInvalidEvent):
			response.Error[any](c, http.StatusBadRequest, "malformed webhook event", nil)
		default:
			h.Logger.WithError(err).WithField("type", string(evt.Type)).Error("webhook dispatch failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to process webhook", nil)
		}
		return
	}

	response.Success[any](c, http.StatusOK, gin.H{"received": true}, "webhook processed", nil)
}
