package application

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	svix "github.com/svix/svix-webhooks/go"

	"github.com/cvbuilder/api/internal/domain/event"
)

var (
	// ErrUnauthenticated means the request carried a missing or invalid
	// signature and must be rejected before any handler runs.
	ErrUnauthenticated = errors.New("webhook verification failed")
	// ErrInvalidEvent means the payload is malformed (no usable event).
	ErrInvalidEvent = errors.New("invalid webhook event")
)

var requiredSvixHeaders = []string{"svix-id", "svix-timestamp", "svix-signature"}

// EventVerifier authenticates inbound webhook deliveries against the shared
// Svix signing secret. Every event must pass through Verify before dispatch.
type EventVerifier struct {
	wh     *svix.Webhook
	logger *logrus.Logger
}

func NewEventVerifier(secret string, logger *logrus.Logger) (*EventVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, err
	}
	return &EventVerifier{wh: wh, logger: logger}, nil
}

// Verify checks the three signature headers and the HMAC over the raw body,
// then decodes the body into a structured identity event.
func (v *EventVerifier) Verify(header http.Header, body []byte) (*event.Event, error) {
	for _, h := range requiredSvixHeaders {
		if header.Get(h) == "" {
			v.logger.WithField("header", h).Error("missing svix header")
			return nil, ErrUnauthenticated
		}
	}

	if err := v.wh.Verify(body, header); err != nil {
		v.logger.WithError(err).Error("webhook signature verification failed")
		return nil, ErrUnauthenticated
	}

	var evt event.Event
	if err := json.Unmarshal(body, &evt); err != nil {
		v.logger.WithError(err).Error("webhook body is not a valid event")
		return nil, ErrInvalidEvent
	}
	return &evt, nil
}
