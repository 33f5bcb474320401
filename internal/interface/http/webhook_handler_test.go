package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"

	"github.com/cvbuilder/api/internal/application"
	"github.com/cvbuilder/api/internal/domain/entity"
	repo "github.com/cvbuilder/api/internal/domain/repository"
)

const testWebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// memUserRepo is an in-memory user store keyed by email and provider id.
type memUserRepo struct {
	byEmail    map[string]*entity.User
	storeCalls int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	u.ID = fmt.Sprintf("local-%d", len(m.byEmail)+1)
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) GetByProviderID(_ context.Context, providerID string) (*entity.User, error) {
	m.storeCalls++
	for _, u := range m.byEmail {
		if u.ProviderID == providerID {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error { return nil }

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	for email, u := range m.byEmail {
		if u.ID == id {
			delete(m.byEmail, email)
			return nil
		}
	}
	return repo.ErrNotFound
}

type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := m.entries[key]
	return b, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

type webhookFixture struct {
	engine *gin.Engine
	users  *memUserRepo
	cache  *memCache
	svc    *application.UserService
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := quietLogger()

	users := newMemUserRepo()
	c := newMemCache()
	svc := application.NewUserService(users, c, logger, 5*time.Minute, time.Minute)

	verifier, err := application.NewEventVerifier(testWebhookSecret, logger)
	require.NoError(t, err)

	dispatcher, err := application.NewDispatcher(logger,
		application.NewUserCreatedStrategy(users, logger),
		application.NewUserUpdatedStrategy(svc, logger),
		application.NewUserDeletedStrategy(users, svc, logger),
	)
	require.NoError(t, err)

	h := NewWebhookHandler(verifier, dispatcher, logger)
	engine := gin.New()
	engine.POST("/webhooks/clerk", h.HandleClerk)
	return &webhookFixture{engine: engine, users: users, cache: c, svc: svc}
}

func (f *webhookFixture) deliver(t *testing.T, msgID string, body []byte, signed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signed {
		wh, err := svix.NewWebhook(testWebhookSecret)
		require.NoError(t, err)
		ts := time.Now()
		sig, err := wh.Sign(msgID, ts, body)
		require.NoError(t, err)
		req.Header.Set("svix-id", msgID)
		req.Header.Set("svix-timestamp", fmt.Sprintf("%d", ts.Unix()))
		req.Header.Set("svix-signature", sig)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

const createdBody = `{
	"type": "user.created",
	"object": "event",
	"data": {
		"id": "user_abc",
		"first_name": "Ada",
		"last_name": "Lovelace",
		"image_url": "https://img.clerk.com/ada.png",
		"primary_email_address_id": "idn_1",
		"email_addresses": [
			{"id": "idn_1", "email_address": "ada@example.com"}
		]
	}
}`

func TestWebhookCreatedThenCachedLookup(t *testing.T) {
	f := newWebhookFixture(t)

	w := f.deliver(t, "msg_1", []byte(createdBody), true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	ctx := context.Background()
	u, err := f.svc.FindByProviderID(ctx, "user_abc")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ada@example.com", u.Email)

	// Second resolution is served entirely from the cache.
	_, err = f.svc.FindByProviderID(ctx, "user_abc")
	require.NoError(t, err)
	assert.Equal(t, 1, f.users.storeCalls)
}

func TestWebhookCreatedConflict(t *testing.T) {
	f := newWebhookFixture(t)

	require.Equal(t, http.StatusOK, f.deliver(t, "msg_1", []byte(createdBody), true).Code)
	w := f.deliver(t, "msg_2", []byte(createdBody), true)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestWebhookRejectsUnsignedDelivery(t *testing.T) {
	f := newWebhookFixture(t)
	w := f.deliver(t, "msg_1", []byte(createdBody), false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, f.users.byEmail)
}

func TestWebhookAcceptsUnknownType(t *testing.T) {
	f := newWebhookFixture(t)
	body := []byte(`{"type":"session.created","object":"event","data":{"id":"sess_1"}}`)
	w := f.deliver(t, "msg_1", body, true)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestWebhookDeletedRemovesUser(t *testing.T) {
	f := newWebhookFixture(t)
	require.Equal(t, http.StatusOK, f.deliver(t, "msg_1", []byte(createdBody), true).Code)

	deleted := `{"type":"user.deleted","object":"event","data":{"id":"user_abc","deleted":true}}`
	require.Equal(t, http.StatusOK, f.deliver(t, "msg_2", []byte(deleted), true).Code)

	u, err := f.svc.FindByProviderID(context.Background(), "user_abc")
	require.NoError(t, err)
	assert.Nil(t, u)

	// Redelivery of the deletion stays a 2xx no-op.
	assert.Equal(t, http.StatusOK, f.deliver(t, "msg_3", []byte(deleted), true).Code)
}
