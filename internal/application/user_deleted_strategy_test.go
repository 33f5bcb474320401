package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvbuilder/api/internal/domain/entity"
	"github.com/cvbuilder/api/internal/domain/event"
	"github.com/cvbuilder/api/pkg/cache"
)

func deletedEvent(providerID string) *event.Event {
	return &event.Event{Type: event.UserDeleted, Data: event.UserData{ID: providerID}}
}

func TestUserDeletedStrategyDeletesAndInvalidates(t *testing.T) {
	users := &mockUserRepo{
		getByProviderIDFunc: func(_ context.Context, providerID string) (*entity.User, error) {
			return &entity.User{ID: "local-1", ProviderID: providerID}, nil
		},
	}
	c := newMockCache()
	c.entries[cache.UserByProvider("user_abc")] = []byte(`{"ID":"local-1"}`)
	svc := NewUserService(users, c, newTestLogger(), time.Minute, time.Minute)
	s := NewUserDeletedStrategy(users, svc, newTestLogger())

	require.NoError(t, s.Handle(context.Background(), deletedEvent("user_abc")))
	assert.Equal(t, 1, users.deleteCalls)
	_, ok := c.entries[cache.UserByProvider("user_abc")]
	assert.False(t, ok, "cache entry should be gone after deletion")
}

func TestUserDeletedStrategyIgnoresUnknownUser(t *testing.T) {
	users := &mockUserRepo{} // GetByProviderID defaults to not found
	svc := NewUserService(users, newMockCache(), newTestLogger(), time.Minute, time.Minute)
	s := NewUserDeletedStrategy(users, svc, newTestLogger())

	// Redelivered deletions must stay no-ops.
	assert.NoError(t, s.Handle(context.Background(), deletedEvent("user_gone")))
	assert.NoError(t, s.Handle(context.Background(), deletedEvent("user_gone")))
	assert.Equal(t, 0, users.deleteCalls)
}

func TestUserDeletedStrategySkipsWithoutID(t *testing.T) {
	users := &mockUserRepo{}
	svc := NewUserService(users, newMockCache(), newTestLogger(), time.Minute, time.Minute)
	s := NewUserDeletedStrategy(users, svc, newTestLogger())

	assert.NoError(t, s.Handle(context.Background(), deletedEvent("")))
	assert.Equal(t, 0, users.getByProviderIDCalls)
}

func TestUserUpdatedStrategyInvalidatesCache(t *testing.T) {
	users := &mockUserRepo{}
	c := newMockCache()
	c.entries[cache.UserByProvider("user_abc")] = []byte(`{"Email":"stale@example.com"}`)
	svc := NewUserService(users, c, newTestLogger(), time.Minute, time.Minute)
	s := NewUserUpdatedStrategy(svc, newTestLogger())

	evt := &event.Event{Type: event.UserUpdated, Data: event.UserData{ID: "user_abc"}}
	require.NoError(t, s.Handle(context.Background(), evt))
	_, ok := c.entries[cache.UserByProvider("user_abc")]
	assert.False(t, ok)
}
