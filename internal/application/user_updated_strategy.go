package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/cvbuilder/api/internal/domain/event"
)

// UserUpdatedStrategy keeps the lookup cache coherent after a profile change.
// The store itself is updated through the provider's own flow; this handler's
// only job is to drop the stale cache entry.
type UserUpdatedStrategy struct {
	Users  *UserService
	Logger *logrus.Logger
}

func NewUserUpdatedStrategy(users *UserService, logger *logrus.Logger) *UserUpdatedStrategy {
	return &UserUpdatedStrategy{Users: users, Logger: logger}
}

func (s *UserUpdatedStrategy) Type() event.Type {
	return event.UserUpdated
}

func (s *UserUpdatedStrategy) Handle(ctx context.Context, evt *event.Event) error {
	if evt.Data.ID == "" {
		s.Logger.Warn("no user id on user.updated event, skipping")
		return nil
	}
	if err := s.Users.InvalidateProviderCache(ctx, evt.Data.ID); err != nil {
		return err
	}
	s.Logger.WithField("provider_id", evt.Data.ID).Debug("user cache invalidated after update")
	return nil
}

var _ Strategy = (*UserUpdatedStrategy)(nil)
