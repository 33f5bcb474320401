package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/cvbuilder/api/internal/domain/event"
	repo "github.com/cvbuilder/api/internal/domain/repository"
)

// UserDeletedStrategy removes the local user row for a user.deleted event and
// invalidates the cache entry for its provider id. Deletion and invalidation
// run sequentially, not atomically; a failure between them leaves a stale
// entry until the cache TTL expires.
type UserDeletedStrategy struct {
	Repo   repo.UserRepository
	Users  *UserService
	Logger *logrus.Logger
}

func NewUserDeletedStrategy(r repo.UserRepository, users *UserService, logger *logrus.Logger) *UserDeletedStrategy {
	return &UserDeletedStrategy{Repo: r, Users: users, Logger: logger}
}

func (s *UserDeletedStrategy) Type() event.Type {
	return event.UserDeleted
}

func (s *UserDeletedStrategy) Handle(ctx context.Context, evt *event.Event) error {
	providerID := evt.Data.ID
	if providerID == "" {
		s.Logger.Warn("no user id on user.deleted event, skipping")
		return nil
	}

	u, err := s.Repo.GetByProviderID(ctx, providerID)
	if errors.Is(err, repo.ErrNotFound) {
		// Redelivery of an already-processed deletion is a no-op.
		s.Logger.WithField("provider_id", providerID).Warn("user not found for deletion, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, u.ID); err != nil {
		return err
	}
	if err := s.Users.InvalidateProviderCache(ctx, providerID); err != nil {
		return err
	}

	s.Logger.WithFields(logrus.Fields{
		"user_id":     u.ID,
		"provider_id": providerID,
	}).Info("user deleted from webhook")
	return nil
}

var _ Strategy = (*UserDeletedStrategy)(nil)
