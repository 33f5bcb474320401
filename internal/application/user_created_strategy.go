package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cvbuilder/api/internal/domain/entity"
	"github.com/cvbuilder/api/internal/domain/event"
	repo "github.com/cvbuilder/api/internal/domain/repository"
)

// UserCreatedStrategy persists a new local user from a user.created event.
type UserCreatedStrategy struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewUserCreatedStrategy(r repo.UserRepository, logger *logrus.Logger) *UserCreatedStrategy {
	return &UserCreatedStrategy{Repo: r, Logger: logger}
}

func (s *UserCreatedStrategy) Type() event.Type {
	return event.UserCreated
}

func (s *UserCreatedStrategy) Handle(ctx context.Context, evt *event.Event) error {
	data := evt.Data

	email, ok := data.PrimaryEmail()
	if !ok {
		// No user is created without a primary email.
		s.Logger.WithField("provider_id", data.ID).Warn("no primary email on user.created event, skipping")
		return nil
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: email %s", ErrUserExists, email)
	}

	u := &entity.User{
		Provider:   ProviderClerk,
		ProviderID: data.ID,
		Email:      email,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		AvatarURL:  data.ImageURL,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return err
	}

	s.Logger.WithFields(logrus.Fields{
		"user_id":     u.ID,
		"provider_id": u.ProviderID,
		"email":       u.Email,
	}).Info("user created from webhook")
	return nil
}

var _ Strategy = (*UserCreatedStrategy)(nil)
