package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cvbuilder/api/internal/domain/entity"
	repo "github.com/cvbuilder/api/internal/domain/repository"
	"github.com/cvbuilder/api/pkg/cache"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// ProviderClerk is the fixed provider name recorded on users synchronized
// from Clerk webhooks.
const ProviderClerk = "clerk"

// UserService fronts the user store with a read-through cache keyed by the
// external provider id. A cached JSON null is a confirmed-absent marker and
// is returned as absence without touching the store; entries are invalidated
// by the lifecycle webhook strategies, never refreshed by them.
type UserService struct {
	Repo        repo.UserRepository
	Cache       Cache
	Logger      *logrus.Logger
	TTL         time.Duration // positive entries
	NegativeTTL time.Duration // confirmed-absent entries
}

func NewUserService(r repo.UserRepository, c Cache, logger *logrus.Logger, ttl, negativeTTL time.Duration) *UserService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if negativeTTL <= 0 {
		negativeTTL = time.Minute
	}
	return &UserService{Repo: r, Cache: c, Logger: logger, TTL: ttl, NegativeTTL: negativeTTL}
}

// FindByProviderID resolves a user by external provider id. Returns
// (nil, nil) for a confirmed-absent user; the absence is negatively cached to
// bound repeated-miss load on the store.
func (s *UserService) FindByProviderID(ctx context.Context, providerID string) (*entity.User, error) {
	key := cache.UserByProvider(providerID)

	if raw, ok, err := s.Cache.Get(ctx, key); err != nil {
		// Cache failures degrade to a store read, they are not fatal.
		s.Logger.WithError(err).WithField("key", key).Warn("cache read failed")
	} else if ok {
		var u *entity.User
		if jsonErr := json.Unmarshal(raw, &u); jsonErr == nil {
			return u, nil // u == nil means confirmed absent
		}
		s.Logger.WithField("key", key).Warn("dropping undecodable cache entry")
		_ = s.Cache.Delete(ctx, key)
	}

	u, err := s.Repo.GetByProviderID(ctx, providerID)
	if errors.Is(err, repo.ErrNotFound) {
		s.cacheUser(ctx, key, nil, s.NegativeTTL)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.cacheUser(ctx, key, u, s.TTL)
	return u, nil
}

// InvalidateProviderCache unconditionally deletes the cache entry for the
// given provider id; safe to call when no entry exists.
func (s *UserService) InvalidateProviderCache(ctx context.Context, providerID string) error {
	return s.Cache.Delete(ctx, cache.UserByProvider(providerID))
}

// GetProfile loads a user by internal id, bypassing the cache.
func (s *UserService) GetProfile(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) cacheUser(ctx context.Context, key string, u *entity.User, ttl time.Duration) {
	b, err := json.Marshal(u) // nil marshals to the JSON null absence marker
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, b, ttl); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}
