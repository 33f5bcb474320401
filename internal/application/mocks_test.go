package application

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cvbuilder/api/internal/domain/entity"
	repo "github.com/cvbuilder/api/internal/domain/repository"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type mockUserRepo struct {
	createFunc          func(ctx context.Context, u *entity.User) error
	getByIDFunc         func(ctx context.Context, id string) (*entity.User, error)
	getByEmailFunc      func(ctx context.Context, email string) (*entity.User, error)
	getByProviderIDFunc func(ctx context.Context, providerID string) (*entity.User, error)
	updateFunc          func(ctx context.Context, u *entity.User) error
	deleteFunc          func(ctx context.Context, id string) error

	createCalls          int
	getByEmailCalls      int
	getByProviderIDCalls int
	deleteCalls          int
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	m.createCalls++
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFunc == nil {
		return nil, repo.ErrNotFound
	}
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.getByEmailCalls++
	if m.getByEmailFunc == nil {
		return nil, repo.ErrNotFound
	}
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) GetByProviderID(ctx context.Context, providerID string) (*entity.User, error) {
	m.getByProviderIDCalls++
	if m.getByProviderIDFunc == nil {
		return nil, repo.ErrNotFound
	}
	return m.getByProviderIDFunc(ctx, providerID)
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	if m.updateFunc == nil {
		return nil
	}
	return m.updateFunc(ctx, u)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	if m.deleteFunc == nil {
		return nil
	}
	return m.deleteFunc(ctx, id)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockCache struct {
	entries  map[string][]byte
	getErr   error
	setCalls int
	delCalls int
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string][]byte{}}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	b, ok := m.entries[key]
	return b, ok, nil
}

func (m *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.setCalls++
	m.entries[key] = value
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	m.delCalls++
	delete(m.entries, key)
	return nil
}

var _ Cache = (*mockCache)(nil)

type mockResumeRepo struct {
	createFunc     func(ctx context.Context, r *entity.Resume) error
	getByIDFunc    func(ctx context.Context, id string) (*entity.Resume, error)
	listByUserFunc func(ctx context.Context, userID string) ([]*entity.Resume, error)
	updateFunc     func(ctx context.Context, r *entity.Resume) error
	deleteFunc     func(ctx context.Context, id string) error

	getByIDCalls int
	deleteCalls  int
}

func (m *mockResumeRepo) Create(ctx context.Context, r *entity.Resume) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, r)
}

func (m *mockResumeRepo) GetByID(ctx context.Context, id string) (*entity.Resume, error) {
	m.getByIDCalls++
	if m.getByIDFunc == nil {
		return nil, repo.ErrNotFound
	}
	return m.getByIDFunc(ctx, id)
}

func (m *mockResumeRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Resume, error) {
	if m.listByUserFunc == nil {
		return nil, nil
	}
	return m.listByUserFunc(ctx, userID)
}

func (m *mockResumeRepo) Update(ctx context.Context, r *entity.Resume) error {
	if m.updateFunc == nil {
		return nil
	}
	return m.updateFunc(ctx, r)
}

func (m *mockResumeRepo) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	if m.deleteFunc == nil {
		return nil
	}
	return m.deleteFunc(ctx, id)
}

var _ repo.ResumeRepository = (*mockResumeRepo)(nil)
