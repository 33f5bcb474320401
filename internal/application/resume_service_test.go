package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvbuilder/api/internal/domain/entity"
	"github.com/cvbuilder/api/pkg/cache"
)

func newResumeService(r *mockResumeRepo, c *mockCache) *ResumeService {
	return NewResumeService(r, c, newTestLogger(), 5*time.Minute, nil, "", nil, "")
}

func ownedResume(id, userID string) *entity.Resume {
	return &entity.Resume{
		ID:     id,
		UserID: userID,
		Title:  "Backend Engineer",
		Skills: []entity.Skill{{Label: "Go", Value: "advanced"}},
	}
}

func TestResumeGetByIDEnforcesOwnership(t *testing.T) {
	resumes := &mockResumeRepo{
		getByIDFunc: func(_ context.Context, id string) (*entity.Resume, error) {
			return ownedResume(id, "owner-1"), nil
		},
	}
	svc := newResumeService(resumes, newMockCache())

	r, err := svc.GetByID(context.Background(), "r1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", r.Title)

	_, err = svc.GetByID(context.Background(), "r1", "someone-else")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResumeGetByIDNotFound(t *testing.T) {
	svc := newResumeService(&mockResumeRepo{}, newMockCache())
	_, err := svc.GetByID(context.Background(), "missing", "owner-1")
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestResumeGetByIDCachesReads(t *testing.T) {
	resumes := &mockResumeRepo{
		getByIDFunc: func(_ context.Context, id string) (*entity.Resume, error) {
			return ownedResume(id, "owner-1"), nil
		},
	}
	c := newMockCache()
	svc := newResumeService(resumes, c)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "r1", "owner-1")
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, "r1", "owner-1")
	require.NoError(t, err)

	assert.Equal(t, 1, resumes.getByIDCalls)
	_, ok := c.entries[cache.ResumeByID("r1")]
	assert.True(t, ok)
}

func TestResumeCreateSetsOwner(t *testing.T) {
	var stored *entity.Resume
	resumes := &mockResumeRepo{
		createFunc: func(_ context.Context, r *entity.Resume) error {
			stored = r
			return nil
		},
	}
	svc := newResumeService(resumes, newMockCache())

	in := ResumeInput{
		Title:    "Backend Engineer",
		Overview: "Ten years of service plumbing.",
		Educations: []entity.Education{
			{School: "MIT", Degree: "BSc", Major: "CS"},
		},
	}
	r, err := svc.Create(context.Background(), "owner-1", in)
	require.NoError(t, err)
	require.Same(t, stored, r)
	assert.Equal(t, "owner-1", r.UserID)
	assert.Len(t, r.Educations, 1)
}

func TestResumeUpdateInvalidatesCache(t *testing.T) {
	resumes := &mockResumeRepo{
		getByIDFunc: func(_ context.Context, id string) (*entity.Resume, error) {
			return ownedResume(id, "owner-1"), nil
		},
	}
	c := newMockCache()
	svc := newResumeService(resumes, c)
	ctx := context.Background()

	// Prime the cache, then update.
	_, err := svc.GetByID(ctx, "r1", "owner-1")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "r1", "owner-1", ResumeInput{Title: "Staff Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Title)
	_, ok := c.entries[cache.ResumeByID("r1")]
	assert.False(t, ok, "stale cache entry must be dropped on update")
}

func TestResumeUpdateForbiddenForNonOwner(t *testing.T) {
	resumes := &mockResumeRepo{
		getByIDFunc: func(_ context.Context, id string) (*entity.Resume, error) {
			return ownedResume(id, "owner-1"), nil
		},
	}
	svc := newResumeService(resumes, newMockCache())

	_, err := svc.Update(context.Background(), "r1", "intruder", ResumeInput{Title: "hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResumeDeleteChecksOwnership(t *testing.T) {
	resumes := &mockResumeRepo{
		getByIDFunc: func(_ context.Context, id string) (*entity.Resume, error) {
			return ownedResume(id, "owner-1"), nil
		},
	}
	c := newMockCache()
	svc := newResumeService(resumes, c)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, "r1", "intruder"), ErrForbidden)
	assert.Equal(t, 0, resumes.deleteCalls)

	require.NoError(t, svc.Delete(ctx, "r1", "owner-1"))
	assert.Equal(t, 1, resumes.deleteCalls)
	_, ok := c.entries[cache.ResumeByID("r1")]
	assert.False(t, ok)
}

func TestResumeSearchWithoutIndexReturnsEmpty(t *testing.T) {
	svc := newResumeService(&mockResumeRepo{}, newMockCache())
	out, err := svc.Search(context.Background(), "owner-1", "golang", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}
