package repository

import (
	"context"

	"github.com/cvbuilder/api/internal/domain/entity"
)

// ResumeRepository defines the interface for resume-related database operations.
type ResumeRepository interface {
	Create(ctx context.Context, r *entity.Resume) error
	GetByID(ctx context.Context, id string) (*entity.Resume, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Resume, error)
	Update(ctx context.Context, r *entity.Resume) error
	Delete(ctx context.Context, id string) error
}
