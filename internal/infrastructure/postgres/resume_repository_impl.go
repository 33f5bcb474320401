package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cvbuilder/api/internal/domain/entity"
	"github.com/cvbuilder/api/internal/domain/repository"
)

// ResumeRepository stores resume rows with their section collections
// (information, educations, skills, work experiences, projects) as JSONB.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

const resumeColumns = `id, user_id, title, sub_title, overview, avatar_url,
	information, educations, skills, work_experiences, projects, created_at, updated_at`

type resumeSections struct {
	information     []byte
	educations      []byte
	skills          []byte
	workExperiences []byte
	projects        []byte
}

func marshalSections(r *entity.Resume) (resumeSections, error) {
	var s resumeSections
	var err error
	if s.information, err = json.Marshal(emptyIfNil(r.Information)); err != nil {
		return s, err
	}
	if s.educations, err = json.Marshal(emptyIfNil(r.Educations)); err != nil {
		return s, err
	}
	if s.skills, err = json.Marshal(emptyIfNil(r.Skills)); err != nil {
		return s, err
	}
	if s.workExperiences, err = json.Marshal(emptyIfNil(r.WorkExperiences)); err != nil {
		return s, err
	}
	if s.projects, err = json.Marshal(emptyIfNil(r.Projects)); err != nil {
		return s, err
	}
	return s, nil
}

// emptyIfNil keeps JSONB columns as [] instead of null for absent sections.
func emptyIfNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func (r *ResumeRepository) Create(ctx context.Context, res *entity.Resume) error {
	s, err := marshalSections(res)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO resumes (user_id, title, sub_title, overview, avatar_url,
			information, educations, skills, work_experiences, projects)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, res.UserID, res.Title, res.SubTitle, res.Overview, res.AvatarURL,
		s.information, s.educations, s.skills, s.workExperiences, s.projects)

	return row.Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*entity.Resume, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+resumeColumns+`
		FROM resumes
		WHERE id = $1
	`, id)
	res, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (r *ResumeRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Resume, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+resumeColumns+`
		FROM resumes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Resume, 0)
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ResumeRepository) Update(ctx context.Context, res *entity.Resume) error {
	s, err := marshalSections(res)
	if err != nil {
		return err
	}
	res.UpdatedAt = time.Now()

	tag, err := r.pool.Exec(ctx, `
		UPDATE resumes
		SET title = $1, sub_title = $2, overview = $3, avatar_url = $4,
			information = $5, educations = $6, skills = $7,
			work_experiences = $8, projects = $9, updated_at = $10
		WHERE id = $11
	`, res.Title, res.SubTitle, res.Overview, res.AvatarURL,
		s.information, s.educations, s.skills, s.workExperiences, s.projects,
		res.UpdatedAt, res.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ResumeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanResume(row pgx.Row) (*entity.Resume, error) {
	res := &entity.Resume{}
	var information, educations, skills, workExperiences, projects []byte
	if err := row.Scan(&res.ID, &res.UserID, &res.Title, &res.SubTitle, &res.Overview,
		&res.AvatarURL, &information, &educations, &skills, &workExperiences,
		&projects, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	for _, pair := range []struct {
		raw  []byte
		dest any
	}{
		{information, &res.Information},
		{educations, &res.Educations},
		{skills, &res.Skills},
		{workExperiences, &res.WorkExperiences},
		{projects, &res.Projects},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.dest); err != nil {
			return nil, err
		}
	}
	return res, nil
}

var _ repository.ResumeRepository = (*ResumeRepository)(nil)
