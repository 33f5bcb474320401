package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cvbuilder/api/internal/domain/entity"
	repo "github.com/cvbuilder/api/internal/domain/repository"
	"github.com/cvbuilder/api/pkg/cache"
	"github.com/cvbuilder/api/pkg/helpers"
)

var (
	ErrResumeNotFound = errors.New("resume not found")
	ErrForbidden      = errors.New("resume belongs to another user")
)

// ResumeService implements resume CRUD with ownership enforcement. Reads by
// id go through the cache; Elasticsearch indexing and GCS uploads are
// best-effort side channels and never fail the primary operation.
type ResumeService struct {
	Repo          repo.ResumeRepository
	Cache         Cache
	Logger        *logrus.Logger
	TTL           time.Duration
	GCS           *storage.Client
	GCSBucket     string
	ES            *elasticsearch.Client
	ESResumeIndex string
}

func NewResumeService(r repo.ResumeRepository, c Cache, logger *logrus.Logger, ttl time.Duration, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string) *ResumeService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ResumeService{
		Repo:          r,
		Cache:         c,
		Logger:        logger,
		TTL:           ttl,
		GCS:           gcs,
		GCSBucket:     gcsBucket,
		ES:            es,
		ESResumeIndex: esIndex,
	}
}

// ResumeInput carries resume content from the HTTP layer.
type ResumeInput struct {
	Title           string
	SubTitle        string
	Overview        string
	AvatarURL       string
	Information     []entity.ResumeInformation
	Educations      []entity.Education
	Skills          []entity.Skill
	WorkExperiences []entity.WorkExperience
	Projects        []entity.Project
}

func (in ResumeInput) apply(r *entity.Resume) {
	r.Title = in.Title
	r.SubTitle = in.SubTitle
	r.Overview = in.Overview
	r.AvatarURL = in.AvatarURL
	r.Information = in.Information
	r.Educations = in.Educations
	r.Skills = in.Skills
	r.WorkExperiences = in.WorkExperiences
	r.Projects = in.Projects
}

func (s *ResumeService) Create(ctx context.Context, userID string, in ResumeInput) (*entity.Resume, error) {
	r := &entity.Resume{UserID: userID}
	in.apply(r)
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, err
	}
	_ = s.indexResume(ctx, r)
	return r, nil
}

func (s *ResumeService) GetByID(ctx context.Context, id, userID string) (*entity.Resume, error) {
	r, err := s.loadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, ErrForbidden
	}
	return r, nil
}

func (s *ResumeService) ListByUser(ctx context.Context, userID string) ([]*entity.Resume, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *ResumeService) Update(ctx context.Context, id, userID string, in ResumeInput) (*entity.Resume, error) {
	r, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	in.apply(r)
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	_ = s.indexResume(ctx, r)
	return r, nil
}

func (s *ResumeService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.deleteFromIndex(ctx, id)
	return nil
}

// UploadAvatar stores the image in GCS and records its public URL on the resume.
func (s *ResumeService) UploadAvatar(ctx context.Context, id, userID string, r io.Reader, filename, contentType string) (string, error) {
	res, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("resumes", id, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	res.AvatarURL = url
	if err := s.Repo.Update(ctx, res); err != nil {
		return "", err
	}
	s.invalidate(ctx, id)
	_ = s.indexResume(ctx, res)
	return url, nil
}

// Search runs a multi_match query over indexed titles and overviews, scoped
// to the caller's own resumes.
func (s *ResumeService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESResumeIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "sub_title", "overview"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESResumeIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *ResumeService) loadByID(ctx context.Context, id string) (*entity.Resume, error) {
	key := cache.ResumeByID(id)
	if raw, ok, err := s.Cache.Get(ctx, key); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("cache read failed")
	} else if ok {
		var r entity.Resume
		if json.Unmarshal(raw, &r) == nil {
			return &r, nil
		}
	}

	r, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, err
	}
	if b, mErr := json.Marshal(r); mErr == nil {
		if cErr := s.Cache.Set(ctx, key, b, s.TTL); cErr != nil {
			s.Logger.WithError(cErr).WithField("key", key).Warn("cache write failed")
		}
	}
	return r, nil
}

func (s *ResumeService) invalidate(ctx context.Context, id string) {
	if err := s.Cache.Delete(ctx, cache.ResumeByID(id)); err != nil {
		s.Logger.WithError(err).WithField("resume_id", id).Warn("cache invalidation failed")
	}
}

func (s *ResumeService) indexResume(ctx context.Context, r *entity.Resume) error {
	if s.ES == nil || s.ESResumeIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         r.ID,
		"user_id":    r.UserID,
		"title":      r.Title,
		"sub_title":  r.SubTitle,
		"overview":   r.Overview,
		"created_at": r.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": r.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESResumeIndex, DocumentID: r.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("resume_id", r.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("resume_id", r.ID).Warn("es index response error")
	}
	return nil
}

func (s *ResumeService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESResumeIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESResumeIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("resume_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}
