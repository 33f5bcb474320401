package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cvbuilder/api/internal/application"
	"github.com/cvbuilder/api/internal/domain/entity"
	"github.com/cvbuilder/api/internal/interface/middleware"
	"github.com/cvbuilder/api/pkg/response"
	"github.com/cvbuilder/api/pkg/validation"
)

const maxAvatarBytes = 5 << 20 // 5 MiB

type ResumeHandler struct {
	Svc    *application.ResumeService
	Logger *logrus.Logger
}

func NewResumeHandler(svc *application.ResumeService, logger *logrus.Logger) *ResumeHandler {
	return &ResumeHandler{Svc: svc, Logger: logger}
}

type informationRequest struct {
	Label string `json:"label" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type educationRequest struct {
	School    string     `json:"school" binding:"required"`
	Degree    string     `json:"degree"`
	Major     string     `json:"major"`
	StartDate time.Time  `json:"start_date" binding:"required"`
	EndDate   *time.Time `json:"end_date"`
}

type skillRequest struct {
	Label string `json:"label" binding:"required"`
	Value string `json:"value"`
}

type workExperienceRequest struct {
	Company     string     `json:"company" binding:"required"`
	Position    string     `json:"position" binding:"required"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
}

type projectRequest struct {
	Title    string `json:"title" binding:"required"`
	SubTitle string `json:"sub_title"`
	Details  string `json:"details"`
}

type resumeRequest struct {
	Title           string                  `json:"title" binding:"required,max=120"`
	SubTitle        string                  `json:"sub_title" binding:"max=180"`
	Overview        string                  `json:"overview"`
	AvatarURL       string                  `json:"avatar_url" binding:"omitempty,url"`
	Information     []informationRequest    `json:"information" binding:"dive"`
	Educations      []educationRequest      `json:"educations" binding:"dive"`
	Skills          []skillRequest          `json:"skills" binding:"dive"`
	WorkExperiences []workExperienceRequest `json:"work_experiences" binding:"dive"`
	Projects        []projectRequest        `json:"projects" binding:"dive"`
}

func (r resumeRequest) toInput() application.ResumeInput {
	in := application.ResumeInput{
		Title:     r.Title,
		SubTitle:  r.SubTitle,
		Overview:  r.Overview,
		AvatarURL: r.AvatarURL,
	}
	for _, i := range r.Information {
		in.Information = append(in.Information, entity.ResumeInformation{Label: i.Label, Value: i.Value})
	}
	for _, e := range r.Educations {
		in.Educations = append(in.Educations, entity.Education{
			School: e.School, Degree: e.Degree, Major: e.Major,
			StartDate: e.StartDate, EndDate: e.EndDate,
		})
	}
	for _, s := range r.Skills {
		in.Skills = append(in.Skills, entity.Skill{Label: s.Label, Value: s.Value})
	}
	for _, w := range r.WorkExperiences {
		in.WorkExperiences = append(in.WorkExperiences, entity.WorkExperience{
			Company: w.Company, Position: w.Position, Description: w.Description,
			StartDate: w.StartDate, EndDate: w.EndDate,
		})
	}
	for _, p := range r.Projects {
		in.Projects = append(in.Projects, entity.Project{Title: p.Title, SubTitle: p.SubTitle, Details: p.Details})
	}
	return in
}

func (h *ResumeHandler) Create(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.toInput())
	if err != nil {
		h.Logger.WithError(err).Error("failed to create resume")
		response.Error[any](c, http.StatusInternalServerError, "failed to create resume", nil)
		return
	}
	response.Success(c, http.StatusCreated, resumeView(r), "resume created", nil)
}

func (h *ResumeHandler) List(c *gin.Context) {
	rs, err := h.Svc.ListByUser(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.Logger.WithError(err).Error("failed to list resumes")
		response.Error[any](c, http.StatusInternalServerError, "failed to list resumes", nil)
		return
	}
	views := make([]gin.H, 0, len(rs))
	for _, r := range rs {
		views = append(views, resumeView(r))
	}
	response.Success(c, http.StatusOK, views, "resumes", map[string]any{"count": len(views)})
}

func (h *ResumeHandler) Get(c *gin.Context) {
	r, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.writeError(c, err, "failed to load resume")
		return
	}
	response.Success(c, http.StatusOK, resumeView(r), "resume", nil)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Update(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey), req.toInput())
	if err != nil {
		h.writeError(c, err, "failed to update resume")
		return
	}
	response.Success(c, http.StatusOK, resumeView(r), "resume updated", nil)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey)); err != nil {
		h.writeError(c, err, "failed to delete resume")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "resume deleted", nil)
}

func (h *ResumeHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	if file.Size > maxAvatarBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "avatar too large", nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to read avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey),
		f, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		h.writeError(c, err, "failed to upload avatar")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}

func (h *ResumeHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query parameter q", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("resume search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func (h *ResumeHandler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, application.ErrResumeNotFound):
		response.Error[any](c, http.StatusNotFound, "resume not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "you do not have permission for this resume", nil)
	default:
		h.Logger.WithError(err).Error(msg)
		response.Error[any](c, http.StatusInternalServerError, msg, nil)
	}
}

func resumeView(r *entity.Resume) gin.H {
	return gin.H{
		"id":               r.ID,
		"user_id":          r.UserID,
		"title":            r.Title,
		"sub_title":        r.SubTitle,
		"overview":         r.Overview,
		"avatar_url":       r.AvatarURL,
		"information":      r.Information,
		"educations":       r.Educations,
		"skills":           r.Skills,
		"work_experiences": r.WorkExperiences,
		"projects":         r.Projects,
		"created_at":       r.CreatedAt,
		"updated_at":       r.UpdatedAt,
	}
}
