package entity

import (
	"time"
)

// Resume section records. Stored denormalized as JSONB alongside the resume
// row; they have no identity of their own outside their parent resume.

type ResumeInformation struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Education struct {
	School    string     `json:"school"`
	Degree    string     `json:"degree"`
	Major     string     `json:"major"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type Skill struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type WorkExperience struct {
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type Project struct {
	Title    string `json:"title"`
	SubTitle string `json:"sub_title"`
	Details  string `json:"details"`
}

// Resume is owned by exactly one user; all reads and mutations are
// ownership-checked in the application layer.
type Resume struct {
	ID        string
	UserID    string
	Title     string
	SubTitle  string
	Overview  string
	AvatarURL string

	Information     []ResumeInformation
	Educations      []Education
	Skills          []Skill
	WorkExperiences []WorkExperience
	Projects        []Project

	CreatedAt time.Time
	UpdatedAt time.Time
}
