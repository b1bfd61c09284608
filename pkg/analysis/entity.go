package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Report is the structured outcome of one resume vs JD evaluation.
type Report struct {
	OverallMatchScore  float64            `json:"overall_match_score"`
	SkillAnalysis      SkillAnalysis      `json:"skill_analysis"`
	ExperienceAnalysis ExperienceAnalysis `json:"experience_analysis"`
	Strengths          []string           `json:"strengths"`
	Risks              []string           `json:"risks"`
	Recommendations    []string           `json:"recommendations"`
}

// SkillAnalysis lists canonical skill names in JD requirement order.
type SkillAnalysis struct {
	Matched         []string `json:"matched"`
	MissingCritical []string `json:"missing_critical"`
	MissingOptional []string `json:"missing_optional"`
}

type ExperienceAnalysis struct {
	RequiredYears int `json:"required_years"`
	ActualYears   int `json:"actual_years"`
	Gap           int `json:"gap"`
}

// Analysis is an immutable snapshot. A re-run creates a new one.
type Analysis struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId,omitempty"`
	ResumeID  uuid.UUID `json:"resumeId"`
	VacancyID uuid.UUID `json:"vacancyId"`
	Score     float64   `json:"score"`
	// Model names the LLM that wrote the recommendations, empty when none did.
	Model     string    `json:"model"`
	Report    Report    `json:"report"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrNotFound = errors.New("analysis not found")

// Repository stores analyses. There is no update: history is append-only.
type Repository interface {
	Create(ctx context.Context, a Analysis) error
	// owner-scoped
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Analysis, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Analysis, error)
	ListByVacancyForOwner(ctx context.Context, ownerID, vacancyID uuid.UUID, limit, offset int) ([]Analysis, error)
	// admin
	GetByIDAny(ctx context.Context, id uuid.UUID) (Analysis, error)
	ListAll(ctx context.Context, limit, offset int) ([]Analysis, error)
	ListByVacancyAny(ctx context.Context, vacancyID uuid.UUID, limit, offset int) ([]Analysis, error)
}
