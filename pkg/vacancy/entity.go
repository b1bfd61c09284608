package vacancy

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/resumematch/pkg/nlp"
	"github.com/artem13815/resumematch/pkg/skill"
)

// Vacancy is a job description with everything derived from its text.
// Sections, MinYearsExperience and Skills are recomputed from RawText.
type Vacancy struct {
	ID                 uuid.UUID           `json:"id"`
	OwnerID            uuid.UUID           `json:"ownerId,omitempty"`
	Title              string              `json:"title"`
	RawText            string              `json:"rawText"`
	Sections           nlp.Sections        `json:"sections"`
	MinYearsExperience int                 `json:"minYearsExperience"`
	Skills             []skill.Requirement `json:"skills"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

var (
	ErrNotFound  = errors.New("vacancy not found")
	ErrEmptyText = errors.New("vacancy text is empty")
	// ErrInUse blocks deleting a vacancy that analyses still point at.
	ErrInUse = errors.New("vacancy has analyses and cannot be deleted")
)

// ErrValidation is a plain input validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Repository is the storage port for vacancies and their skill requirements.
type Repository interface {
	Create(ctx context.Context, v Vacancy) error
	// UpdateDerived replaces sections, years and the whole requirement set.
	UpdateDerived(ctx context.Context, v Vacancy) error
	// owner-scoped
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Vacancy, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Vacancy, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
	// admin, no owner filter
	GetByIDAny(ctx context.Context, id uuid.UUID) (Vacancy, error)
	ListAll(ctx context.Context, limit, offset int) ([]Vacancy, error)
	DeleteAny(ctx context.Context, id uuid.UUID) error
}
