package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/resumematch/pkg/nlp"
)

// Resume holds the metadata of an uploaded file.
type Resume struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"ownerId,omitempty"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	StorageURI string    `json:"storageUri,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Parsed is everything derived from a resume's text. It is recomputed from
// RawText on every (re)processing and can be discarded at any time.
type Parsed struct {
	ResumeID        uuid.UUID    `json:"resumeId"`
	RawText         string       `json:"rawText"`
	Sections        nlp.Sections `json:"sections"`
	ExperienceYears int          `json:"experienceYears"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

var (
	ErrNotFound          = errors.New("resume not found")
	ErrEmptyText         = errors.New("resume text is empty")
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, docx and txt are allowed")
	// ErrInUse blocks deleting a resume that analyses still point at.
	ErrInUse = errors.New("resume has analyses and cannot be deleted")
)

// Repository is the storage port for resumes.
type Repository interface {
	Create(ctx context.Context, r Resume) error
	// SaveParsed replaces the derived record of a resume.
	SaveParsed(ctx context.Context, p Parsed) error
	GetParsed(ctx context.Context, resumeID uuid.UUID) (Parsed, error)
	// owner-scoped
	GetMetaForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error)
	// admin
	GetMetaAny(ctx context.Context, id uuid.UUID) (Resume, error)
	ListAll(ctx context.Context, limit, offset int) ([]Resume, error)
	// delete returns the removed metadata so the file can be cleaned up
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	DeleteAny(ctx context.Context, id uuid.UUID) (Resume, error)
}

// FileStore keeps original uploads.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) (uri string, err error)
	Remove(ctx context.Context, uri string) error
}
