package skill

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Category classifies an ontology entry.
type Category string

const (
	CategoryLanguage  Category = "language"
	CategoryFramework Category = "framework"
	CategoryTool      Category = "tool"
	CategoryConcept   Category = "concept"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryLanguage, CategoryFramework, CategoryTool, CategoryConcept:
		return true
	}
	return false
}

// Skill is one controlled-vocabulary entry. Names are unique.
type Skill struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Vocabulary is an immutable, ordered snapshot of the ontology. It is passed
// explicitly to extractors so tests can use synthetic vocabularies.
type Vocabulary struct {
	entries []Skill
	byID    map[int64]Skill
}

// NewVocabulary copies entries into a snapshot. Entries with an empty name are ignored.
func NewVocabulary(entries []Skill) Vocabulary {
	v := Vocabulary{
		entries: make([]Skill, 0, len(entries)),
		byID:    make(map[int64]Skill, len(entries)),
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		v.entries = append(v.entries, e)
		v.byID[e.ID] = e
	}
	return v
}

// Entries returns a copy of the snapshot in its original order.
func (v Vocabulary) Entries() []Skill {
	out := make([]Skill, len(v.entries))
	copy(out, v.entries)
	return out
}

// Len is the number of entries.
func (v Vocabulary) Len() int { return len(v.entries) }

// Name resolves a skill id; unknown ids resolve to "Unknown".
func (v Vocabulary) Name(id int64) string {
	if s, ok := v.byID[id]; ok {
		return s.Name
	}
	return "Unknown"
}

// Extracted is a skill detected in a resume with its evidence.
type Extracted struct {
	SkillID        int64    `json:"skillId"`
	SkillName      string   `json:"skillName"`
	Confidence     float64  `json:"confidence"`
	Evidence       string   `json:"evidence"`
	SourceSections []string `json:"sourceSections"`
}

// Importance says how mandatory a JD skill is.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceOptional Importance = "optional"
)

// Valid reports whether i is critical or optional.
func (i Importance) Valid() bool {
	return i == ImportanceCritical || i == ImportanceOptional
}

// Requirement is one distinct skill demanded by a JD.
type Requirement struct {
	SkillID    int64      `json:"skillId"`
	SkillName  string     `json:"skillName"`
	Importance Importance `json:"importance"`
}

var (
	ErrNotFound    = errors.New("skill not found")
	ErrInvalidSeed = errors.New("seed document is not a JSON array")
)

// Repository is the storage port for the ontology and the skills found in resumes.
type Repository interface {
	ListVocabulary(ctx context.Context) ([]Skill, error)
	// InsertMissing adds entries whose names are not stored yet and reports how many were added.
	InsertMissing(ctx context.Context, entries []Skill) (int, error)

	// ReplaceResumeSkills swaps the whole set for one resume; re-extraction never merges.
	ReplaceResumeSkills(ctx context.Context, resumeID uuid.UUID, skills []Extracted) error
	ListResumeSkills(ctx context.Context, resumeID uuid.UUID) ([]Extracted, error)
}

// VocabularyProvider hands out the current ontology snapshot.
type VocabularyProvider interface {
	Vocabulary(ctx context.Context) (Vocabulary, error)
}
