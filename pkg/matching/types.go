package matching

import (
	"errors"
	"fmt"

	"github.com/artem13815/resumematch/pkg/skill"
)

// SkillMatchInput is one resume skill as the engine sees it.
type SkillMatchInput struct {
	SkillID    int64   `json:"skill_id"`
	SkillName  string  `json:"skill_name"`
	Confidence float64 `json:"context_confidence"`
}

// MatchInput is everything the engine needs; it never reads storage.
type MatchInput struct {
	ResumeSkills          []SkillMatchInput   `json:"resume_skills"`
	JDSkills              []skill.Requirement `json:"jd_skills"`
	ResumeExperienceYears int                 `json:"resume_experience_years"`
	JDExperienceYears     int                 `json:"jd_experience_years"`
}

var ErrInvalidInput = errors.New("invalid match input")

// Validate reports caller bugs. The engine assumes a valid input and does not
// check again.
func (in MatchInput) Validate() error {
	if in.ResumeExperienceYears < 0 || in.JDExperienceYears < 0 {
		return fmt.Errorf("%w: negative years", ErrInvalidInput)
	}
	for _, s := range in.ResumeSkills {
		if s.Confidence < 0 || s.Confidence > 1 {
			return fmt.Errorf("%w: skill %d confidence %v outside [0,1]", ErrInvalidInput, s.SkillID, s.Confidence)
		}
	}
	seen := make(map[int64]struct{}, len(in.JDSkills))
	for _, r := range in.JDSkills {
		if !r.Importance.Valid() {
			return fmt.Errorf("%w: skill %d has importance %q", ErrInvalidInput, r.SkillID, r.Importance)
		}
		if _, dup := seen[r.SkillID]; dup {
			return fmt.Errorf("%w: skill %d required twice", ErrInvalidInput, r.SkillID)
		}
		seen[r.SkillID] = struct{}{}
	}
	return nil
}

// SkillMatch is the classification of one JD requirement. ResumeConfidence is
// set for matched skills only.
type SkillMatch struct {
	SkillID          int64            `json:"skill_id"`
	SkillName        string           `json:"skill_name"`
	Importance       skill.Importance `json:"importance"`
	ResumeConfidence float64          `json:"resume_confidence,omitempty"`
}

// SkillGap partitions the JD requirements. Lists are never nil.
type SkillGap struct {
	Matched         []SkillMatch `json:"matched"`
	MissingCritical []SkillMatch `json:"missing_critical"`
	MissingOptional []SkillMatch `json:"missing_optional"`
}

type ExperienceResult struct {
	RequiredYears int     `json:"required_years"`
	ActualYears   int     `json:"actual_years"`
	Gap           int     `json:"gap"`
	Status        string  `json:"status"`
	PenaltyFactor float64 `json:"penalty_factor"`
}

// Result is the full evaluation of one resume against one JD.
type Result struct {
	SkillGap        SkillGap         `json:"skill_gap"`
	SkillScore      float64          `json:"skill_score"`
	Experience      ExperienceResult `json:"experience"`
	ExperienceScore float64          `json:"experience_score"`
	FinalScore      float64          `json:"final_score"`
	Strengths       []string         `json:"strengths"`
	Risks           []string         `json:"risks"`
}
