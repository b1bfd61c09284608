package resume

import (
	"github.com/google/uuid"

	"github.com/artem13815/resumematch/pkg/experience"
	"github.com/artem13815/resumematch/pkg/nlp"
	"github.com/artem13815/resumematch/pkg/skill"
)

// Process runs the deterministic pipeline over raw resume text: normalise,
// split into sections, read years of experience and extract skills.
func Process(resumeID uuid.UUID, rawText string, seg *nlp.Segmenter, vocab skill.Vocabulary) (Parsed, []skill.Extracted) {
	sections := seg.Detect(nlp.Normalize(rawText))
	p := Parsed{
		ResumeID:        resumeID,
		RawText:         rawText,
		Sections:        sections,
		ExperienceYears: experience.ActualYears(sections),
	}
	return p, skill.Sorted(skill.Extract(sections, vocab))
}
