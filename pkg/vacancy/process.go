package vacancy

import (
	"github.com/artem13815/resumematch/pkg/experience"
	"github.com/artem13815/resumematch/pkg/nlp"
	"github.com/artem13815/resumematch/pkg/skill"
)

// Process derives sections, the years bar and skill requirements from v.RawText.
func Process(v Vacancy, seg *nlp.Segmenter, vocab skill.Vocabulary) Vacancy {
	v.Sections = seg.Detect(nlp.Normalize(v.RawText))
	v.MinYearsExperience = experience.ExtractRequirement(v.Sections).RequiredYears
	v.Skills = skill.ExtractRequirements(v.Sections, vocab)
	if v.Skills == nil {
		v.Skills = []skill.Requirement{}
	}
	return v
}
