package analysis

import (
	"github.com/google/uuid"

	"github.com/artem13815/resumematch/pkg/matching"
	"github.com/artem13815/resumematch/pkg/nlp"
	"github.com/artem13815/resumematch/pkg/resume"
	"github.com/artem13815/resumematch/pkg/skill"
	"github.com/artem13815/resumematch/pkg/vacancy"
)

// ScoreTexts runs the whole pipeline over a resume and a JD held in memory.
// Nothing is stored and no explainer runs.
func ScoreTexts(resumeText, jdText string, headers nlp.HeaderConfig, vocab skill.Vocabulary) (Report, error) {
	parsed, extracted := resume.Process(uuid.Nil, resumeText, headers.ResumeSegmenter(), vocab)
	jd := vacancy.Process(vacancy.Vacancy{RawText: jdText}, headers.JDSegmenter(), vocab)

	in := BuildMatchInput(extracted, jd.Skills, parsed.ExperienceYears, jd.MinYearsExperience)
	if err := in.Validate(); err != nil {
		return Report{}, err
	}
	return BuildReport(matching.Evaluate(in)), nil
}
