package analysis

import (
	"github.com/artem13815/resumematch/pkg/matching"
	"github.com/artem13815/resumematch/pkg/skill"
)

// BuildReport lays an engine result out as a report. Recommendations start
// empty; only the explainer may fill them.
func BuildReport(res matching.Result) Report {
	return Report{
		OverallMatchScore: res.FinalScore,
		SkillAnalysis: SkillAnalysis{
			Matched:         names(res.SkillGap.Matched),
			MissingCritical: names(res.SkillGap.MissingCritical),
			MissingOptional: names(res.SkillGap.MissingOptional),
		},
		ExperienceAnalysis: ExperienceAnalysis{
			RequiredYears: res.Experience.RequiredYears,
			ActualYears:   res.Experience.ActualYears,
			Gap:           res.Experience.Gap,
		},
		Strengths:       orEmpty(res.Strengths),
		Risks:           orEmpty(res.Risks),
		Recommendations: []string{},
	}
}

// BuildMatchInput assembles the engine input from stored records.
func BuildMatchInput(resumeSkills []skill.Extracted, reqs []skill.Requirement, actualYears, requiredYears int) matching.MatchInput {
	in := matching.MatchInput{
		ResumeSkills:          make([]matching.SkillMatchInput, 0, len(resumeSkills)),
		JDSkills:              reqs,
		ResumeExperienceYears: actualYears,
		JDExperienceYears:     requiredYears,
	}
	for _, s := range resumeSkills {
		in.ResumeSkills = append(in.ResumeSkills, matching.SkillMatchInput{
			SkillID:    s.SkillID,
			SkillName:  s.SkillName,
			Confidence: s.Confidence,
		})
	}
	return in
}

func names(ms []matching.SkillMatch) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.SkillName)
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
