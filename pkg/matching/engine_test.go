package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumematch/pkg/skill"
)

func crit(id int64, name string) skill.Requirement {
	return skill.Requirement{SkillID: id, SkillName: name, Importance: skill.ImportanceCritical}
}

func opt(id int64, name string) skill.Requirement {
	return skill.Requirement{SkillID: id, SkillName: name, Importance: skill.ImportanceOptional}
}

func TestEvaluateSkillGap(t *testing.T) {
	in := MatchInput{
		ResumeSkills: []SkillMatchInput{
			{SkillID: 1, SkillName: "Python", Confidence: 0.9},
			{SkillID: 3, SkillName: "SQL", Confidence: 0.59},
			{SkillID: 4, SkillName: "Go", Confidence: 0.6},
		},
		JDSkills: []skill.Requirement{crit(1, "Python"), opt(2, "Docker"), crit(3, "SQL"), opt(4, "Go")},
	}

	gap := EvaluateSkillGap(in)

	assert.Equal(t, []SkillMatch{
		{SkillID: 1, SkillName: "Python", Importance: skill.ImportanceCritical, ResumeConfidence: 0.9},
		{SkillID: 4, SkillName: "Go", Importance: skill.ImportanceOptional, ResumeConfidence: 0.6},
	}, gap.Matched)
	assert.Equal(t, []SkillMatch{{SkillID: 3, SkillName: "SQL", Importance: skill.ImportanceCritical}}, gap.MissingCritical)
	assert.Equal(t, []SkillMatch{{SkillID: 2, SkillName: "Docker", Importance: skill.ImportanceOptional}}, gap.MissingOptional)
	assert.Len(t, gap.Matched, 2)
	assert.Equal(t, len(in.JDSkills), len(gap.Matched)+len(gap.MissingCritical)+len(gap.MissingOptional))
}

func TestSkillScore(t *testing.T) {
	t.Run("weighted ratio", func(t *testing.T) {
		gap := EvaluateSkillGap(MatchInput{
			ResumeSkills: []SkillMatchInput{{SkillID: 1, Confidence: 0.9}},
			JDSkills:     []skill.Requirement{crit(1, "Python"), opt(2, "Docker")},
		})

		assert.Equal(t, 0.67, SkillScore(gap))
		assert.Empty(t, gap.MissingCritical)
		require.Len(t, gap.MissingOptional, 1)
		assert.Equal(t, int64(2), gap.MissingOptional[0].SkillID)
	})

	t.Run("no requirements scores zero", func(t *testing.T) {
		gap := EvaluateSkillGap(MatchInput{
			ResumeSkills: []SkillMatchInput{{SkillID: 1, Confidence: 1}},
		})
		assert.Zero(t, SkillScore(gap))
	})

	t.Run("all matched", func(t *testing.T) {
		gap := EvaluateSkillGap(MatchInput{
			ResumeSkills: []SkillMatchInput{{SkillID: 1, Confidence: 1}, {SkillID: 2, Confidence: 0.7}},
			JDSkills:     []skill.Requirement{crit(1, "Python"), opt(2, "Docker")},
		})
		assert.Equal(t, 1.0, SkillScore(gap))
	})
}

func TestExperienceMatch(t *testing.T) {
	tests := []struct {
		name             string
		actual, required int
		want             ExperienceResult
	}{
		{"surplus", 5, 3, ExperienceResult{3, 5, 2, StatusSufficient, 1.0}},
		{"exact", 3, 3, ExperienceResult{3, 3, 0, StatusSufficient, 1.0}},
		{"one year short", 2, 3, ExperienceResult{3, 2, -1, StatusDeficit, 1.0}},
		{"two years short", 2, 4, ExperienceResult{4, 2, -2, StatusDeficit, 0.85}},
		{"unspecified requirement", 0, 0, ExperienceResult{0, 0, 0, StatusSufficient, 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExperienceMatch(tt.actual, tt.required))
		})
	}
}

func TestExperienceScoreTiers(t *testing.T) {
	assert.Equal(t, 1.0, ExperienceScore(NoPenalty))
	assert.Equal(t, 0.5, ExperienceScore(PenaltyFactor))
	assert.Equal(t, 0.8, ExperienceScore(0.95))
	assert.Equal(t, 0.8, ExperienceScore(0.5))

	exp := ExperienceMatch(2, 4)
	assert.Equal(t, 0.5, ExperienceScore(exp.PenaltyFactor))
}

func TestFinalScore(t *testing.T) {
	assert.Equal(t, 0.65, FinalScore(0.5, 1.0))
	assert.Equal(t, 1.0, FinalScore(1.0, 1.0))
	assert.Equal(t, 0.15, FinalScore(0, 0.5))
	assert.Equal(t, 0.71, FinalScore(0.67, 0.8))
}

func TestRiskFlags(t *testing.T) {
	t.Run("missing critical names at most three", func(t *testing.T) {
		gap := EvaluateSkillGap(MatchInput{
			JDSkills: []skill.Requirement{crit(1, "A"), crit(2, "B"), crit(3, "C"), crit(4, "D")},
		})
		risks := RiskFlags(gap, ExperienceMatch(3, 3))
		assert.Equal(t, []string{"Missing 4 Critical Skills (A, B, C)"}, risks)
	})

	t.Run("severe deficit excludes mild gap", func(t *testing.T) {
		risks := RiskFlags(EvaluateSkillGap(MatchInput{}), ExperienceMatch(1, 4))
		assert.Equal(t, []string{"Severe Experience Deficit (-3 years)"}, risks)
	})

	t.Run("mild gap", func(t *testing.T) {
		risks := RiskFlags(EvaluateSkillGap(MatchInput{}), ExperienceMatch(2, 4))
		assert.Equal(t, []string{"Experience Gap (-2 years)"}, risks)
	})

	t.Run("low confidence critical match", func(t *testing.T) {
		gap := EvaluateSkillGap(MatchInput{
			ResumeSkills: []SkillMatchInput{
				{SkillID: 1, Confidence: 0.65},
				{SkillID: 2, Confidence: 0.6},
				{SkillID: 3, Confidence: 0.7},
			},
			JDSkills: []skill.Requirement{crit(1, "Python"), opt(2, "Docker"), crit(3, "SQL")},
		})
		risks := RiskFlags(gap, ExperienceMatch(0, 0))
		assert.Equal(t, []string{"Low Confidence in Critical Skill: Python (0.65)"}, risks)
	})

	t.Run("clean", func(t *testing.T) {
		assert.Empty(t, RiskFlags(EvaluateSkillGap(MatchInput{}), ExperienceMatch(5, 1)))
	})
}

func TestEvaluateEndToEnd(t *testing.T) {
	in := MatchInput{
		ResumeSkills:          []SkillMatchInput{{SkillID: 1, SkillName: "Python", Confidence: 0.9}},
		JDSkills:              []skill.Requirement{crit(1, "Python"), crit(2, "Docker")},
		ResumeExperienceYears: 2,
		JDExperienceYears:     3,
	}
	require.NoError(t, in.Validate())

	res := Evaluate(in)

	assert.Equal(t, 0.5, res.SkillScore)
	assert.Equal(t, -1, res.Experience.Gap)
	assert.Equal(t, StatusDeficit, res.Experience.Status)
	assert.Equal(t, 1.0, res.Experience.PenaltyFactor)
	assert.Equal(t, 1.0, res.ExperienceScore)
	assert.Equal(t, 0.65, res.FinalScore)
	assert.Equal(t, []string{"Matched Critical Skill: Python"}, res.Strengths)
	require.NotEmpty(t, res.Risks)
	assert.Equal(t, "Missing 1 Critical Skills (Docker)", res.Risks[0])
	assert.Contains(t, res.Risks, "Experience Gap (-1 years)")
}

func TestEvaluateEmpty(t *testing.T) {
	res := Evaluate(MatchInput{})

	assert.Zero(t, res.SkillScore)
	assert.Equal(t, 0.3, res.FinalScore)
	assert.NotNil(t, res.SkillGap.Matched)
	assert.NotNil(t, res.Risks)
	assert.NotNil(t, res.Strengths)
}

func TestMatchInputValidate(t *testing.T) {
	tests := []struct {
		name string
		in   MatchInput
	}{
		{"negative resume years", MatchInput{ResumeExperienceYears: -1}},
		{"negative jd years", MatchInput{JDExperienceYears: -2}},
		{"confidence above one", MatchInput{ResumeSkills: []SkillMatchInput{{SkillID: 1, Confidence: 1.5}}}},
		{"negative confidence", MatchInput{ResumeSkills: []SkillMatchInput{{SkillID: 1, Confidence: -0.1}}}},
		{"unknown importance", MatchInput{JDSkills: []skill.Requirement{{SkillID: 1, Importance: "must"}}}},
		{"duplicate requirement", MatchInput{JDSkills: []skill.Requirement{crit(1, "A"), opt(1, "A")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.in.Validate(), ErrInvalidInput)
		})
	}

	assert.NoError(t, MatchInput{}.Validate())
}
