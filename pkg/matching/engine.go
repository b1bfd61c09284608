package matching

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/artem13815/resumematch/pkg/skill"
)

// EvaluateSkillGap classifies every JD requirement exactly once. Resume
// skills under MinConfidence do not count as present.
func EvaluateSkillGap(in MatchInput) SkillGap {
	valid := make(map[int64]float64, len(in.ResumeSkills))
	for _, s := range in.ResumeSkills {
		if s.Confidence >= MinConfidence {
			valid[s.SkillID] = s.Confidence
		}
	}

	gap := SkillGap{
		Matched:         []SkillMatch{},
		MissingCritical: []SkillMatch{},
		MissingOptional: []SkillMatch{},
	}
	for _, req := range in.JDSkills {
		m := SkillMatch{SkillID: req.SkillID, SkillName: req.SkillName, Importance: req.Importance}
		if conf, ok := valid[req.SkillID]; ok {
			m.ResumeConfidence = conf
			gap.Matched = append(gap.Matched, m)
			continue
		}
		if req.Importance == skill.ImportanceCritical {
			gap.MissingCritical = append(gap.MissingCritical, m)
		} else {
			gap.MissingOptional = append(gap.MissingOptional, m)
		}
	}
	return gap
}

// SkillScore is the weighted share of requirements met. A JD without
// requirements scores 0.
func SkillScore(gap SkillGap) float64 {
	var matchedCrit, matchedOpt int
	for _, m := range gap.Matched {
		if m.Importance == skill.ImportanceCritical {
			matchedCrit++
		} else {
			matchedOpt++
		}
	}
	totalCrit := matchedCrit + len(gap.MissingCritical)
	totalOpt := matchedOpt + len(gap.MissingOptional)

	den := float64(totalCrit)*CriticalWeight + float64(totalOpt)*OptionalWeight
	if den == 0 {
		return 0
	}
	num := float64(matchedCrit)*CriticalWeight + float64(matchedOpt)*OptionalWeight
	return round2(num / den)
}

// ExperienceMatch compares actual and required years.
func ExperienceMatch(actualYears, requiredYears int) ExperienceResult {
	gap := actualYears - requiredYears
	res := ExperienceResult{
		RequiredYears: requiredYears,
		ActualYears:   actualYears,
		Gap:           gap,
		Status:        StatusSufficient,
		PenaltyFactor: NoPenalty,
	}
	if gap < 0 {
		res.Status = StatusDeficit
	}
	if gap < DeficitPenaltyGap {
		res.PenaltyFactor = PenaltyFactor
	}
	return res
}

// ExperienceScore turns a penalty factor into the experience component.
func ExperienceScore(penalty float64) float64 {
	if s, ok := experienceScores[penalty]; ok {
		return s
	}
	if penalty < NoPenalty {
		return partialPenaltyScore
	}
	return experienceScores[NoPenalty]
}

// FinalScore blends the skill and experience components.
func FinalScore(skillScore, experienceScore float64) float64 {
	return round2(skillScore*SkillShare + experienceScore*ExperienceShare)
}

// RiskFlags lists human-readable reasons a candidate may be rejected, in a
// fixed order: missing critical skills, experience, weak critical evidence.
func RiskFlags(gap SkillGap, exp ExperienceResult) []string {
	risks := []string{}

	if n := len(gap.MissingCritical); n > 0 {
		names := make([]string, 0, MaxNamedMissing)
		for _, m := range gap.MissingCritical[:min(n, MaxNamedMissing)] {
			names = append(names, m.SkillName)
		}
		risks = append(risks, fmt.Sprintf("Missing %d Critical Skills (%s)", n, strings.Join(names, ", ")))
	}

	switch {
	case exp.Gap < SevereDeficitGap:
		risks = append(risks, fmt.Sprintf("Severe Experience Deficit (%d years)", exp.Gap))
	case exp.Gap < 0:
		risks = append(risks, fmt.Sprintf("Experience Gap (%d years)", exp.Gap))
	}

	for _, m := range gap.Matched {
		if m.Importance == skill.ImportanceCritical && m.ResumeConfidence < LowConfidence {
			risks = append(risks, fmt.Sprintf("Low Confidence in Critical Skill: %s (%s)",
				m.SkillName, strconv.FormatFloat(m.ResumeConfidence, 'f', -1, 64)))
		}
	}
	return risks
}

// Strengths names every matched critical skill.
func Strengths(gap SkillGap) []string {
	out := []string{}
	for _, m := range gap.Matched {
		if m.Importance == skill.ImportanceCritical {
			out = append(out, "Matched Critical Skill: "+m.SkillName)
		}
	}
	return out
}

// Evaluate runs the whole engine.
func Evaluate(in MatchInput) Result {
	gap := EvaluateSkillGap(in)
	skillScore := SkillScore(gap)
	exp := ExperienceMatch(in.ResumeExperienceYears, in.JDExperienceYears)
	expScore := ExperienceScore(exp.PenaltyFactor)

	return Result{
		SkillGap:        gap,
		SkillScore:      skillScore,
		Experience:      exp,
		ExperienceScore: expScore,
		FinalScore:      FinalScore(skillScore, expScore),
		Strengths:       Strengths(gap),
		Risks:           RiskFlags(gap, exp),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
