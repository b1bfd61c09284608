package skill

import (
	"strings"

	"github.com/artem13815/resumematch/pkg/nlp"
)

// criticalSections hold mandatory demands; a skill mentioned only under
// nice_to_have is optional.
var criticalSections = []string{
	nlp.SectionRequirements,
	nlp.SectionResponsibilities,
	nlp.Uncategorized,
}

// ExtractRequirements classifies every vocabulary skill mentioned in a JD.
// Mentions in requirements, responsibilities or unlabelled text make the skill
// critical; mentions confined to nice_to_have make it optional. Output follows
// vocabulary order with one entry per skill.
func ExtractRequirements(sections nlp.Sections, vocab Vocabulary) []Requirement {
	critical := lowerAll(sections, criticalSections...)
	optional := strings.ToLower(sections.Get(nlp.SectionNiceToHave))

	var out []Requirement
	for _, sk := range vocab.entries {
		needle := strings.ToLower(sk.Name)
		switch {
		case containsAny(critical, needle):
			out = append(out, Requirement{SkillID: sk.ID, SkillName: sk.Name, Importance: ImportanceCritical})
		case strings.Contains(optional, needle):
			out = append(out, Requirement{SkillID: sk.ID, SkillName: sk.Name, Importance: ImportanceOptional})
		}
	}
	return out
}

func lowerAll(sections nlp.Sections, names ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if t := sections.Get(n); t != "" {
			out = append(out, strings.ToLower(t))
		}
	}
	return out
}

func containsAny(texts []string, needle string) bool {
	for _, t := range texts {
		if strings.Contains(t, needle) {
			return true
		}
	}
	return false
}
