package skill

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/artem13815/resumematch/pkg/nlp"
)

// Evidence weights per resume section: usage in experience or projects is
// stronger evidence than a bare listing in skills or a course in education.
var SectionWeights = map[string]float64{
	nlp.SectionExperience: 0.9,
	nlp.SectionProjects:   0.8,
	nlp.SectionSkills:     0.5,
	nlp.SectionEducation:  0.3,
	nlp.Uncategorized:     0.2,
}

const (
	// DefaultSectionWeight applies to section names missing from SectionWeights.
	DefaultSectionWeight = 0.2

	// ExperienceAndProjectsScore replaces the base score when a skill shows up
	// in both experience and projects.
	ExperienceAndProjectsScore = 0.9
	MultiSectionBoost          = 0.1
	FrequencyBoost             = 0.1
	// FrequencyThreshold is the total occurrence count (all sections) that
	// triggers FrequencyBoost for skills seen in experience.
	FrequencyThreshold = 3

	evidenceRadius = 40
)

// visit order of resume sections; evidence ties go to the first one seen.
var resumeSectionOrder = []string{
	nlp.SectionExperience,
	nlp.SectionSkills,
	nlp.SectionEducation,
	nlp.SectionProjects,
	nlp.Uncategorized,
}

// Weight returns the evidence weight of a section.
func Weight(section string) float64 {
	if w, ok := SectionWeights[section]; ok {
		return w
	}
	return DefaultSectionWeight
}

type evidence struct {
	name     string
	base     float64
	snippet  string
	sections []string
	count    int
}

func (e *evidence) in(section string) bool {
	for _, s := range e.sections {
		if s == section {
			return true
		}
	}
	return false
}

// Extract maps resume sections onto the vocabulary. A skill is present in a
// section when its lowercased canonical name is a substring of the lowercased
// section text. One record per distinct skill.
func Extract(sections nlp.Sections, vocab Vocabulary) map[int64]Extracted {
	found := make(map[int64]*evidence)

	for _, section := range sections.Names(resumeSectionOrder...) {
		text := sections[section]
		if text == "" {
			continue
		}
		weight := Weight(section)
		lower := strings.ToLower(text)
		var runes []rune

		for _, sk := range vocab.entries {
			needle := strings.ToLower(sk.Name)
			idx := strings.Index(lower, needle)
			if idx < 0 {
				continue
			}
			if runes == nil {
				runes = []rune(text)
			}
			snippet := evidenceSnippet(runes, lower, idx)

			e, ok := found[sk.ID]
			if !ok {
				e = &evidence{name: sk.Name, snippet: snippet}
				found[sk.ID] = e
			}
			e.sections = append(e.sections, section)
			e.count += strings.Count(lower, needle)
			if weight > e.base {
				e.base = weight
				e.snippet = snippet
			}
		}
	}

	out := make(map[int64]Extracted, len(found))
	for id, e := range found {
		out[id] = Extracted{
			SkillID:        id,
			SkillName:      e.name,
			Confidence:     confidence(e),
			Evidence:       e.snippet,
			SourceSections: e.sections,
		}
	}
	return out
}

func confidence(e *evidence) float64 {
	score := e.base
	inExperience := e.in(nlp.SectionExperience)

	if inExperience && e.in(nlp.SectionProjects) {
		score = ExperienceAndProjectsScore
	} else if len(e.sections) > 1 {
		score = math.Min(1.0, score+MultiSectionBoost)
	}
	if inExperience && e.count >= FrequencyThreshold {
		score = math.Min(1.0, score+FrequencyBoost)
	}
	return round2(score)
}

// evidenceSnippet cuts evidenceRadius runes on each side of the match start.
// runes is the original section text. strings.ToLower maps rune for rune, so
// rune offsets in lower and runes agree.
func evidenceSnippet(runes []rune, lower string, byteIdx int) string {
	at := utf8.RuneCountInString(lower[:byteIdx])
	start := max(0, at-evidenceRadius)
	end := min(len(runes), at+evidenceRadius)
	return "..." + strings.ReplaceAll(string(runes[start:end]), "\n", " ") + "..."
}

// Sorted flattens an extraction result ordered by confidence (desc) then name.
func Sorted(m map[int64]Extracted) []Extracted {
	out := make([]Extracted, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].SkillName < out[j].SkillName
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
