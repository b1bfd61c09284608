package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artem13815/resumematch/pkg/nlp"
)

func TestExtractRequirements(t *testing.T) {
	sections := nlp.Sections{
		nlp.SectionResponsibilities: "ship docker images",
		nlp.SectionRequirements:     "3+ years of python",
		nlp.SectionNiceToHave:       "kubernetes, python",
		nlp.Uncategorized:           "",
	}

	got := ExtractRequirements(sections, testVocab)

	assert.Equal(t, []Requirement{
		{SkillID: 1, SkillName: "Python", Importance: ImportanceCritical},
		{SkillID: 2, SkillName: "Docker", Importance: ImportanceCritical},
		{SkillID: 4, SkillName: "Kubernetes", Importance: ImportanceOptional},
	}, got)
}

func TestExtractRequirementsUncategorizedIsCritical(t *testing.T) {
	got := ExtractRequirements(nlp.Sections{nlp.Uncategorized: "we use SQL everywhere"}, testVocab)

	assert.Equal(t, []Requirement{{SkillID: 3, SkillName: "SQL", Importance: ImportanceCritical}}, got)
}

func TestExtractRequirementsNone(t *testing.T) {
	assert.Empty(t, ExtractRequirements(nlp.Sections{nlp.Uncategorized: "friendly team"}, testVocab))
	assert.Empty(t, ExtractRequirements(nlp.Sections{}, testVocab))
}
