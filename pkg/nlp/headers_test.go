package nlp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHeaderConfig(t *testing.T) {
	cfg := DefaultHeaderConfig()

	assert.Equal(t, []string{SectionExperience, SectionSkills, SectionEducation, SectionProjects}, cfg.Resume.SectionNames())
	assert.Equal(t, []string{SectionResponsibilities, SectionRequirements, SectionNiceToHave}, cfg.JD.SectionNames())
	assert.Contains(t, cfg.JD[2].Synonyms, "nice to have")
}

func TestLoadHeaderConfigFile(t *testing.T) {
	content := `
resume:
  - section: experience
    synonyms: [career]
jd:
  - section: requirements
    synonyms: [must have]
`
	path := filepath.Join(t.TempDir(), "headers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadHeaderConfigFile(path)
	require.NoError(t, err)

	got := cfg.ResumeSegmenter().Detect("career\nacme")
	assert.Equal(t, "acme", got[SectionExperience])
	assert.Equal(t, "go", cfg.JDSegmenter().Detect("must have:\ngo")[SectionRequirements])
}

func TestLoadHeaderConfigFileEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadHeaderConfigFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultHeaderConfig(), cfg)
}

func TestLoadHeaderConfigRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"missing jd":          "resume:\n  - section: skills\n    synonyms: [skills]\n",
		"reserved section":    "resume:\n  - section: uncategorized\n    synonyms: [misc]\njd:\n  - section: requirements\n    synonyms: [req]\n",
		"missing section":     "resume:\n  - synonyms: [skills]\njd:\n  - section: requirements\n    synonyms: [req]\n",
		"malformed yaml text": "resume: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadHeaderConfig(strings.NewReader(content))
			assert.Error(t, err)
		})
	}
}
