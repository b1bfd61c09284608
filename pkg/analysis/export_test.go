package analysis

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	resumeID := uuid.New()
	items := []Analysis{{
		ID:       uuid.New(),
		ResumeID: resumeID,
		Score:    0.57,
		Report: Report{
			SkillAnalysis: SkillAnalysis{
				Matched:         []string{"Python", "Kubernetes"},
				MissingCritical: []string{"Docker"},
				MissingOptional: []string{},
			},
			ExperienceAnalysis: ExperienceAnalysis{RequiredYears: 5, ActualYears: 3, Gap: -2},
			Risks:              []string{"Missing 1 Critical Skills (Docker)", "Experience Gap (-2 years)"},
		},
		CreatedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, items))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, []string{
		"2024-03-01 10:30:00",
		resumeID.String(),
		"0.57",
		"Python, Kubernetes",
		"Docker",
		"",
		"-2",
		"Missing 1 Critical Skills (Docker); Experience Gap (-2 years)",
	}, rows[1])
}

func TestExportXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
