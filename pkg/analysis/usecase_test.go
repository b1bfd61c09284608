package analysis

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/artem13815/resumematch/pkg/resume"
	"github.com/artem13815/resumematch/pkg/skill"
	"github.com/artem13815/resumematch/pkg/vacancy"
)

type memAnalyses struct{ items []Analysis }

func (m *memAnalyses) Create(_ context.Context, a Analysis) error {
	m.items = append(m.items, a)
	return nil
}

func (m *memAnalyses) filter(keep func(Analysis) bool) []Analysis {
	out := []Analysis{}
	for _, a := range m.items {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func page(items []Analysis, limit, offset int) []Analysis {
	if offset >= len(items) {
		return []Analysis{}
	}
	return items[offset:min(len(items), offset+limit)]
}

func (m *memAnalyses) GetByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (Analysis, error) {
	for _, a := range m.items {
		if a.ID == id && a.OwnerID == ownerID {
			return a, nil
		}
	}
	return Analysis{}, ErrNotFound
}

func (m *memAnalyses) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]Analysis, error) {
	return page(m.filter(func(a Analysis) bool { return a.OwnerID == ownerID }), limit, offset), nil
}

func (m *memAnalyses) ListByVacancyForOwner(_ context.Context, ownerID, vacancyID uuid.UUID, limit, offset int) ([]Analysis, error) {
	return page(m.filter(func(a Analysis) bool { return a.OwnerID == ownerID && a.VacancyID == vacancyID }), limit, offset), nil
}

func (m *memAnalyses) GetByIDAny(_ context.Context, id uuid.UUID) (Analysis, error) {
	for _, a := range m.items {
		if a.ID == id {
			return a, nil
		}
	}
	return Analysis{}, ErrNotFound
}

func (m *memAnalyses) ListAll(_ context.Context, limit, offset int) ([]Analysis, error) {
	return page(m.items, limit, offset), nil
}

func (m *memAnalyses) ListByVacancyAny(_ context.Context, vacancyID uuid.UUID, limit, offset int) ([]Analysis, error) {
	return page(m.filter(func(a Analysis) bool { return a.VacancyID == vacancyID }), limit, offset), nil
}

// memResumes implements resume.Repository for a fixed set of records.
type memResumes struct {
	metas  map[uuid.UUID]resume.Resume
	parsed map[uuid.UUID]resume.Parsed
}

func (m *memResumes) Create(context.Context, resume.Resume) error        { return nil }
func (m *memResumes) SaveParsed(context.Context, resume.Parsed) error    { return nil }

func (m *memResumes) ListAll(context.Context, int, int) ([]resume.Resume, error) { return nil, nil }
func (m *memResumes) ListByOwner(context.Context, uuid.UUID, int, int) ([]resume.Resume, error) {
	return nil, nil
}

func (m *memResumes) GetParsed(_ context.Context, id uuid.UUID) (resume.Parsed, error) {
	p, ok := m.parsed[id]
	if !ok {
		return resume.Parsed{}, resume.ErrNotFound
	}
	return p, nil
}

func (m *memResumes) GetMetaAny(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	r, ok := m.metas[id]
	if !ok {
		return resume.Resume{}, resume.ErrNotFound
	}
	return r, nil
}

func (m *memResumes) GetMetaForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	r, err := m.GetMetaAny(ctx, id)
	if err != nil || r.OwnerID != ownerID {
		return resume.Resume{}, resume.ErrNotFound
	}
	return r, nil
}

func (m *memResumes) DeleteForOwner(context.Context, uuid.UUID, uuid.UUID) (resume.Resume, error) {
	return resume.Resume{}, resume.ErrNotFound
}

func (m *memResumes) DeleteAny(context.Context, uuid.UUID) (resume.Resume, error) {
	return resume.Resume{}, resume.ErrNotFound
}

type memSkills struct{ byResume map[uuid.UUID][]skill.Extracted }

func (m *memSkills) ListVocabulary(context.Context) ([]skill.Skill, error) { return nil, nil }

func (m *memSkills) InsertMissing(context.Context, []skill.Skill) (int, error) { return 0, nil }
func (m *memSkills) ReplaceResumeSkills(context.Context, uuid.UUID, []skill.Extracted) error { return nil }
func (m *memSkills) ListResumeSkills(_ context.Context, id uuid.UUID) ([]skill.Extracted, error) {
	return m.byResume[id], nil
}

type memVacancies struct{ items map[uuid.UUID]vacancy.Vacancy }

func (m *memVacancies) Create(context.Context, vacancy.Vacancy) error        { return nil }
func (m *memVacancies) UpdateDerived(context.Context, vacancy.Vacancy) error { return nil }
func (m *memVacancies) ListByOwner(context.Context, uuid.UUID, int, int) ([]vacancy.Vacancy, error) {
	return nil, nil
}
func (m *memVacancies) ListAll(context.Context, int, int) ([]vacancy.Vacancy, error) { return nil, nil }
func (m *memVacancies) DeleteForOwner(context.Context, uuid.UUID, uuid.UUID) error  { return nil }
func (m *memVacancies) DeleteAny(context.Context, uuid.UUID) error                   { return nil }

func (m *memVacancies) GetByIDAny(_ context.Context, id uuid.UUID) (vacancy.Vacancy, error) {
	v, ok := m.items[id]
	if !ok {
		return vacancy.Vacancy{}, vacancy.ErrNotFound
	}
	return v, nil
}

func (m *memVacancies) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (vacancy.Vacancy, error) {
	v, err := m.GetByIDAny(ctx, id)
	if err != nil || v.OwnerID != ownerID {
		return vacancy.Vacancy{}, vacancy.ErrNotFound
	}
	return v, nil
}

type stubExplainer struct {
	recs []string
	err  error
	got  Report
}

func (s *stubExplainer) Recommend(_ context.Context, rep Report) ([]string, error) {
	s.got = rep
	return s.recs, s.err
}

func (s *stubExplainer) Model() string { return "stub" }

type fixture struct {
	repo      *memAnalyses
	resumes   *memResumes
	vacancies *memVacancies
	owner     uuid.UUID
	resumeID  uuid.UUID
	vacancyID uuid.UUID
}

func newFixture() fixture {
	f := fixture{
		repo:      &memAnalyses{},
		owner:     uuid.New(),
		resumeID:  uuid.New(),
		vacancyID: uuid.New(),
	}
	f.resumes = &memResumes{
		metas:  map[uuid.UUID]resume.Resume{f.resumeID: {ID: f.resumeID, OwnerID: f.owner}},
		parsed: map[uuid.UUID]resume.Parsed{f.resumeID: {ResumeID: f.resumeID, ExperienceYears: 3}},
	}
	f.vacancies = &memVacancies{items: map[uuid.UUID]vacancy.Vacancy{f.vacancyID: {
		ID:                 f.vacancyID,
		OwnerID:            f.owner,
		MinYearsExperience: 5,
		Skills: []skill.Requirement{
			{SkillID: 1, SkillName: "Python", Importance: skill.ImportanceCritical},
			{SkillID: 2, SkillName: "Docker", Importance: skill.ImportanceCritical},
			{SkillID: 3, SkillName: "Kubernetes", Importance: skill.ImportanceOptional},
		},
	}}}
	return f
}

func (f fixture) service(ex Explainer) UseCase {
	skills := &memSkills{byResume: map[uuid.UUID][]skill.Extracted{f.resumeID: {
		{SkillID: 1, SkillName: "Python", Confidence: 0.9},
		{SkillID: 3, SkillName: "Kubernetes", Confidence: 0.6},
		{SkillID: 2, SkillName: "Docker", Confidence: 0.3},
	}}}
	return NewService(f.repo, f.resumes, skills, f.vacancies, ex, nil)
}

func TestCreateScoresAndPersists(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)

	a, err := svc.Create(context.Background(), f.owner, false, f.resumeID, f.vacancyID)
	require.NoError(t, err)

	assert.Equal(t, 0.57, a.Score)
	assert.Equal(t, a.Score, a.Report.OverallMatchScore)
	assert.Empty(t, a.Model)
	assert.Equal(t, []string{"Matched Critical Skill: Python"}, a.Report.Strengths)
	assert.Equal(t, []string{"Missing 1 Critical Skills (Docker)", "Experience Gap (-2 years)"}, a.Report.Risks)
	assert.Equal(t, ExperienceAnalysis{RequiredYears: 5, ActualYears: 3, Gap: -2}, a.Report.ExperienceAnalysis)
	assert.Equal(t, []string{"Python", "Kubernetes"}, a.Report.SkillAnalysis.Matched)
	assert.Empty(t, a.Report.Recommendations)
	require.Len(t, f.repo.items, 1)
	assert.Equal(t, a, f.repo.items[0])
}

func TestCreateAppendsSnapshots(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)
	ctx := context.Background()

	a1, err := svc.Create(ctx, f.owner, false, f.resumeID, f.vacancyID)
	require.NoError(t, err)
	a2, err := svc.Create(ctx, f.owner, false, f.resumeID, f.vacancyID)
	require.NoError(t, err)

	assert.NotEqual(t, a1.ID, a2.ID)
	assert.Equal(t, a1.Report, a2.Report)
	assert.Len(t, f.repo.items, 2)
}

func TestCreateAccess(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)
	ctx := context.Background()
	stranger := uuid.New()

	_, err := svc.Create(ctx, stranger, false, f.resumeID, f.vacancyID)
	assert.ErrorIs(t, err, vacancy.ErrNotFound)

	_, err = svc.Create(ctx, f.owner, false, uuid.New(), f.vacancyID)
	assert.ErrorIs(t, err, resume.ErrNotFound)
	assert.Empty(t, f.repo.items)

	a, err := svc.Create(ctx, stranger, true, f.resumeID, f.vacancyID)
	require.NoError(t, err)
	assert.Equal(t, f.owner, a.OwnerID)
}

func TestCreateWithExplainer(t *testing.T) {
	f := newFixture()
	ex := &stubExplainer{recs: []string{"Get hands-on with Docker"}}
	a, err := f.service(ex).Create(context.Background(), f.owner, false, f.resumeID, f.vacancyID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Get hands-on with Docker"}, a.Report.Recommendations)
	assert.Equal(t, "stub", a.Model)
	assert.Equal(t, 0.57, a.Score)
	assert.Equal(t, a.Report.Risks, ex.got.Risks)
}

func TestCreateExplainerFailureKeepsReport(t *testing.T) {
	f := newFixture()
	a, err := f.service(&stubExplainer{err: errors.New("rate limited")}).
		Create(context.Background(), f.owner, false, f.resumeID, f.vacancyID)
	require.NoError(t, err)

	assert.Equal(t, []string{}, a.Report.Recommendations)
	assert.Empty(t, a.Model)
	assert.Equal(t, 0.57, a.Score)
}

func TestListByVacancyScoping(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, f.owner, false, f.resumeID, f.vacancyID)
	require.NoError(t, err)

	list, err := svc.ListByVacancy(ctx, f.owner, false, f.vacancyID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListByVacancy(ctx, uuid.New(), false, f.vacancyID, 10, 0)
	assert.ErrorIs(t, err, vacancy.ErrNotFound)

	got, err := svc.Get(ctx, f.owner, false, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, list[0], got)
	_, err = svc.Get(ctx, uuid.New(), false, list[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportVacancy(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, f.owner, false, f.resumeID, f.vacancyID)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportVacancy(ctx, f.owner, false, f.vacancyID, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}
