package resume

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumematch/pkg/nlp"
	"github.com/artem13815/resumematch/pkg/skill"
)

type memRepo struct {
	mu        sync.Mutex
	metas     map[uuid.UUID]Resume
	parsed    map[uuid.UUID]Parsed
	deleteErr error
}

func newMemRepo() *memRepo {
	return &memRepo{metas: map[uuid.UUID]Resume{}, parsed: map[uuid.UUID]Parsed{}}
}

func (m *memRepo) Create(_ context.Context, r Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metas[r.ID] = r
	return nil
}

func (m *memRepo) SaveParsed(_ context.Context, p Parsed) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parsed[p.ResumeID] = p
	return nil
}

func (m *memRepo) GetParsed(_ context.Context, id uuid.UUID) (Parsed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.parsed[id]
	if !ok {
		return Parsed{}, ErrNotFound
	}
	return p, nil
}

func (m *memRepo) GetMetaForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error) {
	r, err := m.GetMetaAny(ctx, id)
	if err != nil || r.OwnerID != ownerID {
		return Resume{}, ErrNotFound
	}
	return r, nil
}

func (m *memRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, _, _ int) ([]Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Resume
	for _, r := range m.metas {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) GetMetaAny(_ context.Context, id uuid.UUID) (Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.metas[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return r, nil
}

func (m *memRepo) ListAll(_ context.Context, _, _ int) ([]Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Resume, 0, len(m.metas))
	for _, r := range m.metas {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRepo) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error) {
	r, err := m.GetMetaForOwner(ctx, ownerID, id)
	if err != nil {
		return Resume{}, err
	}
	return m.DeleteAny(ctx, r.ID)
}

func (m *memRepo) DeleteAny(_ context.Context, id uuid.UUID) (Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return Resume{}, m.deleteErr
	}
	r, ok := m.metas[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	delete(m.metas, id)
	delete(m.parsed, id)
	return r, nil
}

type memSkills struct {
	byResume map[uuid.UUID][]skill.Extracted
	replaced int
}

func (m *memSkills) ListVocabulary(context.Context) ([]skill.Skill, error) { return nil, nil }

func (m *memSkills) InsertMissing(context.Context, []skill.Skill) (int, error) { return 0, nil }

func (m *memSkills) ReplaceResumeSkills(_ context.Context, id uuid.UUID, s []skill.Extracted) error {
	m.byResume[id] = s
	m.replaced++
	return nil
}

func (m *memSkills) ListResumeSkills(_ context.Context, id uuid.UUID) ([]skill.Extracted, error) {
	return m.byResume[id], nil
}

type staticVocab struct{ v skill.Vocabulary }

// flakyVocab fails its first n calls.
type flakyVocab struct {
	v     skill.Vocabulary
	fails int
}

func (f *flakyVocab) Vocabulary(context.Context) (skill.Vocabulary, error) {
	if f.fails > 0 {
		f.fails--
		return skill.Vocabulary{}, errors.New("db hiccup")
	}
	return f.v, nil
}

func (s staticVocab) Vocabulary(context.Context) (skill.Vocabulary, error) { return s.v, nil }

type memFiles struct{ files map[string][]byte }

func (m *memFiles) Save(_ context.Context, name string, data []byte) (string, error) {
	m.files[name] = data
	return name, nil
}

func (m *memFiles) Remove(_ context.Context, uri string) error {
	delete(m.files, uri)
	return nil
}

type fixture struct {
	svc    UseCase
	repo   *memRepo
	skills *memSkills
	files  *memFiles
}

func newFixture() fixture {
	f := fixture{
		repo:   newMemRepo(),
		skills: &memSkills{byResume: map[uuid.UUID][]skill.Extracted{}},
		files:  &memFiles{files: map[string][]byte{}},
	}
	vocab := staticVocab{skill.NewVocabulary([]skill.Skill{
		{ID: 1, Name: "Python", Category: skill.CategoryLanguage},
		{ID: 2, Name: "Docker", Category: skill.CategoryTool},
		{ID: 3, Name: "Kafka", Category: skill.CategoryTool},
	})}
	f.svc = NewService(f.repo, f.skills, vocab, f.files, nlp.DefaultHeaderConfig().ResumeSegmenter(), nil)
	return f
}

const sampleCV = `Jane Doe

EXPERIENCE
Backend engineer, 4 years
Python services on Docker

Projects
Python scraper

Skills
Docker`

func TestIngest(t *testing.T) {
	f := newFixture()
	owner := uuid.New()

	got, err := f.svc.Ingest(context.Background(), Upload{OwnerID: owner, Filename: "cv.txt", MimeType: "text/plain", Data: []byte(sampleCV)})
	require.NoError(t, err)

	assert.Equal(t, owner, got.Resume.OwnerID)
	assert.Equal(t, int64(len(sampleCV)), got.Resume.Size)
	assert.Contains(t, f.files.files, got.Resume.StorageURI)
	assert.Equal(t, 4, got.Parsed.ExperienceYears)
	assert.Equal(t, "python scraper", got.Parsed.Sections[nlp.SectionProjects])
	assert.Equal(t, sampleCV, got.Parsed.RawText)

	require.Len(t, got.Skills, 2)
	assert.Equal(t, "Docker", got.Skills[0].SkillName)
	assert.Equal(t, 1.0, got.Skills[0].Confidence)
	assert.Equal(t, "Python", got.Skills[1].SkillName)
	assert.Equal(t, 0.9, got.Skills[1].Confidence)
	assert.Equal(t, []string{nlp.SectionExperience, nlp.SectionProjects}, got.Skills[1].SourceSections)
	assert.Equal(t, got.Skills, f.skills.byResume[got.Resume.ID])
}

func TestIngestRejects(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Ingest(context.Background(), Upload{Filename: "cv.odt", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = f.svc.Ingest(context.Background(), Upload{Filename: "cv.txt", Data: []byte(" \n\t")})
	assert.ErrorIs(t, err, ErrEmptyText)

	assert.Empty(t, f.repo.metas)
	assert.Empty(t, f.files.files)
}

func TestReprocessReplacesSkills(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	ctx := context.Background()

	got, err := f.svc.Ingest(ctx, Upload{OwnerID: owner, Filename: "cv.txt", Data: []byte(sampleCV)})
	require.NoError(t, err)

	f.skills.byResume[got.Resume.ID] = append(f.skills.byResume[got.Resume.ID], skill.Extracted{SkillID: 3, SkillName: "Kafka"})

	again, err := f.svc.Reprocess(ctx, owner, false, got.Resume.ID)
	require.NoError(t, err)

	assert.Equal(t, got.Skills, again.Skills)
	assert.Equal(t, got.Skills, f.skills.byResume[got.Resume.ID])
	assert.Equal(t, 2, f.skills.replaced)
}

func TestOwnerScoping(t *testing.T) {
	f := newFixture()
	owner, stranger := uuid.New(), uuid.New()
	ctx := context.Background()

	got, err := f.svc.Ingest(ctx, Upload{OwnerID: owner, Filename: "cv.txt", Data: []byte(sampleCV)})
	require.NoError(t, err)
	id := got.Resume.ID

	_, err = f.svc.Get(ctx, stranger, false, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Skills(ctx, stranger, false, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Reprocess(ctx, stranger, false, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, stranger, false, id), ErrNotFound)

	d, err := f.svc.Get(ctx, stranger, true, id)
	require.NoError(t, err)
	assert.Len(t, d.Skills, 2)

	list, err := f.svc.List(ctx, stranger, false, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, f.svc.Delete(ctx, owner, false, id))
	assert.Empty(t, f.files.files)
	_, err = f.svc.Get(ctx, owner, false, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProcessIsDeterministic(t *testing.T) {
	seg := nlp.DefaultHeaderConfig().ResumeSegmenter()
	vocab := skill.NewVocabulary([]skill.Skill{{ID: 1, Name: "Python"}})
	id := uuid.New()

	p1, s1 := Process(id, sampleCV, seg, vocab)
	p2, s2 := Process(id, sampleCV, seg, vocab)

	assert.Equal(t, p1, p2)
	assert.Equal(t, s1, s2)
}

func TestIngestFailureLeavesNothingBehind(t *testing.T) {
	f := newFixture()
	vocab := &flakyVocab{v: skill.NewVocabulary([]skill.Skill{{ID: 1, Name: "Python"}}), fails: 1}
	f.svc = NewService(f.repo, f.skills, vocab, f.files, nlp.DefaultHeaderConfig().ResumeSegmenter(), nil)
	owner := uuid.New()
	ctx := context.Background()

	_, err := f.svc.Ingest(ctx, Upload{OwnerID: owner, Filename: "cv.txt", Data: []byte(sampleCV)})
	require.Error(t, err)

	list, err := f.svc.List(ctx, owner, false, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.repo.parsed)
	assert.Empty(t, f.files.files)

	got, err := f.svc.Ingest(ctx, Upload{OwnerID: owner, Filename: "cv.txt", Data: []byte(sampleCV)})
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, owner, false, got.Resume.ID)
	assert.NoError(t, err)
}

func TestDeleteInUseKeepsFile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	got, err := f.svc.Ingest(ctx, Upload{Filename: "cv.txt", Data: []byte(sampleCV)})
	require.NoError(t, err)

	f.repo.deleteErr = ErrInUse
	assert.ErrorIs(t, f.svc.Delete(ctx, uuid.Nil, true, got.Resume.ID), ErrInUse)
	assert.Contains(t, f.files.files, got.Resume.StorageURI)
}
