package resume

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artem13815/resumematch/pkg/logger"
	"github.com/artem13815/resumematch/pkg/nlp"
	"github.com/artem13815/resumematch/pkg/skill"
)

// Upload is an incoming resume file.
type Upload struct {
	OwnerID  uuid.UUID
	Filename string
	MimeType string
	Data     []byte
}

// Details is a resume with its derived record and skills.
type Details struct {
	Resume Resume            `json:"meta"`
	Parsed Parsed            `json:"parsed"`
	Skills []skill.Extracted `json:"skills"`
}

// UseCase covers resume ingestion and access. Non-admin actors only see their own resumes.
type UseCase interface {
	Ingest(ctx context.Context, up Upload) (Details, error)
	// Reprocess recomputes every derived artefact from the stored raw text.
	Reprocess(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Details, error)
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Details, error)
	List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Resume, error)
	Skills(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) ([]skill.Extracted, error)
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
}

type service struct {
	repo   Repository
	skills skill.Repository
	vocab  skill.VocabularyProvider
	files  FileStore
	seg    *nlp.Segmenter
	log    *zerolog.Logger
}

func NewService(repo Repository, skills skill.Repository, vocab skill.VocabularyProvider, files FileStore, seg *nlp.Segmenter, log *zerolog.Logger) UseCase {
	return &service{
		repo:   repo,
		skills: skills,
		vocab:  vocab,
		files:  files,
		seg:    seg,
		log:    logger.OrNop(log),
	}
}

func (s *service) Ingest(ctx context.Context, up Upload) (Details, error) {
	if !SupportedExt(up.Filename) {
		return Details{}, ErrUnsupportedFormat
	}
	raw, err := ParseText(up.Filename, up.Data)
	if err != nil {
		return Details{}, fmt.Errorf("parse resume: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return Details{}, ErrEmptyText
	}

	meta := Resume{
		ID:        uuid.New(),
		OwnerID:   up.OwnerID,
		Filename:  up.Filename,
		MimeType:  up.MimeType,
		Size:      int64(len(up.Data)),
		CreatedAt: time.Now().UTC(),
	}
	uri, err := s.files.Save(ctx, meta.ID.String()+strings.ToLower(filepath.Ext(up.Filename)), up.Data)
	if err != nil {
		return Details{}, err
	}
	meta.StorageURI = uri
	if err := s.repo.Create(ctx, meta); err != nil {
		_ = s.files.Remove(ctx, uri)
		return Details{}, fmt.Errorf("save resume: %w", err)
	}

	parsed, skills, err := s.process(ctx, meta.ID, raw)
	if err != nil {
		s.discard(ctx, meta)
		return Details{}, err
	}
	s.log.Info().Str("resume_id", meta.ID.String()).Int("skills", len(skills)).
		Int("years", parsed.ExperienceYears).Msg("resume ingested")
	return Details{Resume: meta, Parsed: parsed, Skills: skills}, nil
}

func (s *service) Reprocess(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Details, error) {
	meta, err := s.meta(ctx, actorID, isAdmin, id)
	if err != nil {
		return Details{}, err
	}
	prev, err := s.repo.GetParsed(ctx, id)
	if err != nil {
		return Details{}, err
	}
	if strings.TrimSpace(prev.RawText) == "" {
		return Details{}, ErrEmptyText
	}
	parsed, skills, err := s.process(ctx, id, prev.RawText)
	if err != nil {
		return Details{}, err
	}
	s.log.Info().Str("resume_id", id.String()).Int("skills", len(skills)).Msg("resume reprocessed")
	return Details{Resume: meta, Parsed: parsed, Skills: skills}, nil
}

// discard undoes a half-finished ingest. A resume row without a parsed
// record could never be read or reprocessed.
func (s *service) discard(ctx context.Context, meta Resume) {
	ctx = context.WithoutCancel(ctx)
	if _, err := s.repo.DeleteAny(ctx, meta.ID); err != nil {
		s.log.Error().Err(err).Str("resume_id", meta.ID.String()).Msg("failed to discard resume after ingest error")
	}
	if err := s.files.Remove(ctx, meta.StorageURI); err != nil {
		s.log.Warn().Err(err).Str("uri", meta.StorageURI).Msg("failed to remove resume file")
	}
}

// process derives and stores the parsed record and the skill set. Both are
// replaced wholesale.
func (s *service) process(ctx context.Context, id uuid.UUID, raw string) (Parsed, []skill.Extracted, error) {
	vocab, err := s.vocab.Vocabulary(ctx)
	if err != nil {
		return Parsed{}, nil, err
	}
	parsed, skills := Process(id, raw, s.seg, vocab)
	parsed.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveParsed(ctx, parsed); err != nil {
		return Parsed{}, nil, fmt.Errorf("save parsed resume: %w", err)
	}
	if err := s.skills.ReplaceResumeSkills(ctx, id, skills); err != nil {
		return Parsed{}, nil, fmt.Errorf("save resume skills: %w", err)
	}
	return parsed, skills, nil
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Details, error) {
	meta, err := s.meta(ctx, actorID, isAdmin, id)
	if err != nil {
		return Details{}, err
	}
	parsed, err := s.repo.GetParsed(ctx, id)
	if err != nil {
		return Details{}, err
	}
	skills, err := s.skills.ListResumeSkills(ctx, id)
	if err != nil {
		return Details{}, err
	}
	return Details{Resume: meta, Parsed: parsed, Skills: skills}, nil
}

func (s *service) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Resume, error) {
	if isAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByOwner(ctx, actorID, limit, offset)
}

func (s *service) Skills(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) ([]skill.Extracted, error) {
	if _, err := s.meta(ctx, actorID, isAdmin, id); err != nil {
		return nil, err
	}
	return s.skills.ListResumeSkills(ctx, id)
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	var (
		meta Resume
		err  error
	)
	if isAdmin {
		meta, err = s.repo.DeleteAny(ctx, id)
	} else {
		meta, err = s.repo.DeleteForOwner(ctx, actorID, id)
	}
	if err != nil {
		return err
	}
	if err := s.files.Remove(ctx, meta.StorageURI); err != nil {
		s.log.Warn().Err(err).Str("uri", meta.StorageURI).Msg("failed to remove resume file")
	}
	return nil
}

func (s *service) meta(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Resume, error) {
	if isAdmin {
		return s.repo.GetMetaAny(ctx, id)
	}
	return s.repo.GetMetaForOwner(ctx, actorID, id)
}
