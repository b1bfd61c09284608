package vacancy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artem13815/resumematch/pkg/logger"
	"github.com/artem13815/resumematch/pkg/nlp"
	"github.com/artem13815/resumematch/pkg/skill"
)

// UseCase covers JD management. Non-admin actors only see their own vacancies.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, rawText string) (Vacancy, error)
	Reprocess(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Vacancy, error)
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Vacancy, error)
	List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Vacancy, error)
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
}

type service struct {
	repo  Repository
	vocab skill.VocabularyProvider
	seg   *nlp.Segmenter
	log   *zerolog.Logger
}

func NewService(repo Repository, vocab skill.VocabularyProvider, seg *nlp.Segmenter, log *zerolog.Logger) UseCase {
	return &service{repo: repo, vocab: vocab, seg: seg, log: logger.OrNop(log)}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, title, rawText string) (Vacancy, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Vacancy{}, ErrValidation("title is required")
	}
	if strings.TrimSpace(rawText) == "" {
		return Vacancy{}, ErrEmptyText
	}
	vocab, err := s.vocab.Vocabulary(ctx)
	if err != nil {
		return Vacancy{}, err
	}
	now := time.Now().UTC()
	v := Process(Vacancy{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		RawText:   rawText,
		CreatedAt: now,
		UpdatedAt: now,
	}, s.seg, vocab)

	if err := s.repo.Create(ctx, v); err != nil {
		return Vacancy{}, fmt.Errorf("save vacancy: %w", err)
	}
	s.log.Info().Str("vacancy_id", v.ID.String()).Int("skills", len(v.Skills)).
		Int("min_years", v.MinYearsExperience).Msg("vacancy created")
	return v, nil
}

func (s *service) Reprocess(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Vacancy, error) {
	v, err := s.Get(ctx, actorID, isAdmin, id)
	if err != nil {
		return Vacancy{}, err
	}
	vocab, err := s.vocab.Vocabulary(ctx)
	if err != nil {
		return Vacancy{}, err
	}
	v = Process(v, s.seg, vocab)
	v.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateDerived(ctx, v); err != nil {
		return Vacancy{}, fmt.Errorf("update vacancy: %w", err)
	}
	return v, nil
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Vacancy, error) {
	if isAdmin {
		return s.repo.GetByIDAny(ctx, id)
	}
	return s.repo.GetByIDForOwner(ctx, actorID, id)
}

func (s *service) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Vacancy, error) {
	if isAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByOwner(ctx, actorID, limit, offset)
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if isAdmin {
		return s.repo.DeleteAny(ctx, id)
	}
	return s.repo.DeleteForOwner(ctx, actorID, id)
}
