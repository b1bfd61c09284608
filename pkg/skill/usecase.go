package skill

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artem13815/resumematch/pkg/logger"
)

// VocabularyCache keeps a serialized ontology snapshot between requests.
// A miss is (nil, false, nil).
type VocabularyCache interface {
	Get(ctx context.Context) ([]Skill, bool, error)
	Set(ctx context.Context, entries []Skill) error
	Invalidate(ctx context.Context) error
}

// SeedResult summarises a seeding run.
type SeedResult struct {
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Rejected []Rejected `json:"rejected"`
}

// UseCase exposes the ontology and the stored per-document skill records.
type UseCase interface {
	// Vocabulary loads a snapshot, from cache when possible.
	Vocabulary(ctx context.Context) (Vocabulary, error)
	// Seed inserts valid entries whose names are not stored yet. Existing rows are left alone.
	Seed(ctx context.Context, r io.Reader) (SeedResult, error)
	ResumeSkills(ctx context.Context, resumeID uuid.UUID) ([]Extracted, error)
}

type service struct {
	repo  Repository
	cache VocabularyCache
	log   *zerolog.Logger
}

// NewService wires the use case. cache may be nil.
func NewService(repo Repository, cache VocabularyCache, log *zerolog.Logger) UseCase {
	return &service{repo: repo, cache: cache, log: logger.OrNop(log)}
}

func (s *service) Vocabulary(ctx context.Context) (Vocabulary, error) {
	if s.cache != nil {
		entries, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("vocabulary cache read failed")
		} else if ok {
			return NewVocabulary(entries), nil
		}
	}
	entries, err := s.repo.ListVocabulary(ctx)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("list vocabulary: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			s.log.Warn().Err(err).Msg("vocabulary cache write failed")
		}
	}
	return NewVocabulary(entries), nil
}

func (s *service) Seed(ctx context.Context, r io.Reader) (SeedResult, error) {
	entries, rejected, err := ParseSeed(r)
	if err != nil {
		return SeedResult{}, err
	}
	for _, rj := range rejected {
		s.log.Warn().Int("index", rj.Index).Str("name", rj.Name).Str("reason", rj.Reason).Msg("seed entry skipped")
	}
	inserted, err := s.repo.InsertMissing(ctx, entries)
	if err != nil {
		return SeedResult{}, fmt.Errorf("insert seed: %w", err)
	}
	if s.cache != nil && inserted > 0 {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("vocabulary cache invalidate failed")
		}
	}
	s.log.Info().Int("inserted", inserted).Int("rejected", len(rejected)).Msg("vocabulary seeded")
	return SeedResult{
		Inserted: inserted,
		Skipped:  len(entries) - inserted,
		Rejected: rejected,
	}, nil
}

func (s *service) ResumeSkills(ctx context.Context, resumeID uuid.UUID) ([]Extracted, error) {
	return s.repo.ListResumeSkills(ctx, resumeID)
}
