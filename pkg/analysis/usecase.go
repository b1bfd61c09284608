package analysis

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artem13815/resumematch/pkg/logger"
	"github.com/artem13815/resumematch/pkg/matching"
	"github.com/artem13815/resumematch/pkg/resume"
	"github.com/artem13815/resumematch/pkg/skill"
	"github.com/artem13815/resumematch/pkg/vacancy"
)

// UseCase runs and reads resume vs vacancy analyses.
type UseCase interface {
	Create(ctx context.Context, actorID uuid.UUID, isAdmin bool, resumeID, vacancyID uuid.UUID) (Analysis, error)
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Analysis, error)
	List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Analysis, error)
	ListByVacancy(ctx context.Context, actorID uuid.UUID, isAdmin bool, vacancyID uuid.UUID, limit, offset int) ([]Analysis, error)
	// ExportVacancy writes every analysis of a vacancy as an XLSX workbook.
	ExportVacancy(ctx context.Context, actorID uuid.UUID, isAdmin bool, vacancyID uuid.UUID, w io.Writer) error
}

type service struct {
	repo      Repository
	resumes   resume.Repository
	skills    skill.Repository
	vacancies vacancy.Repository
	explainer Explainer
	log       *zerolog.Logger
}

// NewService builds the analysis use case. explainer may be nil, in which
// case recommendations stay empty.
func NewService(repo Repository, resumes resume.Repository, skills skill.Repository, vacancies vacancy.Repository, explainer Explainer, log *zerolog.Logger) UseCase {
	return &service{
		repo:      repo,
		resumes:   resumes,
		skills:    skills,
		vacancies: vacancies,
		explainer: explainer,
		log:       logger.OrNop(log),
	}
}

const exportPageSize = 500

func (s *service) Create(ctx context.Context, actorID uuid.UUID, isAdmin bool, resumeID, vacancyID uuid.UUID) (Analysis, error) {
	v, err := s.vacancy(ctx, actorID, isAdmin, vacancyID)
	if err != nil {
		return Analysis{}, err
	}
	meta, err := s.resumeMeta(ctx, actorID, isAdmin, resumeID)
	if err != nil {
		return Analysis{}, err
	}

	parsed, err := s.resumes.GetParsed(ctx, meta.ID)
	if err != nil {
		return Analysis{}, fmt.Errorf("load parsed resume: %w", err)
	}
	extracted, err := s.skills.ListResumeSkills(ctx, meta.ID)
	if err != nil {
		return Analysis{}, fmt.Errorf("load resume skills: %w", err)
	}

	in := BuildMatchInput(extracted, v.Skills, parsed.ExperienceYears, v.MinYearsExperience)
	if err := in.Validate(); err != nil {
		return Analysis{}, err
	}
	rep := BuildReport(matching.Evaluate(in))

	a := Analysis{
		ID:        uuid.New(),
		OwnerID:   meta.OwnerID,
		ResumeID:  meta.ID,
		VacancyID: v.ID,
		Score:     rep.OverallMatchScore,
		Report:    rep,
		CreatedAt: time.Now().UTC(),
	}
	if s.explainer != nil {
		recs, err := s.explainer.Recommend(ctx, rep)
		if err != nil {
			s.log.Warn().Err(err).Str("resume_id", meta.ID.String()).Str("vacancy_id", v.ID.String()).
				Msg("recommendations unavailable")
		} else {
			a.Report = withRecommendations(rep, recs)
			a.Model = s.explainer.Model()
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Analysis{}, fmt.Errorf("save analysis: %w", err)
	}
	s.log.Info().Str("analysis_id", a.ID.String()).Float64("score", a.Score).
		Int("risks", len(a.Report.Risks)).Msg("analysis created")
	return a, nil
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Analysis, error) {
	if isAdmin {
		return s.repo.GetByIDAny(ctx, id)
	}
	return s.repo.GetByIDForOwner(ctx, actorID, id)
}

func (s *service) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Analysis, error) {
	if isAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByOwner(ctx, actorID, limit, offset)
}

func (s *service) ListByVacancy(ctx context.Context, actorID uuid.UUID, isAdmin bool, vacancyID uuid.UUID, limit, offset int) ([]Analysis, error) {
	if _, err := s.vacancy(ctx, actorID, isAdmin, vacancyID); err != nil {
		return nil, err
	}
	if isAdmin {
		return s.repo.ListByVacancyAny(ctx, vacancyID, limit, offset)
	}
	return s.repo.ListByVacancyForOwner(ctx, actorID, vacancyID, limit, offset)
}

func (s *service) ExportVacancy(ctx context.Context, actorID uuid.UUID, isAdmin bool, vacancyID uuid.UUID, w io.Writer) error {
	var all []Analysis
	for offset := 0; ; offset += exportPageSize {
		page, err := s.ListByVacancy(ctx, actorID, isAdmin, vacancyID, exportPageSize, offset)
		if err != nil {
			return err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			break
		}
	}
	return ExportXLSX(w, all)
}

func (s *service) vacancy(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (vacancy.Vacancy, error) {
	if isAdmin {
		return s.vacancies.GetByIDAny(ctx, id)
	}
	return s.vacancies.GetByIDForOwner(ctx, actorID, id)
}

func (s *service) resumeMeta(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (resume.Resume, error) {
	if isAdmin {
		return s.resumes.GetMetaAny(ctx, id)
	}
	return s.resumes.GetMetaForOwner(ctx, actorID, id)
}
