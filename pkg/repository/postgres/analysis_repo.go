package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumematch/pkg/analysis"
)

// AnalysisRepository stores analysis snapshots. Rows are never updated.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

const analysisColumns = `id, owner_id, resume_id, vacancy_id, score, model, report, created_at`

func (r *AnalysisRepository) Create(ctx context.Context, a analysis.Analysis) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	reportJSON, err := json.Marshal(a.Report)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO analyses (id, owner_id, resume_id, vacancy_id, score, model, report, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, a.ID, a.OwnerID, a.ResumeID, a.VacancyID, a.Score, a.Model, reportJSON, a.CreatedAt)
	return err
}

func (r *AnalysisRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (analysis.Analysis, error) {
	return scanAnalysis(r.pool.QueryRow(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

func (r *AnalysisRepository) GetByIDAny(ctx context.Context, id uuid.UUID) (analysis.Analysis, error) {
	return scanAnalysis(r.pool.QueryRow(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = $1`, id))
}

func (r *AnalysisRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]analysis.Analysis, error) {
	return r.list(ctx, `WHERE owner_id = $3`, limit, offset, ownerID)
}

func (r *AnalysisRepository) ListAll(ctx context.Context, limit, offset int) ([]analysis.Analysis, error) {
	return r.list(ctx, ``, limit, offset)
}

func (r *AnalysisRepository) ListByVacancyForOwner(ctx context.Context, ownerID, vacancyID uuid.UUID, limit, offset int) ([]analysis.Analysis, error) {
	return r.list(ctx, `WHERE owner_id = $3 AND vacancy_id = $4`, limit, offset, ownerID, vacancyID)
}

func (r *AnalysisRepository) ListByVacancyAny(ctx context.Context, vacancyID uuid.UUID, limit, offset int) ([]analysis.Analysis, error) {
	return r.list(ctx, `WHERE vacancy_id = $3`, limit, offset, vacancyID)
}

// list pages through analyses newest first. where may reference $3 onwards.
func (r *AnalysisRepository) list(ctx context.Context, where string, limit, offset int, args ...any) ([]analysis.Analysis, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+analysisColumns+`
FROM analyses `+where+`
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, append([]any{normLimit(limit), offset}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []analysis.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func scanAnalysis(row pgx.Row) (analysis.Analysis, error) {
	var (
		a          analysis.Analysis
		reportJSON []byte
	)
	if err := row.Scan(&a.ID, &a.OwnerID, &a.ResumeID, &a.VacancyID, &a.Score, &a.Model, &reportJSON, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return analysis.Analysis{}, analysis.ErrNotFound
		}
		return analysis.Analysis{}, err
	}
	if err := json.Unmarshal(reportJSON, &a.Report); err != nil {
		return analysis.Analysis{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}
