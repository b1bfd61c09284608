package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumematch/pkg/nlp"
	"github.com/artem13815/resumematch/pkg/resume"
)

// ResumeRepository stores uploaded resume metadata and their parsed records.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

const resumeColumns = `id, owner_id, filename, mime_type, size_bytes, storage_uri, created_at`

func (r *ResumeRepository) Create(ctx context.Context, rs resume.Resume) error {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	if rs.CreatedAt.IsZero() {
		rs.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO resumes (id, owner_id, filename, mime_type, size_bytes, storage_uri, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, rs.ID, rs.OwnerID, rs.Filename, rs.MimeType, rs.Size, rs.StorageURI, rs.CreatedAt)
	return err
}

func (r *ResumeRepository) SaveParsed(ctx context.Context, p resume.Parsed) error {
	sections, err := json.Marshal(p.Sections)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO parsed_resumes (resume_id, raw_text, sections, experience_years, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (resume_id) DO UPDATE SET
	raw_text = EXCLUDED.raw_text,
	sections = EXCLUDED.sections,
	experience_years = EXCLUDED.experience_years,
	updated_at = EXCLUDED.updated_at
`, p.ResumeID, p.RawText, sections, p.ExperienceYears, p.UpdatedAt)
	return err
}

func (r *ResumeRepository) GetParsed(ctx context.Context, resumeID uuid.UUID) (resume.Parsed, error) {
	row := r.pool.QueryRow(ctx, `
SELECT resume_id, raw_text, sections, experience_years, updated_at
FROM parsed_resumes WHERE resume_id = $1
`, resumeID)
	var (
		p        resume.Parsed
		sections []byte
	)
	if err := row.Scan(&p.ResumeID, &p.RawText, &sections, &p.ExperienceYears, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Parsed{}, resume.ErrNotFound
		}
		return resume.Parsed{}, err
	}
	p.Sections = nlp.Sections{}
	if err := json.Unmarshal(sections, &p.Sections); err != nil {
		return resume.Parsed{}, err
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *ResumeRepository) GetMetaForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	return scanResume(r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

func (r *ResumeRepository) GetMetaAny(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	return scanResume(r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
}

func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]resume.Resume, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+resumeColumns+`
FROM resumes WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, normLimit(limit), offset, ownerID)
	if err != nil {
		return nil, err
	}
	return collectResumes(rows)
}

func (r *ResumeRepository) ListAll(ctx context.Context, limit, offset int) ([]resume.Resume, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+resumeColumns+`
FROM resumes
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, normLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	return collectResumes(rows)
}

func (r *ResumeRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	return deletedResume(scanResume(r.pool.QueryRow(ctx, `DELETE FROM resumes WHERE id = $1 AND owner_id = $2 RETURNING `+resumeColumns, id, ownerID)))
}

func (r *ResumeRepository) DeleteAny(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	return deletedResume(scanResume(r.pool.QueryRow(ctx, `DELETE FROM resumes WHERE id = $1 RETURNING `+resumeColumns, id)))
}

// analyses reference resumes with ON DELETE RESTRICT
func deletedResume(m resume.Resume, err error) (resume.Resume, error) {
	if inUse(err) {
		return resume.Resume{}, resume.ErrInUse
	}
	return m, err
}

func scanResume(row pgx.Row) (resume.Resume, error) {
	var m resume.Resume
	if err := row.Scan(&m.ID, &m.OwnerID, &m.Filename, &m.MimeType, &m.Size, &m.StorageURI, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, resume.ErrNotFound
		}
		return resume.Resume{}, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}

func collectResumes(rows pgx.Rows) ([]resume.Resume, error) {
	defer rows.Close()
	res := []resume.Resume{}
	for rows.Next() {
		m, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

// normLimit applies the default page size.
func normLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
