package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumematch/pkg/nlp"
	"github.com/artem13815/resumematch/pkg/skill"
	"github.com/artem13815/resumematch/pkg/vacancy"
)

// VacancyRepository stores vacancies together with their skill requirements.
type VacancyRepository struct {
	pool *pgxpool.Pool
}

func NewVacancyRepository(pool *pgxpool.Pool) *VacancyRepository {
	return &VacancyRepository{pool: pool}
}

// vacancySelect yields one row per vacancy with requirements aggregated in
// extraction order.
const vacancySelect = `
SELECT v.id, v.owner_id, v.title, v.raw_text, v.sections, v.min_years_experience, v.created_at, v.updated_at,
	COALESCE(
		json_agg(json_build_object('skillId', vs.skill_id, 'skillName', sm.name, 'importance', vs.importance)
			ORDER BY vs.position) FILTER (WHERE vs.skill_id IS NOT NULL),
		'[]'
	) AS skills
FROM vacancies v
LEFT JOIN vacancy_skills vs ON vs.vacancy_id = v.id
LEFT JOIN skills_master sm ON sm.id = vs.skill_id
`

func (r *VacancyRepository) Create(ctx context.Context, v vacancy.Vacancy) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = v.CreatedAt
	}
	sections, err := json.Marshal(v.Sections)
	if err != nil {
		return err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO vacancies (id, owner_id, title, raw_text, sections, min_years_experience, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, v.ID, v.OwnerID, strings.TrimSpace(v.Title), v.RawText, sections, v.MinYearsExperience, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return err
	}
	if err := insertRequirements(ctx, tx, v.ID, v.Skills); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *VacancyRepository) UpdateDerived(ctx context.Context, v vacancy.Vacancy) error {
	sections, err := json.Marshal(v.Sections)
	if err != nil {
		return err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cmd, err := tx.Exec(ctx, `
UPDATE vacancies SET sections = $2, min_years_experience = $3, updated_at = $4
WHERE id = $1
`, v.ID, sections, v.MinYearsExperience, v.UpdatedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return vacancy.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM vacancy_skills WHERE vacancy_id = $1`, v.ID); err != nil {
		return err
	}
	if err := insertRequirements(ctx, tx, v.ID, v.Skills); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertRequirements(ctx context.Context, tx pgx.Tx, vacancyID uuid.UUID, reqs []skill.Requirement) error {
	for i, req := range reqs {
		_, err := tx.Exec(ctx, `
INSERT INTO vacancy_skills (vacancy_id, skill_id, importance, position)
VALUES ($1, $2, $3, $4)
`, vacancyID, req.SkillID, string(req.Importance), i)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *VacancyRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (vacancy.Vacancy, error) {
	return scanVacancy(r.pool.QueryRow(ctx, vacancySelect+`WHERE v.id = $1 AND v.owner_id = $2 GROUP BY v.id`, id, ownerID))
}

func (r *VacancyRepository) GetByIDAny(ctx context.Context, id uuid.UUID) (vacancy.Vacancy, error) {
	return scanVacancy(r.pool.QueryRow(ctx, vacancySelect+`WHERE v.id = $1 GROUP BY v.id`, id))
}

func (r *VacancyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]vacancy.Vacancy, error) {
	rows, err := r.pool.Query(ctx, vacancySelect+`
WHERE v.owner_id = $3
GROUP BY v.id
ORDER BY v.created_at DESC
LIMIT $1 OFFSET $2
`, normLimit(limit), offset, ownerID)
	if err != nil {
		return nil, err
	}
	return collectVacancies(rows)
}

func (r *VacancyRepository) ListAll(ctx context.Context, limit, offset int) ([]vacancy.Vacancy, error) {
	rows, err := r.pool.Query(ctx, vacancySelect+`
GROUP BY v.id
ORDER BY v.created_at DESC
LIMIT $1 OFFSET $2
`, normLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	return collectVacancies(rows)
}

func (r *VacancyRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM vacancies WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if inUse(err) {
		return vacancy.ErrInUse
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return vacancy.ErrNotFound
	}
	return nil
}

func (r *VacancyRepository) DeleteAny(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	if inUse(err) {
		return vacancy.ErrInUse
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return vacancy.ErrNotFound
	}
	return nil
}

func scanVacancy(row pgx.Row) (vacancy.Vacancy, error) {
	var (
		v                    vacancy.Vacancy
		sections, skillsJSON []byte
	)
	err := row.Scan(&v.ID, &v.OwnerID, &v.Title, &v.RawText, &sections, &v.MinYearsExperience,
		&v.CreatedAt, &v.UpdatedAt, &skillsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacancy.Vacancy{}, vacancy.ErrNotFound
		}
		return vacancy.Vacancy{}, err
	}
	v.Sections = nlp.Sections{}
	if err := json.Unmarshal(sections, &v.Sections); err != nil {
		return vacancy.Vacancy{}, err
	}
	v.Skills = []skill.Requirement{}
	if err := json.Unmarshal(skillsJSON, &v.Skills); err != nil {
		return vacancy.Vacancy{}, err
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v, nil
}

func collectVacancies(rows pgx.Rows) ([]vacancy.Vacancy, error) {
	defer rows.Close()
	res := []vacancy.Vacancy{}
	for rows.Next() {
		v, err := scanVacancy(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, rows.Err()
}
