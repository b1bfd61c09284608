package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumematch/pkg/skill"
)

// SkillRepository stores the skill ontology and the skills found in resumes.
type SkillRepository struct {
	pool *pgxpool.Pool
}

func NewSkillRepository(pool *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{pool: pool}
}

func (r *SkillRepository) ListVocabulary(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, category FROM skills_master ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []skill.Skill{}
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SkillRepository) InsertMissing(ctx context.Context, entries []skill.Skill) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`INSERT INTO skills_master (name, category) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`, e.Name, string(e.Category))
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range entries {
		tag, err := br.Exec()
		if err != nil {
			return inserted, err
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (r *SkillRepository) ReplaceResumeSkills(ctx context.Context, resumeID uuid.UUID, skills []skill.Extracted) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM resume_skills WHERE resume_id = $1`, resumeID); err != nil {
		return err
	}
	for _, s := range skills {
		_, err := tx.Exec(ctx, `
INSERT INTO resume_skills (resume_id, skill_id, confidence, evidence, source_sections)
VALUES ($1, $2, $3, $4, $5)
`, resumeID, s.SkillID, s.Confidence, s.Evidence, s.SourceSections)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *SkillRepository) ListResumeSkills(ctx context.Context, resumeID uuid.UUID) ([]skill.Extracted, error) {
	rows, err := r.pool.Query(ctx, `
SELECT rs.skill_id, sm.name, rs.confidence, rs.evidence, rs.source_sections
FROM resume_skills rs
JOIN skills_master sm ON sm.id = rs.skill_id
WHERE rs.resume_id = $1
ORDER BY rs.confidence DESC, sm.name
`, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []skill.Extracted{}
	for rows.Next() {
		var e skill.Extracted
		if err := rows.Scan(&e.SkillID, &e.SkillName, &e.Confidence, &e.Evidence, &e.SourceSections); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
