package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"travel-persona/internal/domain"
)

// TraitRepository persiste los puntajes de personalidad inferidos por la capa externa.
type TraitRepository interface {
	Upsert(ctx context.Context, trait domain.Trait) error
	FindByUserID(ctx context.Context, userID string) ([]domain.Trait, error)
}

type PgTraitRepository struct {
	pool *pgxpool.Pool
}

func NewPgTraitRepository(pool *pgxpool.Pool) *PgTraitRepository {
	return &PgTraitRepository{pool: pool}
}

func (r *PgTraitRepository) Upsert(ctx context.Context, trait domain.Trait) error {
	const query = `
		INSERT INTO traits (id, user_id, category, trait, value, confidence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, category, trait)
		DO UPDATE SET
			value = EXCLUDED.value,
			confidence = EXCLUDED.confidence,
			updated_at = EXCLUDED.updated_at
	`

	var confidence interface{}
	if trait.Confidence != nil {
		confidence = *trait.Confidence
	}

	_, err := r.pool.Exec(ctx, query,
		trait.ID,
		trait.UserID,
		trait.Category,
		trait.Trait,
		trait.Value,
		confidence,
		trait.CreatedAt,
		trait.UpdatedAt,
	)
	return err
}

func (r *PgTraitRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Trait, error) {
	const query = `
		SELECT id, user_id, category, trait, value, confidence, created_at, updated_at
		FROM traits
		WHERE user_id = $1
		ORDER BY category, trait
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var traits []domain.Trait
	for rows.Next() {
		var t domain.Trait
		var confidence sql.NullFloat64

		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Category,
			&t.Trait,
			&t.Value,
			&confidence,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if confidence.Valid {
			val := confidence.Float64
			t.Confidence = &val
		}
		traits = append(traits, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return traits, nil
}
