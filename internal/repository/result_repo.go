package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"travel-persona/internal/domain"
)

// ResultRepository persiste clasificaciones completas y busca viajeros similares
// por cercania del embedding de perfil.
type ResultRepository interface {
	Create(ctx context.Context, result domain.PersonaResult) error
	GetLatestByUserID(ctx context.Context, userID string) (domain.PersonaResult, error)
	FindSimilarToUser(ctx context.Context, userID string, k int) ([]domain.PersonaResult, error)
}

type PgResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgResultRepository(pool *pgxpool.Pool) *PgResultRepository {
	return &PgResultRepository{pool: pool}
}

func (r *PgResultRepository) Create(ctx context.Context, result domain.PersonaResult) error {
	classificationJSON, err := json.Marshal(result.Classification)
	if err != nil {
		return fmt.Errorf("marshal classification: %w", err)
	}
	profileJSON, err := json.Marshal(result.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	const query = `
		INSERT INTO persona_results (id, user_id, classification, profile, narrative, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var embedding interface{}
	if result.Embedding != nil {
		embedding = *result.Embedding
	}

	_, err = r.pool.Exec(ctx, query,
		result.ID,
		result.UserID,
		classificationJSON,
		profileJSON,
		result.Narrative,
		embedding,
		result.CreatedAt,
	)
	return err
}

func (r *PgResultRepository) GetLatestByUserID(ctx context.Context, userID string) (domain.PersonaResult, error) {
	const query = `
		SELECT id, user_id, classification, profile, narrative, created_at
		FROM persona_results
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var res domain.PersonaResult
	var classificationJSON, profileJSON []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&res.ID,
		&res.UserID,
		&classificationJSON,
		&profileJSON,
		&res.Narrative,
		&res.CreatedAt,
	)
	if err != nil {
		return domain.PersonaResult{}, err
	}

	if err := json.Unmarshal(classificationJSON, &res.Classification); err != nil {
		return domain.PersonaResult{}, fmt.Errorf("unmarshal classification: %w", err)
	}
	if err := json.Unmarshal(profileJSON, &res.Profile); err != nil {
		return domain.PersonaResult{}, fmt.Errorf("unmarshal profile: %w", err)
	}

	return res, nil
}

// FindSimilarToUser ordena por distancia coseno contra el embedding mas
// reciente del usuario. Sin embedding propio devuelve lista vacia.
func (r *PgResultRepository) FindSimilarToUser(ctx context.Context, userID string, k int) ([]domain.PersonaResult, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT id, user_id, classification, profile, narrative, created_at
		FROM persona_results
		WHERE embedding IS NOT NULL AND user_id <> $1
		ORDER BY embedding <=> (
			SELECT embedding FROM persona_results
			WHERE user_id = $1 AND embedding IS NOT NULL
			ORDER BY created_at DESC
			LIMIT 1
		)
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.PersonaResult
	for rows.Next() {
		var res domain.PersonaResult
		var classificationJSON, profileJSON []byte
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&classificationJSON,
			&profileJSON,
			&res.Narrative,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(classificationJSON, &res.Classification); err != nil {
			return nil, fmt.Errorf("unmarshal classification: %w", err)
		}
		if err := json.Unmarshal(profileJSON, &res.Profile); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}
