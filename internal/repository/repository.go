package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sourabh71/AI-Analyst/internal/models"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) ([]string, error)
	SaveResult(ctx context.Context, result *models.ActionResult) error
	ListResults(ctx context.Context, sessionID string) ([]models.ActionResult, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (id, filename, file_size, blob_key, extracted_text, page_count,
		                      title, author, producer, classification, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Filename,
		s.FileSize,
		s.BlobKey,
		s.ExtractedText,
		s.PageCount,
		s.Title,
		s.Author,
		s.Producer,
		string(s.Classification),
		s.CreatedAt,
		s.ExpiresAt,
	)

	return err
}

// GetByID returns nil, nil when no session has the id.
func (r *repository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session

	query := `
		SELECT id, filename, file_size, blob_key, extracted_text, page_count,
		       title, author, producer, classification, created_at, expires_at
		FROM sessions
		WHERE id = ?
	`

	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM action_results WHERE session_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteExpired removes every session whose expiry is not after now,
// together with its results, and returns the blob keys they referenced.
func (r *repository) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var sessions []models.Session
	query := `SELECT id, blob_key, expires_at FROM sessions`
	if err := tx.SelectContext(ctx, &sessions, query); err != nil {
		return nil, err
	}

	var blobKeys []string
	for i := range sessions {
		s := &sessions[i]
		if !s.Expired(now) {
			continue
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM action_results WHERE session_id = ?`, s.ID); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, s.ID); err != nil {
			return nil, err
		}
		blobKeys = append(blobKeys, s.BlobKey)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return blobKeys, nil
}

// SaveResult stores result as the latest outcome of its action, replacing
// any earlier one.
func (r *repository) SaveResult(ctx context.Context, result *models.ActionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode action result: %w", err)
	}

	query := `
		INSERT INTO action_results (session_id, action, payload, completed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, action)
		DO UPDATE SET payload = excluded.payload, completed_at = excluded.completed_at
	`

	_, err = r.db.ExecContext(ctx, query, result.SessionID, string(result.Action), string(payload), result.CompletedAt)
	return err
}

func (r *repository) ListResults(ctx context.Context, sessionID string) ([]models.ActionResult, error) {
	var payloads []string

	query := `
		SELECT payload
		FROM action_results
		WHERE session_id = ?
		ORDER BY action
	`

	if err := r.db.SelectContext(ctx, &payloads, query, sessionID); err != nil {
		return nil, err
	}

	results := make([]models.ActionResult, 0, len(payloads))
	for _, payload := range payloads {
		var result models.ActionResult
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return nil, fmt.Errorf("failed to decode action result: %w", err)
		}
		results = append(results, result)
	}

	return results, nil
}
