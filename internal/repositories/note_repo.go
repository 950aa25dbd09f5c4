package repositories

import (
	"context"
	"errors"

	"notable/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrPlanLimitReached is returned by Create when the tenant is on the FREE
// plan and already holds the maximum number of notes.
var ErrPlanLimitReached = errors.New("free plan note limit reached")

type NoteRepository interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type noteRepo struct {
	db Database
}

func NewNoteRepo(db Database) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	query := `
		SELECT n.id, n.tenant_id, n.author_id, n.title, n.content, u.email, n.created_at, n.updated_at
		FROM notes n
		JOIN users u ON u.id = n.author_id
		WHERE n.tenant_id = $1
		ORDER BY n.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.TenantID, &note.AuthorID, &note.Title, &note.Content, &note.AuthorEmail, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *noteRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error) {
	note := &models.Note{}
	// Lookup is always by id AND tenant so a foreign note is indistinguishable
	// from a missing one.
	query := `
		SELECT n.id, n.tenant_id, n.author_id, n.title, n.content, u.email, n.created_at, n.updated_at
		FROM notes n
		JOIN users u ON u.id = n.author_id
		WHERE n.tenant_id = $1 AND n.id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&note.ID, &note.TenantID, &note.AuthorID, &note.Title, &note.Content, &note.AuthorEmail, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Create inserts the note inside a transaction that locks the tenant row.
// Concurrent creates for the same tenant serialize on the lock, so the FREE
// plan cap cannot be overshot by racing requests.
func (r *noteRepo) Create(ctx context.Context, note *models.Note) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var plan models.Plan
	if err := tx.QueryRow(ctx, `SELECT plan FROM tenants WHERE id = $1 FOR UPDATE`, note.TenantID).Scan(&plan); err != nil {
		return err
	}

	if plan == models.PlanFree {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM notes WHERE tenant_id = $1`, note.TenantID).Scan(&count); err != nil {
			return err
		}
		if count >= models.FreePlanNoteLimit {
			return ErrPlanLimitReached
		}
	}

	// RETURNING fills in the storage-assigned fields so the caller never has
	// to re-read a note it just committed.
	query := `
		INSERT INTO notes (id, tenant_id, author_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at, (SELECT email FROM users WHERE id = $3)
	`
	if err := tx.QueryRow(ctx, query, note.ID, note.TenantID, note.AuthorID, note.Title, note.Content).Scan(&note.CreatedAt, &note.UpdatedAt, &note.AuthorEmail); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *noteRepo) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes
		SET title = $1, content = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`
	tag, err := r.db.Exec(ctx, query, note.Title, note.Content, note.TenantID, note.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *noteRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE tenant_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
