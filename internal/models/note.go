package models

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID       uuid.UUID `json:"id" db:"id"`
	TenantID uuid.UUID `json:"tenant_id" db:"tenant_id"`
	AuthorID uuid.UUID `json:"author_id" db:"author_id"`
	Title    string    `json:"title" db:"title"`
	Content  string    `json:"content" db:"content"`
	// AuthorEmail is joined from users on reads; not a notes column.
	AuthorEmail string    `json:"author_email,omitempty" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
