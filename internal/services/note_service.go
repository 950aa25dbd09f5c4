package services

import (
	"context"
	"errors"
	"strings"

	"notable/internal/models"
	"notable/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// NoteService owns note validation and plan-limit semantics. Tenant scope
// always comes from the verified request context, never from the payload.
type NoteService interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error)
	Create(ctx context.Context, tenantID, authorID uuid.UUID, title, content string) (*models.Note, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, title, content string) (*models.Note, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type noteService struct {
	noteRepo repositories.NoteRepository
}

func NewNoteService(noteRepo repositories.NoteRepository) NoteService {
	return &noteService{noteRepo: noteRepo}
}

func (s *noteService) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	return s.noteRepo.ListByTenant(ctx, tenantID)
}

func (s *noteService) Create(ctx context.Context, tenantID, authorID uuid.UUID, title, content string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrTitleContentRequired
	}

	note := &models.Note{
		ID:       uuid.New(),
		TenantID: tenantID,
		AuthorID: authorID,
		Title:    title,
		Content:  content,
	}

	// The repository fills in timestamps and author email from the insert
	// itself, so a committed create never fails on a follow-up read.
	if err := s.noteRepo.Create(ctx, note); err != nil {
		if errors.Is(err, repositories.ErrPlanLimitReached) {
			return nil, ErrPlanLimit
		}
		return nil, err
	}

	return note, nil
}

func (s *noteService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *noteService) Update(ctx context.Context, tenantID, id uuid.UUID, title, content string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrTitleContentRequired
	}

	note := &models.Note{
		ID:       id,
		TenantID: tenantID,
		Title:    title,
		Content:  content,
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.Get(ctx, tenantID, id)
}

func (s *noteService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.noteRepo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
