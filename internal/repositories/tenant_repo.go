package repositories

import (
	"context"

	"notable/internal/models"

	"github.com/google/uuid"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, plan models.Plan) (*models.Tenant, error)
}

type tenantRepo struct {
	db Database
}

func NewTenantRepo(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, slug, name, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tenant.ID, tenant.Slug, tenant.Name, tenant.Plan)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, slug, name, plan, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&tenant.ID, &tenant.Slug, &tenant.Name, &tenant.Plan, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, slug, name, plan, created_at, updated_at
		FROM tenants
		WHERE slug = $1
	`
	err := r.db.QueryRow(ctx, query, slug).Scan(&tenant.ID, &tenant.Slug, &tenant.Name, &tenant.Plan, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) UpdatePlan(ctx context.Context, id uuid.UUID, plan models.Plan) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		UPDATE tenants
		SET plan = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, slug, name, plan, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, plan, id).Scan(&tenant.ID, &tenant.Slug, &tenant.Name, &tenant.Plan, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}
