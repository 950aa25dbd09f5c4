package services

import (
	"context"
	"errors"
	"time"

	"notable/internal/caching"
	"notable/internal/models"
	"notable/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const tenantCacheTTL = 5 * time.Minute

type TenantService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	// UpgradePlan moves the tenant identified by slug to PRO. The caller's
	// role and tenant come from the verified request context; a slug outside
	// the caller's tenant reads as not found.
	UpgradePlan(ctx context.Context, tenantID uuid.UUID, role models.Role, slug string) (*models.Tenant, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	cache      caching.CacheService
}

func NewTenantService(tenantRepo repositories.TenantRepository, cache caching.CacheService) TenantService {
	return &tenantService{tenantRepo: tenantRepo, cache: cache}
}

// GetByID reads through the tenant cache. Cache failures fall back to
// storage; a request never fails because Redis is down.
func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	if cached, err := s.cache.GetTenant(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_ = s.cache.SetTenant(ctx, tenant, tenantCacheTTL)
	return tenant, nil
}

func (s *tenantService) UpgradePlan(ctx context.Context, tenantID uuid.UUID, role models.Role, slug string) (*models.Tenant, error) {
	if role != models.RoleAdmin {
		return nil, ErrAdminRequired
	}

	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if tenant.ID != tenantID {
		// Another tenant's slug must be indistinguishable from a missing one.
		return nil, ErrNotFound
	}

	// Plain UPDATE keeps the operation idempotent for already-PRO tenants.
	updated, err := s.tenantRepo.UpdatePlan(ctx, tenantID, models.PlanPro)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_ = s.cache.DeleteTenant(ctx, tenantID)
	return updated, nil
}
