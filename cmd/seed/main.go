package main

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"notable/internal/models"
	"notable/internal/repositories"
	"notable/internal/services"
	"notable/pkg/database"
)

// Seeds two tenants with an admin and a member each. Safe to run repeatedly:
// rows that already exist are skipped.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	_ = godotenv.Load()
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	ctx := context.Background()
	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	authSvc := services.NewAuthService("") // only the hasher is used here

	passwordHash, err := authSvc.HashPassword("password")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to hash seed password")
	}

	tenants := []*models.Tenant{
		{ID: uuid.New(), Slug: "acme", Name: "Acme Inc.", Plan: models.PlanFree},
		{ID: uuid.New(), Slug: "globex", Name: "Globex Corporation", Plan: models.PlanFree},
	}

	tenantIDs := map[string]uuid.UUID{}
	for _, t := range tenants {
		if err := tenantRepo.Create(ctx, t); err != nil {
			if !isUniqueViolation(err) {
				logger.Fatal().Err(err).Str("slug", t.Slug).Msg("failed to create tenant")
			}
			existing, err := tenantRepo.GetBySlug(ctx, t.Slug)
			if err != nil {
				logger.Fatal().Err(err).Str("slug", t.Slug).Msg("failed to load existing tenant")
			}
			tenantIDs[t.Slug] = existing.ID
			logger.Info().Str("slug", t.Slug).Msg("tenant already exists")
			continue
		}
		tenantIDs[t.Slug] = t.ID
		logger.Info().Str("slug", t.Slug).Msg("tenant created")
	}

	users := []*models.User{
		{ID: uuid.New(), TenantID: tenantIDs["acme"], Email: "admin@acme.test", PasswordHash: passwordHash, Role: models.RoleAdmin},
		{ID: uuid.New(), TenantID: tenantIDs["acme"], Email: "user@acme.test", PasswordHash: passwordHash, Role: models.RoleMember},
		{ID: uuid.New(), TenantID: tenantIDs["globex"], Email: "admin@globex.test", PasswordHash: passwordHash, Role: models.RoleAdmin},
		{ID: uuid.New(), TenantID: tenantIDs["globex"], Email: "user@globex.test", PasswordHash: passwordHash, Role: models.RoleMember},
	}

	for _, u := range users {
		if err := userRepo.Create(ctx, u); err != nil {
			if !isUniqueViolation(err) {
				logger.Fatal().Err(err).Str("email", u.Email).Msg("failed to create user")
			}
			logger.Info().Str("email", u.Email).Msg("user already exists")
			continue
		}
		logger.Info().Str("email", u.Email).Str("role", string(u.Role)).Msg("user created")
	}

	logger.Info().Msg("seed data created successfully")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
