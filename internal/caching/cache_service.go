package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"notable/internal/models"
)

// CacheService is a best-effort read cache in front of the tenant table.
// Misses and Redis failures are reported as (nil, err) and callers fall back
// to storage.
type CacheService interface {
	GetTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
	SetTenant(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error
	DeleteTenant(ctx context.Context, tenantID uuid.UUID) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as bare host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", parsedAddr).Msg("redis ping failed on initialization")
	}

	return &redisCacheService{client: client}
}

func tenantKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("notable:tenant:%s", tenantID.String())
}

func (r *redisCacheService) GetTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	data, err := r.client.Get(ctx, tenantKey(tenantID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var tenant models.Tenant
	if err := json.Unmarshal(data, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *redisCacheService) SetTenant(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, tenantKey(tenant.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.client.Del(ctx, tenantKey(tenantID)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
