package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"slotbook/internal/models"
)

type CacheService interface {
	// Session management. Sessions are stored as JSON under the opaque token,
	// with a reverse key per user so a fresh login can evict the previous
	// session.
	SetSession(ctx context.Context, session *models.Session, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	GetUserSessionToken(ctx context.Context, userID uuid.UUID) (string, error)

	// Tenant slug resolution caching
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	SetTenantBySlug(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error
	DeleteTenantBySlug(ctx context.Context, slug string) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	// Ping reports whether the cache backend is reachable
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both host:port and redis://host:port forms
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

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func sessionKey(token string) string {
	return fmt.Sprintf("slotbook:session:%s", token)
}

func userSessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("slotbook:usersession:%s", userID.String())
}

func tenantSlugKey(slug string) string {
	return fmt.Sprintf("slotbook:tenantslug:%s", slug)
}

func (r *redisCacheService) SetSession(ctx context.Context, session *models.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, sessionKey(session.Token), data, ttl).Err(); err != nil {
		return err
	}
	return r.client.Set(ctx, userSessionKey(session.UserID), session.Token, ttl).Err()
}

func (r *redisCacheService) GetSession(ctx context.Context, token string) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // not found
		}
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *redisCacheService) DeleteSession(ctx context.Context, token string) error {
	session, err := r.GetSession(ctx, token)
	if err != nil {
		return err
	}
	if session != nil {
		r.client.Del(ctx, userSessionKey(session.UserID))
	}
	return r.client.Del(ctx, sessionKey(token)).Err()
}

func (r *redisCacheService) GetUserSessionToken(ctx context.Context, userID uuid.UUID) (string, error) {
	val, err := r.client.Get(ctx, userSessionKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	data, err := r.client.Get(ctx, tenantSlugKey(slug)).Bytes()
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

func (r *redisCacheService) SetTenantBySlug(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, tenantSlugKey(tenant.Slug), data, ttl).Err()
}

func (r *redisCacheService) DeleteTenantBySlug(ctx context.Context, slug string) error {
	return r.client.Del(ctx, tenantSlugKey(slug)).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("slotbook:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
