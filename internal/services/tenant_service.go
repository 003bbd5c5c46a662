package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slotbook/internal/caching"
	"slotbook/internal/models"
	"slotbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	defaultSlug    = "demo"
	tenantCacheTTL = 5 * time.Minute
)

type TenantService interface {
	// ResolveByHost maps a request Host header to a tenant, creating the
	// tenant on first sight of a new slug.
	ResolveByHost(ctx context.Context, host string) (*models.Tenant, error)
	ResolveBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, req *UpdateTenantRequest) (*models.Tenant, error)
	ListActive(ctx context.Context) ([]*models.Tenant, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	cache      caching.CacheService
}

func NewTenantService(tenantRepo repositories.TenantRepository, cache caching.CacheService) TenantService {
	return &tenantService{tenantRepo: tenantRepo, cache: cache}
}

type UpdateTenantRequest struct {
	ID   uuid.UUID
	Name string `json:"name"`
}

// SlugFromHost derives the tenant slug from a Host header: strip the port,
// take the first dot-separated label, fall back to "demo" when there is no
// usable label (localhost and other single-label hosts).
func SlugFromHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	label, _, found := strings.Cut(host, ".")
	if !found || label == "" {
		return defaultSlug
	}
	return label
}

// displayName turns a slug into a human-readable tenant name, e.g.
// "glow-salon" becomes "Glow Salon".
func displayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (s *tenantService) ResolveByHost(ctx context.Context, host string) (*models.Tenant, error) {
	return s.ResolveBySlug(ctx, SlugFromHost(host))
}

func (s *tenantService) ResolveBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	if slug == "" {
		slug = defaultSlug
	}

	if cached, err := s.cache.GetTenantBySlug(ctx, slug); err == nil && cached != nil {
		return cached, nil
	}

	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to resolve tenant: %w", err)
		}
		tenant = &models.Tenant{
			ID:       uuid.New(),
			Slug:     slug,
			Name:     displayName(slug),
			IsActive: true,
		}
		if err := s.tenantRepo.Create(ctx, tenant); err != nil {
			// Another request may have provisioned the slug first
			if existing, getErr := s.tenantRepo.GetBySlug(ctx, slug); getErr == nil {
				tenant = existing
			} else {
				return nil, fmt.Errorf("failed to provision tenant: %w", err)
			}
		}
	}

	_ = s.cache.SetTenantBySlug(ctx, tenant, tenantCacheTTL)
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenant: %w", ErrNotFound)
		}
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, req *UpdateTenantRequest) (*models.Tenant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	existing, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(req.Name)
	if err := s.tenantRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	_ = s.cache.DeleteTenantBySlug(ctx, existing.Slug)
	return existing, nil
}

func (s *tenantService) ListActive(ctx context.Context) ([]*models.Tenant, error) {
	return s.tenantRepo.ListActive(ctx)
}
