package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"slotbook/internal/models"
	"slotbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CatalogService manages the bookable service catalog.
type CatalogService interface {
	Create(ctx context.Context, req *CreateServiceRequest) (*models.Service, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Service, error)
	Update(ctx context.Context, req *UpdateServiceRequest) (*models.Service, error)
	// Delete soft-deletes; existing appointments keep their snapshots.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]*models.Service, error)
}

type catalogService struct {
	serviceRepo repositories.ServiceRepository
}

func NewCatalogService(serviceRepo repositories.ServiceRepository) CatalogService {
	return &catalogService{serviceRepo: serviceRepo}
}

type CreateServiceRequest struct {
	TenantID    uuid.UUID
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

type UpdateServiceRequest struct {
	TenantID    uuid.UUID
	ID          uuid.UUID
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	IsActive    *bool   `json:"is_active"`
}

func validateServiceFields(name string, duration int, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidArgument)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidArgument)
	}
	return nil
}

func (s *catalogService) Create(ctx context.Context, req *CreateServiceRequest) (*models.Service, error) {
	if err := validateServiceFields(req.Name, req.Duration, req.Price); err != nil {
		return nil, err
	}

	service := &models.Service{
		ID:          uuid.New(),
		TenantID:    req.TenantID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		IsActive:    true,
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *catalogService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("service: %w", ErrNotFound)
		}
		return nil, err
	}
	return service, nil
}

func (s *catalogService) Update(ctx context.Context, req *UpdateServiceRequest) (*models.Service, error) {
	if err := validateServiceFields(req.Name, req.Duration, req.Price); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.Description = req.Description
	existing.Duration = req.Duration
	existing.Price = req.Price
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.serviceRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.serviceRepo.Deactivate(ctx, tenantID, id)
}

func (s *catalogService) List(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]*models.Service, error) {
	return s.serviceRepo.List(ctx, tenantID, includeInactive)
}
