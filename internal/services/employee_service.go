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

type EmployeeService interface {
	Create(ctx context.Context, req *CreateEmployeeRequest) (*models.Employee, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Employee, error)
	Update(ctx context.Context, req *UpdateEmployeeRequest) (*models.Employee, error)
	// Delete soft-deletes; past appointments keep the employee name snapshot.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]*models.Employee, error)
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
}

func NewEmployeeService(employeeRepo repositories.EmployeeRepository) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo}
}

type CreateEmployeeRequest struct {
	TenantID   uuid.UUID
	Name       string      `json:"name"`
	Email      *string     `json:"email"`
	Phone      *string     `json:"phone"`
	ServiceIDs []uuid.UUID `json:"service_ids"`
}

type UpdateEmployeeRequest struct {
	TenantID   uuid.UUID
	ID         uuid.UUID
	Name       string      `json:"name"`
	Email      *string     `json:"email"`
	Phone      *string     `json:"phone"`
	ServiceIDs []uuid.UUID `json:"service_ids"`
	IsActive   *bool       `json:"is_active"`
}

func (s *employeeService) Create(ctx context.Context, req *CreateEmployeeRequest) (*models.Employee, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	serviceIDs := req.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []uuid.UUID{}
	}

	employee := &models.Employee{
		ID:         uuid.New(),
		TenantID:   req.TenantID,
		Name:       strings.TrimSpace(req.Name),
		Email:      req.Email,
		Phone:      req.Phone,
		ServiceIDs: serviceIDs,
		IsActive:   true,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employee: %w", ErrNotFound)
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) Update(ctx context.Context, req *UpdateEmployeeRequest) (*models.Employee, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	existing, err := s.GetByID(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.Email = req.Email
	existing.Phone = req.Phone
	if req.ServiceIDs != nil {
		existing.ServiceIDs = req.ServiceIDs
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.employeeRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *employeeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.employeeRepo.Deactivate(ctx, tenantID, id)
}

func (s *employeeService) List(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]*models.Employee, error) {
	return s.employeeRepo.List(ctx, tenantID, includeInactive)
}
