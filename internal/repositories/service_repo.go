package repositories

import (
	"context"

	"slotbook/internal/models"

	"github.com/google/uuid"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	// Deactivate soft-deletes; past appointments keep their snapshots.
	Deactivate(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]*models.Service, error)
}

type serviceRepo struct {
	db DB
}

func NewServiceRepo(db DB) ServiceRepository {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) Create(ctx context.Context, service *models.Service) error {
	query := `
		INSERT INTO services (id, tenant_id, name, description, duration, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, service.ID, service.TenantID, service.Name, service.Description, service.Duration, service.Price, service.IsActive)
	return err
}

func (r *serviceRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Service, error) {
	service := &models.Service{}
	query := `
		SELECT id, tenant_id, name, description, duration, price, is_active, created_at, updated_at
		FROM services
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&service.ID, &service.TenantID, &service.Name, &service.Description, &service.Duration, &service.Price, &service.IsActive, &service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (r *serviceRepo) Update(ctx context.Context, service *models.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, duration = $3, price = $4, is_active = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, service.Name, service.Description, service.Duration, service.Price, service.IsActive, service.TenantID, service.ID)
	return err
}

func (r *serviceRepo) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE services
		SET is_active = false, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *serviceRepo) List(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]*models.Service, error) {
	query := `
		SELECT id, tenant_id, name, description, duration, price, is_active, created_at, updated_at
		FROM services
		WHERE tenant_id = $1 AND (is_active = true OR $2)
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, tenantID, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		service := &models.Service{}
		if err := rows.Scan(&service.ID, &service.TenantID, &service.Name, &service.Description, &service.Duration, &service.Price, &service.IsActive, &service.CreatedAt, &service.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, nil
}
