package repositories

import (
	"context"

	"slotbook/internal/models"

	"github.com/google/uuid"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Deactivate(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]*models.Employee, error)
}

type employeeRepo struct {
	db DB
}

func NewEmployeeRepo(db DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO employees (id, tenant_id, name, email, phone, service_ids, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, employee.ID, employee.TenantID, employee.Name, employee.Email, employee.Phone, employee.ServiceIDs, employee.IsActive)
	return err
}

func (r *employeeRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `
		SELECT id, tenant_id, name, email, phone, service_ids, is_active, created_at, updated_at
		FROM employees
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&employee.ID, &employee.TenantID, &employee.Name, &employee.Email, &employee.Phone, &employee.ServiceIDs, &employee.IsActive, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *employeeRepo) Update(ctx context.Context, employee *models.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, email = $2, phone = $3, service_ids = $4, is_active = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, employee.Name, employee.Email, employee.Phone, employee.ServiceIDs, employee.IsActive, employee.TenantID, employee.ID)
	return err
}

func (r *employeeRepo) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE employees
		SET is_active = false, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *employeeRepo) List(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]*models.Employee, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, service_ids, is_active, created_at, updated_at
		FROM employees
		WHERE tenant_id = $1 AND (is_active = true OR $2)
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, tenantID, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee := &models.Employee{}
		if err := rows.Scan(&employee.ID, &employee.TenantID, &employee.Name, &employee.Email, &employee.Phone, &employee.ServiceIDs, &employee.IsActive, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, nil
}
