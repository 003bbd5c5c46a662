package repositories

import (
	"context"

	"slotbook/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BlockedTimeRepository interface {
	Create(ctx context.Context, block *models.BlockedTime) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.BlockedTime, error)
	Update(ctx context.Context, block *models.BlockedTime) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, filter models.BlockedTimeFilter) ([]*models.BlockedTime, error)
	ListByEmployeeDate(ctx context.Context, tenantID, employeeID uuid.UUID, date string) ([]*models.BlockedTime, error)
}

type blockedTimeRepo struct {
	db DB
}

func NewBlockedTimeRepo(db DB) BlockedTimeRepository {
	return &blockedTimeRepo{db: db}
}

func (r *blockedTimeRepo) Create(ctx context.Context, block *models.BlockedTime) error {
	query := `
		INSERT INTO blocked_times (id, tenant_id, employee_id, date, start_time, end_time, reason, is_whole_day, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.Exec(ctx, query, block.ID, block.TenantID, block.EmployeeID, block.Date, block.StartTime, block.EndTime, block.Reason, block.IsWholeDay)
	return err
}

func (r *blockedTimeRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.BlockedTime, error) {
	block := &models.BlockedTime{}
	query := `
		SELECT id, tenant_id, employee_id, date, start_time, end_time, reason, is_whole_day, created_at
		FROM blocked_times
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&block.ID, &block.TenantID, &block.EmployeeID, &block.Date, &block.StartTime, &block.EndTime, &block.Reason, &block.IsWholeDay, &block.CreatedAt)
	if err != nil {
		return nil, err
	}
	return block, nil
}

func (r *blockedTimeRepo) Update(ctx context.Context, block *models.BlockedTime) error {
	query := `
		UPDATE blocked_times
		SET employee_id = $1, date = $2, start_time = $3, end_time = $4, reason = $5, is_whole_day = $6
		WHERE tenant_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, block.EmployeeID, block.Date, block.StartTime, block.EndTime, block.Reason, block.IsWholeDay, block.TenantID, block.ID)
	return err
}

func (r *blockedTimeRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM blocked_times WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *blockedTimeRepo) List(ctx context.Context, tenantID uuid.UUID, filter models.BlockedTimeFilter) ([]*models.BlockedTime, error) {
	query := `
		SELECT id, tenant_id, employee_id, date, start_time, end_time, reason, is_whole_day, created_at
		FROM blocked_times
		WHERE tenant_id = $1
			AND ($2 = '00000000-0000-0000-0000-000000000000'::uuid OR employee_id = $2)
			AND ($3 = '' OR date >= $3)
			AND ($4 = '' OR date <= $4)
		ORDER BY date, start_time NULLS FIRST
	`
	rows, err := r.db.Query(ctx, query, tenantID, filter.EmployeeID, filter.DateFrom, filter.DateTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBlockedTimes(rows)
}

func (r *blockedTimeRepo) ListByEmployeeDate(ctx context.Context, tenantID, employeeID uuid.UUID, date string) ([]*models.BlockedTime, error) {
	query := `
		SELECT id, tenant_id, employee_id, date, start_time, end_time, reason, is_whole_day, created_at
		FROM blocked_times
		WHERE tenant_id = $1 AND employee_id = $2 AND date = $3
		ORDER BY start_time NULLS FIRST
	`
	rows, err := r.db.Query(ctx, query, tenantID, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBlockedTimes(rows)
}

func scanBlockedTimes(rows pgx.Rows) ([]*models.BlockedTime, error) {
	var blocks []*models.BlockedTime
	for rows.Next() {
		block := &models.BlockedTime{}
		if err := rows.Scan(&block.ID, &block.TenantID, &block.EmployeeID, &block.Date, &block.StartTime, &block.EndTime, &block.Reason, &block.IsWholeDay, &block.CreatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}
