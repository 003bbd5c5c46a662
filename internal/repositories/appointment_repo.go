package repositories

import (
	"context"
	"errors"

	"slotbook/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateSlot is returned when an insert or reschedule loses the race on
// the partial unique index over (tenant_id, employee_id, date, time) for
// active appointments.
var ErrDuplicateSlot = errors.New("slot already booked")

const appointmentColumns = `id, tenant_id, service_id, service_name, service_price, service_duration,
		employee_id, employee_name, date, time, client_user_id, client_name, client_email, client_phone,
		notes, status, created_at, updated_at`

type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Appointment, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.AppointmentFilter) ([]*models.Appointment, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error
	UpdateSchedule(ctx context.Context, tenantID, id uuid.UUID, date, timeStr string) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// HasActiveSlot reports whether an active appointment already occupies the
	// exact (employee, date, time) slot. excludeID skips a row so a
	// reschedule does not collide with itself; pass uuid.Nil otherwise.
	HasActiveSlot(ctx context.Context, tenantID, employeeID uuid.UUID, date, timeStr string, excludeID uuid.UUID) (bool, error)
	ListActiveByEmployeeDate(ctx context.Context, tenantID, employeeID uuid.UUID, date string) ([]*models.Appointment, error)
	HasActiveOnDate(ctx context.Context, tenantID, employeeID uuid.UUID, date string) (bool, error)
	HasActiveInRange(ctx context.Context, tenantID, employeeID uuid.UUID, date, startTime, endTime string) (bool, error)
	ListActiveOnDate(ctx context.Context, tenantID uuid.UUID, date string) ([]*models.Appointment, error)
	ListCompletedBetween(ctx context.Context, tenantID uuid.UUID, dateFrom, dateTo string) ([]*models.Appointment, error)
}

type appointmentRepo struct {
	db DB
}

func NewAppointmentRepo(db DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	query := `
		INSERT INTO appointments (id, tenant_id, service_id, service_name, service_price, service_duration,
			employee_id, employee_name, date, time, client_user_id, client_name, client_email, client_phone,
			notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		appt.ID, appt.TenantID, appt.ServiceID, appt.ServiceName, appt.ServicePrice, appt.ServiceDuration,
		appt.EmployeeID, appt.EmployeeName, appt.Date, appt.Time, appt.ClientUserID, appt.ClientName,
		appt.ClientEmail, appt.ClientPhone, appt.Notes, appt.Status)
	return mapUniqueViolation(err)
}

func (r *appointmentRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1 AND id = $2
	`
	return scanAppointment(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *appointmentRepo) List(ctx context.Context, tenantID uuid.UUID, filter models.AppointmentFilter) ([]*models.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1
			AND ($2 = '' OR status = $2)
			AND ($3 = '' OR date >= $3)
			AND ($4 = '' OR date <= $4)
			AND ($5 = '00000000-0000-0000-0000-000000000000'::uuid OR employee_id = $5)
			AND ($6 = '00000000-0000-0000-0000-000000000000'::uuid OR client_user_id = $6)
		ORDER BY date, time
	`
	rows, err := r.db.Query(ctx, query, tenantID, filter.Status, filter.DateFrom, filter.DateTo, filter.EmployeeID, filter.ClientUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, status, tenantID, id)
	return err
}

func (r *appointmentRepo) UpdateSchedule(ctx context.Context, tenantID, id uuid.UUID, date, timeStr string) error {
	query := `
		UPDATE appointments
		SET date = $1, time = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, date, timeStr, tenantID, id)
	return mapUniqueViolation(err)
}

func (r *appointmentRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM appointments WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *appointmentRepo) HasActiveSlot(ctx context.Context, tenantID, employeeID uuid.UUID, date, timeStr string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE tenant_id = $1 AND employee_id = $2 AND date = $3 AND time = $4
				AND status IN ('pending', 'confirmed')
				AND id != $5
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, tenantID, employeeID, date, timeStr, excludeID).Scan(&exists)
	return exists, err
}

func (r *appointmentRepo) ListActiveByEmployeeDate(ctx context.Context, tenantID, employeeID uuid.UUID, date string) ([]*models.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1 AND employee_id = $2 AND date = $3
			AND status IN ('pending', 'confirmed')
		ORDER BY time
	`
	rows, err := r.db.Query(ctx, query, tenantID, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func (r *appointmentRepo) HasActiveOnDate(ctx context.Context, tenantID, employeeID uuid.UUID, date string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE tenant_id = $1 AND employee_id = $2 AND date = $3
				AND status IN ('pending', 'confirmed')
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, tenantID, employeeID, date).Scan(&exists)
	return exists, err
}

func (r *appointmentRepo) HasActiveInRange(ctx context.Context, tenantID, employeeID uuid.UUID, date, startTime, endTime string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE tenant_id = $1 AND employee_id = $2 AND date = $3
				AND time >= $4 AND time < $5
				AND status IN ('pending', 'confirmed')
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, tenantID, employeeID, date, startTime, endTime).Scan(&exists)
	return exists, err
}

func (r *appointmentRepo) ListActiveOnDate(ctx context.Context, tenantID uuid.UUID, date string) ([]*models.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1 AND date = $2
			AND status IN ('pending', 'confirmed')
		ORDER BY time
	`
	rows, err := r.db.Query(ctx, query, tenantID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func (r *appointmentRepo) ListCompletedBetween(ctx context.Context, tenantID uuid.UUID, dateFrom, dateTo string) ([]*models.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1 AND status = 'completed'
			AND ($2 = '' OR date >= $2)
			AND ($3 = '' OR date <= $3)
		ORDER BY date, time
	`
	rows, err := r.db.Query(ctx, query, tenantID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func scanAppointment(row pgx.Row) (*models.Appointment, error) {
	appt := &models.Appointment{}
	err := row.Scan(&appt.ID, &appt.TenantID, &appt.ServiceID, &appt.ServiceName, &appt.ServicePrice,
		&appt.ServiceDuration, &appt.EmployeeID, &appt.EmployeeName, &appt.Date, &appt.Time,
		&appt.ClientUserID, &appt.ClientName, &appt.ClientEmail, &appt.ClientPhone, &appt.Notes,
		&appt.Status, &appt.CreatedAt, &appt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func scanAppointments(rows pgx.Rows) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	return appts, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateSlot
	}
	return err
}
