package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"slotbook/internal/models"
	"slotbook/internal/notify"
	"slotbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReminderResults reports the outcome of a single-appointment reminder.
// Values are "sent", "failed", "no_email" or empty when not attempted.
type ReminderResults struct {
	Client   string `json:"client,omitempty"`
	Employee string `json:"employee,omitempty"`
}

// DailyReminderReport summarizes a bulk reminder run for one date.
type DailyReminderReport struct {
	Date         string `json:"date"`
	Appointments int    `json:"appointments_count"`
	EmailsSent   int    `json:"emails_sent"`
	EmailsFailed int    `json:"emails_failed"`
}

type ReminderService interface {
	SendAppointmentReminder(ctx context.Context, tenantID, appointmentID uuid.UUID, toClient, toEmployee bool) (*ReminderResults, error)
	// SendDailyReminders mails every active appointment on the date. An
	// empty date means tomorrow.
	SendDailyReminders(ctx context.Context, tenantID uuid.UUID, date string) (*DailyReminderReport, error)
}

type reminderService struct {
	appointmentRepo repositories.AppointmentRepository
	employeeRepo    repositories.EmployeeRepository
	tenantRepo      repositories.TenantRepository
	mailer          notify.Mailer
}

func NewReminderService(
	appointmentRepo repositories.AppointmentRepository,
	employeeRepo repositories.EmployeeRepository,
	tenantRepo repositories.TenantRepository,
	mailer notify.Mailer,
) ReminderService {
	return &reminderService{
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
		tenantRepo:      tenantRepo,
		mailer:          mailer,
	}
}

var clientReminderTmpl = template.Must(template.New("clientReminder").Parse(`
<div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #2C4A3B; padding: 30px; border-radius: 12px 12px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 24px;">Appointment Reminder</h1>
  </div>
  <div style="background: #ffffff; padding: 30px; border: 1px solid #e5e5e5; border-top: none; border-radius: 0 0 12px 12px;">
    <p style="color: #333; font-size: 16px;">Hello <strong>{{.ClientName}}</strong>!</p>
    <p style="color: #666; font-size: 15px;">This is a reminder of your appointment at <strong>{{.TenantName}}</strong>:</p>
    <div style="background: #f8f7f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <p style="margin: 4px 0;">Date: <strong>{{.Date}}</strong></p>
      <p style="margin: 4px 0;">Time: <strong>{{.Time}}</strong></p>
      <p style="margin: 4px 0;">Service: <strong>{{.ServiceName}}</strong></p>
      <p style="margin: 4px 0;">Professional: <strong>{{.EmployeeName}}</strong></p>
      <p style="margin: 4px 0;">Price: <strong>{{printf "%.2f" .ServicePrice}}</strong></p>
    </div>
    <p style="color: #666; font-size: 14px;">If you need to reschedule or cancel, please use our online system.</p>
    <p style="color: #888; font-size: 13px; margin-top: 30px;">{{.TenantName}}</p>
  </div>
</div>
`))

var employeeReminderTmpl = template.Must(template.New("employeeReminder").Parse(`
<div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #2C4A3B; padding: 30px; border-radius: 12px 12px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 24px;">Upcoming Appointment</h1>
  </div>
  <div style="background: #ffffff; padding: 30px; border: 1px solid #e5e5e5; border-top: none; border-radius: 0 0 12px 12px;">
    <p style="color: #333; font-size: 16px;">Hello <strong>{{.EmployeeName}}</strong>!</p>
    <p style="color: #666; font-size: 15px;">You have an appointment scheduled:</p>
    <div style="background: #f8f7f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <p style="margin: 4px 0;">Date: <strong>{{.Date}}</strong></p>
      <p style="margin: 4px 0;">Time: <strong>{{.Time}}</strong></p>
      <p style="margin: 4px 0;">Service: <strong>{{.ServiceName}}</strong></p>
      <p style="margin: 4px 0;">Client: <strong>{{.ClientName}}</strong></p>
      <p style="margin: 4px 0;">Email: {{.ClientEmail}}</p>
      <p style="margin: 4px 0;">Phone: {{.ClientPhone}}</p>
    </div>
    <p style="color: #888; font-size: 13px; margin-top: 30px;">{{.TenantName}}</p>
  </div>
</div>
`))

type reminderEmailData struct {
	TenantName   string
	ClientName   string
	ClientEmail  string
	ClientPhone  string
	EmployeeName string
	ServiceName  string
	ServicePrice float64
	Date         string
	Time         string
}

func reminderData(appt *models.Appointment, tenantName string) reminderEmailData {
	phone := "-"
	if appt.ClientPhone != nil && *appt.ClientPhone != "" {
		phone = *appt.ClientPhone
	}
	return reminderEmailData{
		TenantName:   tenantName,
		ClientName:   appt.ClientName,
		ClientEmail:  appt.ClientEmail,
		ClientPhone:  phone,
		EmployeeName: appt.EmployeeName,
		ServiceName:  appt.ServiceName,
		ServicePrice: appt.ServicePrice,
		Date:         appt.Date,
		Time:         appt.Time,
	}
}

func renderTemplate(tmpl *template.Template, data reminderEmailData) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render reminder email: %w", err)
	}
	return buf.String(), nil
}

func (s *reminderService) tenantName(ctx context.Context, tenantID uuid.UUID) string {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil || tenant.Name == "" {
		return "Salon"
	}
	return tenant.Name
}

func (s *reminderService) SendAppointmentReminder(ctx context.Context, tenantID, appointmentID uuid.UUID, toClient, toEmployee bool) (*ReminderResults, error) {
	if !s.mailer.Configured() {
		return nil, fmt.Errorf("%w: email service is not configured", ErrInvalidArgument)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, tenantID, appointmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("appointment: %w", ErrNotFound)
		}
		return nil, err
	}

	tenantName := s.tenantName(ctx, tenantID)
	results := &ReminderResults{}

	if toClient && appt.ClientEmail != "" {
		results.Client = s.sendClientReminder(ctx, appt, tenantName,
			fmt.Sprintf("Reminder: appointment at %s on %s at %s", tenantName, appt.Date, appt.Time))
	}
	if toEmployee {
		results.Employee = s.sendEmployeeReminder(ctx, tenantID, appt, tenantName,
			fmt.Sprintf("Reminder: %s on %s at %s", appt.ClientName, appt.Date, appt.Time))
	}
	return results, nil
}

func (s *reminderService) SendDailyReminders(ctx context.Context, tenantID uuid.UUID, date string) (*DailyReminderReport, error) {
	if !s.mailer.Configured() {
		return nil, fmt.Errorf("%w: email service is not configured", ErrInvalidArgument)
	}

	if date == "" {
		date = time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	}

	appointments, err := s.appointmentRepo.ListActiveOnDate(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}

	tenantName := s.tenantName(ctx, tenantID)
	report := &DailyReminderReport{Date: date, Appointments: len(appointments)}

	for _, appt := range appointments {
		if appt.ClientEmail != "" {
			outcome := s.sendClientReminder(ctx, appt, tenantName,
				fmt.Sprintf("Reminder: appointment tomorrow at %s, %s", tenantName, appt.Time))
			report.record(outcome)
		}
		outcome := s.sendEmployeeReminder(ctx, tenantID, appt, tenantName,
			fmt.Sprintf("Reminder: %s tomorrow at %s", appt.ClientName, appt.Time))
		report.record(outcome)
	}
	return report, nil
}

func (r *DailyReminderReport) record(outcome string) {
	switch outcome {
	case "sent":
		r.EmailsSent++
	case "failed":
		r.EmailsFailed++
	}
}

func (s *reminderService) sendClientReminder(ctx context.Context, appt *models.Appointment, tenantName, subject string) string {
	html, err := renderTemplate(clientReminderTmpl, reminderData(appt, tenantName))
	if err != nil {
		return "failed"
	}
	if err := s.mailer.Send(ctx, appt.ClientEmail, subject, html); err != nil {
		return "failed"
	}
	return "sent"
}

func (s *reminderService) sendEmployeeReminder(ctx context.Context, tenantID uuid.UUID, appt *models.Appointment, tenantName, subject string) string {
	employee, err := s.employeeRepo.GetByID(ctx, tenantID, appt.EmployeeID)
	if err != nil || employee.Email == nil || *employee.Email == "" {
		return "no_email"
	}
	html, err := renderTemplate(employeeReminderTmpl, reminderData(appt, tenantName))
	if err != nil {
		return "failed"
	}
	if err := s.mailer.Send(ctx, *employee.Email, subject, html); err != nil {
		return "failed"
	}
	return "sent"
}
