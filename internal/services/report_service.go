package services

import (
	"context"

	"slotbook/internal/models"
	"slotbook/internal/repositories"

	"github.com/google/uuid"
)

// RevenueBucket aggregates completed appointments for one grouping key.
type RevenueBucket struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// RevenueReport summarizes completed appointments over a date range using the
// prices snapshotted at booking time.
type RevenueReport struct {
	TotalRevenue      float64                  `json:"total_revenue"`
	TotalAppointments int                      `json:"total_appointments"`
	ByService         map[string]RevenueBucket `json:"by_service"`
	ByEmployee        map[string]RevenueBucket `json:"by_employee"`
	ByDate            []models.RevenueRow      `json:"by_date"`
	DateFrom          string                   `json:"date_from"`
	DateTo            string                   `json:"date_to"`
}

type ReportService interface {
	Revenue(ctx context.Context, tenantID uuid.UUID, dateFrom, dateTo string) (*RevenueReport, error)
}

type reportService struct {
	appointmentRepo repositories.AppointmentRepository
}

func NewReportService(appointmentRepo repositories.AppointmentRepository) ReportService {
	return &reportService{appointmentRepo: appointmentRepo}
}

func (s *reportService) Revenue(ctx context.Context, tenantID uuid.UUID, dateFrom, dateTo string) (*RevenueReport, error) {
	appointments, err := s.appointmentRepo.ListCompletedBetween(ctx, tenantID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	report := &RevenueReport{
		ByService:  map[string]RevenueBucket{},
		ByEmployee: map[string]RevenueBucket{},
		ByDate:     []models.RevenueRow{},
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	}

	byDate := map[string]*models.RevenueRow{}
	var dateOrder []string
	for _, appt := range appointments {
		report.TotalRevenue += appt.ServicePrice
		report.TotalAppointments++

		svc := report.ByService[appt.ServiceName]
		svc.Count++
		svc.Revenue += appt.ServicePrice
		report.ByService[appt.ServiceName] = svc

		emp := report.ByEmployee[appt.EmployeeName]
		emp.Count++
		emp.Revenue += appt.ServicePrice
		report.ByEmployee[appt.EmployeeName] = emp

		row, ok := byDate[appt.Date]
		if !ok {
			row = &models.RevenueRow{Date: appt.Date}
			byDate[appt.Date] = row
			dateOrder = append(dateOrder, appt.Date)
		}
		row.Count++
		row.Revenue += appt.ServicePrice
	}

	// Appointments arrive ordered by date, so dateOrder is already sorted.
	for _, date := range dateOrder {
		report.ByDate = append(report.ByDate, *byDate[date])
	}
	return report, nil
}
