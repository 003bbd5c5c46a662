package services

import (
	"context"
	"testing"

	"slotbook/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ReportServiceTestSuite struct {
	suite.Suite
	mockApptRepo *MockAppointmentRepository
	service      ReportService
	tenantID     uuid.UUID
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockApptRepo = &MockAppointmentRepository{}
	suite.service = NewReportService(suite.mockApptRepo)
	suite.tenantID = uuid.New()

	suite.mockApptRepo.Test(suite.T())
}

func (suite *ReportServiceTestSuite) TearDownTest() {
	suite.mockApptRepo.AssertExpectations(suite.T())
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (suite *ReportServiceTestSuite) TestRevenue_AggregatesSnapshots() {
	ctx := context.Background()

	suite.mockApptRepo.On("ListCompletedBetween", ctx, suite.tenantID, "2026-08-01", "2026-08-31").Return([]*models.Appointment{
		{Date: "2026-08-03", ServiceName: "Haircut", EmployeeName: "Marta", ServicePrice: 40, Status: models.StatusCompleted},
		{Date: "2026-08-03", ServiceName: "Coloring", EmployeeName: "Marta", ServicePrice: 120, Status: models.StatusCompleted},
		{Date: "2026-08-10", ServiceName: "Haircut", EmployeeName: "Jonas", ServicePrice: 40, Status: models.StatusCompleted},
	}, nil)

	report, err := suite.service.Revenue(ctx, suite.tenantID, "2026-08-01", "2026-08-31")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 200.0, report.TotalRevenue)
	assert.Equal(suite.T(), 3, report.TotalAppointments)

	assert.Equal(suite.T(), RevenueBucket{Count: 2, Revenue: 80}, report.ByService["Haircut"])
	assert.Equal(suite.T(), RevenueBucket{Count: 1, Revenue: 120}, report.ByService["Coloring"])
	assert.Equal(suite.T(), RevenueBucket{Count: 2, Revenue: 160}, report.ByEmployee["Marta"])
	assert.Equal(suite.T(), RevenueBucket{Count: 1, Revenue: 40}, report.ByEmployee["Jonas"])

	assert.Len(suite.T(), report.ByDate, 2)
	assert.Equal(suite.T(), models.RevenueRow{Date: "2026-08-03", Revenue: 160, Count: 2}, report.ByDate[0])
	assert.Equal(suite.T(), models.RevenueRow{Date: "2026-08-10", Revenue: 40, Count: 1}, report.ByDate[1])
}

func (suite *ReportServiceTestSuite) TestRevenue_EmptyRange() {
	ctx := context.Background()

	suite.mockApptRepo.On("ListCompletedBetween", ctx, suite.tenantID, "2026-08-01", "2026-08-31").Return([]*models.Appointment{}, nil)

	report, err := suite.service.Revenue(ctx, suite.tenantID, "2026-08-01", "2026-08-31")
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), report.TotalRevenue)
	assert.Zero(suite.T(), report.TotalAppointments)
	assert.Empty(suite.T(), report.ByDate)
	assert.Equal(suite.T(), "2026-08-01", report.DateFrom)
	assert.Equal(suite.T(), "2026-08-31", report.DateTo)
}
