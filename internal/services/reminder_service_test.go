package services

import (
	"context"
	"errors"
	"testing"

	"slotbook/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockMailer) Send(ctx context.Context, to, subject, html string) error {
	args := m.Called(ctx, to, subject, html)
	return args.Error(0)
}

type ReminderServiceTestSuite struct {
	suite.Suite
	mockApptRepo     *MockAppointmentRepository
	mockEmployeeRepo *MockEmployeeRepository
	mockTenantRepo   *MockTenantRepository
	mockMailer       *MockMailer
	service          ReminderService
	tenantID         uuid.UUID
	employeeID       uuid.UUID
}

func (suite *ReminderServiceTestSuite) SetupTest() {
	suite.mockApptRepo = &MockAppointmentRepository{}
	suite.mockEmployeeRepo = &MockEmployeeRepository{}
	suite.mockTenantRepo = &MockTenantRepository{}
	suite.mockMailer = &MockMailer{}
	suite.service = NewReminderService(suite.mockApptRepo, suite.mockEmployeeRepo, suite.mockTenantRepo, suite.mockMailer)
	suite.tenantID = uuid.New()
	suite.employeeID = uuid.New()

	suite.mockApptRepo.Test(suite.T())
	suite.mockEmployeeRepo.Test(suite.T())
	suite.mockTenantRepo.Test(suite.T())
	suite.mockMailer.Test(suite.T())
}

func (suite *ReminderServiceTestSuite) TearDownTest() {
	suite.mockApptRepo.AssertExpectations(suite.T())
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
	suite.mockTenantRepo.AssertExpectations(suite.T())
	suite.mockMailer.AssertExpectations(suite.T())
}

func TestReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}

func (suite *ReminderServiceTestSuite) sampleAppointment() *models.Appointment {
	return &models.Appointment{
		ID:           uuid.New(),
		TenantID:     suite.tenantID,
		EmployeeID:   suite.employeeID,
		EmployeeName: "Marta",
		ServiceName:  "Haircut",
		ServicePrice: 40,
		Date:         "2026-09-01",
		Time:         "10:00",
		ClientName:   "Ada Wong",
		ClientEmail:  "ada@example.com",
		Status:       models.StatusConfirmed,
	}
}

func (suite *ReminderServiceTestSuite) TestSendAppointmentReminder_MailerUnconfigured() {
	ctx := context.Background()

	suite.mockMailer.On("Configured").Return(false)

	results, err := suite.service.SendAppointmentReminder(ctx, suite.tenantID, uuid.New(), true, true)
	assert.Nil(suite.T(), results)
	assert.ErrorIs(suite.T(), err, ErrInvalidArgument)
}

func (suite *ReminderServiceTestSuite) TestSendAppointmentReminder_BothSent() {
	ctx := context.Background()
	appt := suite.sampleAppointment()

	suite.mockMailer.On("Configured").Return(true)
	suite.mockApptRepo.On("GetByID", ctx, suite.tenantID, appt.ID).Return(appt, nil)
	suite.mockTenantRepo.On("GetByID", ctx, suite.tenantID).Return(&models.Tenant{
		ID: suite.tenantID, Slug: "glow", Name: "Glow Salon", IsActive: true,
	}, nil)
	suite.mockEmployeeRepo.On("GetByID", ctx, suite.tenantID, suite.employeeID).Return(&models.Employee{
		ID: suite.employeeID, TenantID: suite.tenantID, Name: "Marta", Email: strPtr("marta@example.com"), IsActive: true,
	}, nil)
	suite.mockMailer.On("Send", ctx, "ada@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
	suite.mockMailer.On("Send", ctx, "marta@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	results, err := suite.service.SendAppointmentReminder(ctx, suite.tenantID, appt.ID, true, true)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "sent", results.Client)
	assert.Equal(suite.T(), "sent", results.Employee)
}

func (suite *ReminderServiceTestSuite) TestSendAppointmentReminder_EmployeeWithoutEmail() {
	ctx := context.Background()
	appt := suite.sampleAppointment()

	suite.mockMailer.On("Configured").Return(true)
	suite.mockApptRepo.On("GetByID", ctx, suite.tenantID, appt.ID).Return(appt, nil)
	suite.mockTenantRepo.On("GetByID", ctx, suite.tenantID).Return(&models.Tenant{
		ID: suite.tenantID, Slug: "glow", Name: "Glow Salon", IsActive: true,
	}, nil)
	suite.mockEmployeeRepo.On("GetByID", ctx, suite.tenantID, suite.employeeID).Return(&models.Employee{
		ID: suite.employeeID, TenantID: suite.tenantID, Name: "Marta", IsActive: true,
	}, nil)

	results, err := suite.service.SendAppointmentReminder(ctx, suite.tenantID, appt.ID, false, true)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), results.Client)
	assert.Equal(suite.T(), "no_email", results.Employee)
	suite.mockMailer.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReminderServiceTestSuite) TestSendAppointmentReminder_NotFound() {
	ctx := context.Background()
	apptID := uuid.New()

	suite.mockMailer.On("Configured").Return(true)
	suite.mockApptRepo.On("GetByID", ctx, suite.tenantID, apptID).Return(nil, pgx.ErrNoRows)

	results, err := suite.service.SendAppointmentReminder(ctx, suite.tenantID, apptID, true, true)
	assert.Nil(suite.T(), results)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *ReminderServiceTestSuite) TestSendDailyReminders_CountsOutcomes() {
	ctx := context.Background()
	appt := suite.sampleAppointment()

	suite.mockMailer.On("Configured").Return(true)
	suite.mockApptRepo.On("ListActiveOnDate", ctx, suite.tenantID, "2026-09-01").Return([]*models.Appointment{appt}, nil)
	suite.mockTenantRepo.On("GetByID", ctx, suite.tenantID).Return(&models.Tenant{
		ID: suite.tenantID, Slug: "glow", Name: "Glow Salon", IsActive: true,
	}, nil)
	suite.mockEmployeeRepo.On("GetByID", ctx, suite.tenantID, suite.employeeID).Return(&models.Employee{
		ID: suite.employeeID, TenantID: suite.tenantID, Name: "Marta", Email: strPtr("marta@example.com"), IsActive: true,
	}, nil)
	suite.mockMailer.On("Send", ctx, "ada@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
	suite.mockMailer.On("Send", ctx, "marta@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(errors.New("bounce"))

	report, err := suite.service.SendDailyReminders(ctx, suite.tenantID, "2026-09-01")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, report.Appointments)
	assert.Equal(suite.T(), 1, report.EmailsSent)
	assert.Equal(suite.T(), 1, report.EmailsFailed)
}

func (suite *ReminderServiceTestSuite) TestSendDailyReminders_EmptyDay() {
	ctx := context.Background()

	suite.mockMailer.On("Configured").Return(true)
	suite.mockApptRepo.On("ListActiveOnDate", ctx, suite.tenantID, "2026-09-01").Return([]*models.Appointment{}, nil)
	suite.mockTenantRepo.On("GetByID", ctx, suite.tenantID).Return(&models.Tenant{
		ID: suite.tenantID, Slug: "glow", Name: "Glow Salon", IsActive: true,
	}, nil)

	report, err := suite.service.SendDailyReminders(ctx, suite.tenantID, "2026-09-01")
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), report.Appointments)
	assert.Zero(suite.T(), report.EmailsSent)
}
