package services

import (
	"context"
	"testing"

	"slotbook/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BlockedTimeServiceTestSuite struct {
	suite.Suite
	mockBlockRepo    *MockBlockedTimeRepository
	mockApptRepo     *MockAppointmentRepository
	mockEmployeeRepo *MockEmployeeRepository
	service          BlockedTimeService
	tenantID         uuid.UUID
	employeeID       uuid.UUID
}

func (suite *BlockedTimeServiceTestSuite) SetupTest() {
	suite.mockBlockRepo = &MockBlockedTimeRepository{}
	suite.mockApptRepo = &MockAppointmentRepository{}
	suite.mockEmployeeRepo = &MockEmployeeRepository{}
	suite.service = NewBlockedTimeService(suite.mockBlockRepo, suite.mockApptRepo, suite.mockEmployeeRepo)
	suite.tenantID = uuid.New()
	suite.employeeID = uuid.New()

	suite.mockBlockRepo.Test(suite.T())
	suite.mockApptRepo.Test(suite.T())
	suite.mockEmployeeRepo.Test(suite.T())
}

func (suite *BlockedTimeServiceTestSuite) TearDownTest() {
	suite.mockBlockRepo.AssertExpectations(suite.T())
	suite.mockApptRepo.AssertExpectations(suite.T())
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func TestBlockedTimeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BlockedTimeServiceTestSuite))
}

func (suite *BlockedTimeServiceTestSuite) expectEmployee() {
	suite.mockEmployeeRepo.On("GetByID", context.Background(), suite.tenantID, suite.employeeID).Return(&models.Employee{
		ID: suite.employeeID, TenantID: suite.tenantID, Name: "Marta", IsActive: true,
	}, nil)
}

func (suite *BlockedTimeServiceTestSuite) TestCreate_WholeDay() {
	ctx := context.Background()

	suite.expectEmployee()
	suite.mockApptRepo.On("HasActiveOnDate", ctx, suite.tenantID, suite.employeeID, "2026-09-01").Return(false, nil)
	suite.mockBlockRepo.On("Create", ctx, mock.AnythingOfType("*models.BlockedTime")).Return(nil).Run(func(args mock.Arguments) {
		block := args.Get(1).(*models.BlockedTime)
		assert.True(suite.T(), block.IsWholeDay)
		assert.Nil(suite.T(), block.StartTime)
		assert.Nil(suite.T(), block.EndTime)
	})

	block, err := suite.service.Create(ctx, &CreateBlockedTimeRequest{
		TenantID: suite.tenantID, EmployeeID: suite.employeeID, Date: "2026-09-01", Reason: "vacation",
	})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), block.IsWholeDay)
}

func (suite *BlockedTimeServiceTestSuite) TestCreate_WholeDayOverExistingAppointments() {
	ctx := context.Background()

	suite.expectEmployee()
	suite.mockApptRepo.On("HasActiveOnDate", ctx, suite.tenantID, suite.employeeID, "2026-09-01").Return(true, nil)

	block, err := suite.service.Create(ctx, &CreateBlockedTimeRequest{
		TenantID: suite.tenantID, EmployeeID: suite.employeeID, Date: "2026-09-01", Reason: "vacation",
	})
	assert.Nil(suite.T(), block)
	assert.ErrorIs(suite.T(), err, ErrConflict)
	assert.Contains(suite.T(), err.Error(), "existing appointments")
}

func (suite *BlockedTimeServiceTestSuite) TestCreate_Range() {
	ctx := context.Background()

	suite.expectEmployee()
	suite.mockApptRepo.On("HasActiveInRange", ctx, suite.tenantID, suite.employeeID, "2026-09-01", "12:00", "13:00").Return(false, nil)
	suite.mockBlockRepo.On("Create", ctx, mock.AnythingOfType("*models.BlockedTime")).Return(nil)

	block, err := suite.service.Create(ctx, &CreateBlockedTimeRequest{
		TenantID: suite.tenantID, EmployeeID: suite.employeeID, Date: "2026-09-01",
		StartTime: strPtr("12:00"), EndTime: strPtr("13:00"), Reason: "lunch",
	})
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), block.IsWholeDay)
	assert.Equal(suite.T(), "12:00", *block.StartTime)
}

func (suite *BlockedTimeServiceTestSuite) TestCreate_RangeOverExistingAppointments() {
	ctx := context.Background()

	suite.expectEmployee()
	suite.mockApptRepo.On("HasActiveInRange", ctx, suite.tenantID, suite.employeeID, "2026-09-01", "12:00", "13:00").Return(true, nil)

	block, err := suite.service.Create(ctx, &CreateBlockedTimeRequest{
		TenantID: suite.tenantID, EmployeeID: suite.employeeID, Date: "2026-09-01",
		StartTime: strPtr("12:00"), EndTime: strPtr("13:00"), Reason: "lunch",
	})
	assert.Nil(suite.T(), block)
	assert.ErrorIs(suite.T(), err, ErrConflict)
}

func (suite *BlockedTimeServiceTestSuite) TestCreate_OnlyStartTime() {
	ctx := context.Background()

	block, err := suite.service.Create(ctx, &CreateBlockedTimeRequest{
		TenantID: suite.tenantID, EmployeeID: suite.employeeID, Date: "2026-09-01",
		StartTime: strPtr("12:00"),
	})
	assert.Nil(suite.T(), block)
	assert.ErrorIs(suite.T(), err, ErrInvalidArgument)
}

func (suite *BlockedTimeServiceTestSuite) TestCreate_StartNotBeforeEnd() {
	ctx := context.Background()

	block, err := suite.service.Create(ctx, &CreateBlockedTimeRequest{
		TenantID: suite.tenantID, EmployeeID: suite.employeeID, Date: "2026-09-01",
		StartTime: strPtr("13:00"), EndTime: strPtr("12:00"),
	})
	assert.Nil(suite.T(), block)
	assert.ErrorIs(suite.T(), err, ErrInvalidArgument)
}

func (suite *BlockedTimeServiceTestSuite) TestCreate_EmployeeNotFound() {
	ctx := context.Background()

	suite.mockEmployeeRepo.On("GetByID", ctx, suite.tenantID, suite.employeeID).Return(nil, pgx.ErrNoRows)

	block, err := suite.service.Create(ctx, &CreateBlockedTimeRequest{
		TenantID: suite.tenantID, EmployeeID: suite.employeeID, Date: "2026-09-01",
	})
	assert.Nil(suite.T(), block)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *BlockedTimeServiceTestSuite) TestUpdate_SkipsAppointmentGuard() {
	ctx := context.Background()
	blockID := uuid.New()

	suite.mockBlockRepo.On("GetByID", ctx, suite.tenantID, blockID).Return(&models.BlockedTime{
		ID: blockID, TenantID: suite.tenantID, EmployeeID: suite.employeeID,
		Date: "2026-09-01", IsWholeDay: true, Reason: "vacation",
	}, nil)
	suite.mockBlockRepo.On("Update", ctx, mock.AnythingOfType("*models.BlockedTime")).Return(nil).Run(func(args mock.Arguments) {
		block := args.Get(1).(*models.BlockedTime)
		assert.False(suite.T(), block.IsWholeDay)
		assert.Equal(suite.T(), "09:00", *block.StartTime)
	})

	// Shrinking a block around existing bookings does not re-run the guard,
	// so the appointment repo is never consulted
	block, err := suite.service.Update(ctx, &UpdateBlockedTimeRequest{
		TenantID: suite.tenantID, ID: blockID, EmployeeID: suite.employeeID,
		Date: "2026-09-01", StartTime: strPtr("09:00"), EndTime: strPtr("11:00"), Reason: "meeting",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "meeting", block.Reason)
	suite.mockApptRepo.AssertNotCalled(suite.T(), "HasActiveOnDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockApptRepo.AssertNotCalled(suite.T(), "HasActiveInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BlockedTimeServiceTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()
	blockID := uuid.New()

	suite.mockBlockRepo.On("GetByID", ctx, suite.tenantID, blockID).Return(nil, pgx.ErrNoRows)

	block, err := suite.service.Update(ctx, &UpdateBlockedTimeRequest{
		TenantID: suite.tenantID, ID: blockID, EmployeeID: suite.employeeID, Date: "2026-09-01",
	})
	assert.Nil(suite.T(), block)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *BlockedTimeServiceTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	blockID := uuid.New()

	suite.mockBlockRepo.On("GetByID", ctx, suite.tenantID, blockID).Return(nil, pgx.ErrNoRows)

	err := suite.service.Delete(ctx, suite.tenantID, blockID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *BlockedTimeServiceTestSuite) TestDelete_Success() {
	ctx := context.Background()
	blockID := uuid.New()

	suite.mockBlockRepo.On("GetByID", ctx, suite.tenantID, blockID).Return(&models.BlockedTime{
		ID: blockID, TenantID: suite.tenantID, EmployeeID: suite.employeeID, Date: "2026-09-01", IsWholeDay: true,
	}, nil)
	suite.mockBlockRepo.On("Delete", ctx, suite.tenantID, blockID).Return(nil)

	err := suite.service.Delete(ctx, suite.tenantID, blockID)
	assert.NoError(suite.T(), err)
}

func (suite *BlockedTimeServiceTestSuite) TestList_PassesFilter() {
	ctx := context.Background()
	filter := models.BlockedTimeFilter{EmployeeID: suite.employeeID, DateFrom: "2026-09-01", DateTo: "2026-09-30"}

	suite.mockBlockRepo.On("List", ctx, suite.tenantID, filter).Return([]*models.BlockedTime{}, nil)

	blocks, err := suite.service.List(ctx, suite.tenantID, filter)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), blocks)
}
