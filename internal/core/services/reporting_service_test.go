package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/markpedia/mpos_backend/internal/apperrors"
	"github.com/markpedia/mpos_backend/internal/core/domain"
	portssvc "github.com/markpedia/mpos_backend/internal/core/ports/services"
	"github.com/markpedia/mpos_backend/internal/core/services"
	"github.com/markpedia/mpos_backend/internal/dto"
)

// MockReportingRepository is a mock implementation of portsrepo.ReportingRepository
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SummarizeCashRequests(ctx context.Context, from, to time.Time, departmentID string) ([]domain.CashRequestSummaryRow, error) {
	args := m.Called(ctx, from, to, departmentID)
	var rows []domain.CashRequestSummaryRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.CashRequestSummaryRow)
	}
	return rows, args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockUserRepo      *MockUserRepository
	service           portssvc.ReportingService

	finance  *domain.User
	employee *domain.User
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockUserRepo)

	suite.finance = &domain.User{UserID: uuid.NewString(), Name: "Fin", Role: domain.RoleFinance}
	suite.employee = &domain.User{UserID: uuid.NewString(), Name: "Emp", Role: domain.RoleEmployee}
}

func (suite *ReportingServiceTestSuite) TestGetCashRequestSummary_Success() {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.CashRequestSummaryRow{
		{Status: domain.StatusPaid, DepartmentID: "dept-1", Count: 3, TotalAmount: decimal.NewFromInt(450000), CurrencyCode: "XAF"},
		{Status: domain.StatusDeclined, DepartmentID: "dept-1", Count: 1, TotalAmount: decimal.NewFromInt(90000), CurrencyCode: "XAF"},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.finance.UserID).Return(suite.finance, nil).Once()
	suite.mockReportingRepo.On("SummarizeCashRequests", ctx, from, to, "dept-1").Return(rows, nil).Once()

	report, err := suite.service.GetCashRequestSummary(ctx, dto.CashRequestSummaryRequest{
		From: from, To: to, DepartmentID: "dept-1",
	}, suite.finance.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Require().Len(report.Buckets, 2)
	suite.Equal("Paid", report.Buckets[0].StatusLabel)
	suite.True(report.Buckets[0].TotalAmount.Equal(decimal.NewFromInt(450000)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetCashRequestSummary_EmployeeForbidden() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.employee.UserID).Return(suite.employee, nil).Once()

	report, err := suite.service.GetCashRequestSummary(ctx, dto.CashRequestSummaryRequest{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}, suite.employee.UserID)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "SummarizeCashRequests", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetCashRequestSummary_InvertedRange() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.finance.UserID).Return(suite.finance, nil).Once()

	report, err := suite.service.GetCashRequestSummary(ctx, dto.CashRequestSummaryRequest{
		From: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}, suite.finance.UserID)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
