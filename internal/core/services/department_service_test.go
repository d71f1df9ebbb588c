package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/markpedia/mpos_backend/internal/apperrors"
	"github.com/markpedia/mpos_backend/internal/core/domain"
	portssvc "github.com/markpedia/mpos_backend/internal/core/ports/services"
	"github.com/markpedia/mpos_backend/internal/core/services"
	"github.com/markpedia/mpos_backend/internal/dto"
)

type DepartmentServiceTestSuite struct {
	suite.Suite
	mockDeptRepo *MockDepartmentRepository
	mockUserRepo *MockUserRepository
	service      portssvc.DepartmentSvcFacade

	admin   *domain.User
	manager *domain.User
}

func (suite *DepartmentServiceTestSuite) SetupTest() {
	suite.mockDeptRepo = new(MockDepartmentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewDepartmentService(suite.mockDeptRepo, suite.mockUserRepo)

	suite.admin = &domain.User{UserID: uuid.NewString(), Name: "Admin", Role: domain.RoleAdmin}
	suite.manager = &domain.User{UserID: uuid.NewString(), Name: "Manager", Role: domain.RoleManager}
}

func (suite *DepartmentServiceTestSuite) TestCreateDepartment_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.UserID).Return(suite.admin, nil).Once()
	suite.mockDeptRepo.On("SaveDepartment", ctx, mock.MatchedBy(func(dept domain.Department) bool {
		return dept.Name == "Logistics" && dept.IsActive && dept.Version == 1
	})).Return(nil).Once()

	created, err := suite.service.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Logistics"}, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.DepartmentID)
	suite.True(created.IsActive)
	suite.mockDeptRepo.AssertExpectations(suite.T())
}

func (suite *DepartmentServiceTestSuite) TestCreateDepartment_NonAdminForbidden() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.manager.UserID).Return(suite.manager, nil).Once()

	created, err := suite.service.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Logistics"}, suite.manager.UserID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockDeptRepo.AssertNotCalled(suite.T(), "SaveDepartment", mock.Anything, mock.Anything)
}

func (suite *DepartmentServiceTestSuite) TestCreateDepartment_UnknownActor() {
	ctx := context.Background()
	actorID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, actorID).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Logistics"}, actorID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *DepartmentServiceTestSuite) TestListDepartments_NilBecomesEmpty() {
	ctx := context.Background()
	suite.mockDeptRepo.On("ListDepartments", ctx, false).Return(nil, nil).Once()

	departments, err := suite.service.ListDepartments(ctx, false)

	suite.Require().NoError(err)
	suite.NotNil(departments)
	suite.Empty(departments)
}

func (suite *DepartmentServiceTestSuite) TestDeactivateDepartment_Success() {
	ctx := context.Background()
	dept := &domain.Department{DepartmentID: uuid.NewString(), Name: "Archive", IsActive: true, Version: 3}
	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.UserID).Return(suite.admin, nil).Once()
	suite.mockDeptRepo.On("FindDepartmentByID", ctx, dept.DepartmentID).Return(dept, nil).Once()
	suite.mockDeptRepo.On("SetDepartmentActive", ctx, dept, false, suite.admin.UserID).Return(nil).Once()

	err := suite.service.DeactivateDepartment(ctx, dept.DepartmentID, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.mockDeptRepo.AssertExpectations(suite.T())
}

func (suite *DepartmentServiceTestSuite) TestDeactivateDepartment_ConcurrentModification() {
	ctx := context.Background()
	dept := &domain.Department{DepartmentID: uuid.NewString(), Name: "Archive", IsActive: true, Version: 3}
	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.UserID).Return(suite.admin, nil).Once()
	suite.mockDeptRepo.On("FindDepartmentByID", ctx, dept.DepartmentID).Return(dept, nil).Once()
	suite.mockDeptRepo.On("SetDepartmentActive", ctx, dept, false, suite.admin.UserID).
		Return(apperrors.ErrConcurrentModification).Once()

	err := suite.service.DeactivateDepartment(ctx, dept.DepartmentID, suite.admin.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
}

func TestDepartmentService(t *testing.T) {
	suite.Run(t, new(DepartmentServiceTestSuite))
}
