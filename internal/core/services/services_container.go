package services

import (
	portsrepo "github.com/markpedia/mpos_backend/internal/core/ports/repositories"
	portssvc "github.com/markpedia/mpos_backend/internal/core/ports/services"
	"github.com/markpedia/mpos_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Department = NewDepartmentService(repos.DepartmentRepo, repos.UserRepo)
	container.CashRequest = NewCashRequestService(repos.CashRequestRepo, repos.UserRepo, repos.DepartmentRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.UserRepo)

	// Auth services sit on top of the user service
	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Compile time checks that each service satisfies its facade
var (
	_ portssvc.CashRequestSvcFacade = (*cashRequestService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.DepartmentSvcFacade  = (*departmentService)(nil)
	_ portssvc.ReportingService     = (*reportingService)(nil)
)
