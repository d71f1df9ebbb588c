package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/markpedia/mpos_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CashRequestRepo: newPgxCashRequestRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		DepartmentRepo:  newPgxDepartmentRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
	}
}
