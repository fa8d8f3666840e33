package pgsql

import (
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:    newPgxCompanyRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		CustomerRepo:   newPgxCustomerRepository(dbPool),
		ArticleRepo:    newPgxArticleRepository(dbPool),
		QuoteRepo:      newPgxQuoteRepository(dbPool),
		WorkOrderRepo:  newPgxWorkOrderRepository(dbPool),
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		AttachmentRepo: newPgxAttachmentRepository(dbPool),
		AuditLogRepo:   newPgxAuditLogRepository(dbPool),
	}
}
