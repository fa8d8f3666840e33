package services

import (
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/platform/config"
)

// NewServiceContainer wires all application services against a repository
// provider. The audit log service is built first so every other service can
// record into the trail.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	audit := NewAuditLogService(repos.AuditLogRepo, repos.UserRepo)

	return &portssvc.ServiceContainer{
		Auth:       NewAuthService(cfg, repos.UserRepo, repos.CompanyRepo, audit),
		Company:    NewCompanyService(repos.CompanyRepo, repos.UserRepo, audit),
		User:       NewUserService(repos.UserRepo, audit),
		Customer:   NewCustomerService(repos.CustomerRepo, repos.UserRepo, audit, cfg.DefaultPaymentTermsDays),
		Article:    NewArticleService(repos.ArticleRepo, repos.CompanyRepo, repos.UserRepo, audit),
		Quote:      NewQuoteService(repos.QuoteRepo, repos.CustomerRepo, repos.CompanyRepo, repos.UserRepo, audit, cfg.QuoteValidityDays),
		WorkOrder:  NewWorkOrderService(repos.WorkOrderRepo, repos.QuoteRepo, repos.CustomerRepo, repos.CompanyRepo, repos.UserRepo, audit),
		Invoice:    NewInvoiceService(repos.InvoiceRepo, repos.WorkOrderRepo, repos.CustomerRepo, repos.CompanyRepo, repos.UserRepo, audit),
		Attachment: NewAttachmentService(repos.AttachmentRepo, repos.QuoteRepo, repos.WorkOrderRepo, repos.InvoiceRepo, repos.UserRepo, audit),
		AuditLog:   audit,
	}
}
