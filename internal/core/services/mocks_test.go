package services_test

import (
	"context"
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, companyID string, userID string) (*domain.User, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, companyID string, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkLastLogin(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, companyID string, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, companyID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, companyID string, filter portsrepo.ListCustomersFilter) ([]domain.Customer, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindLocationByID(ctx context.Context, companyID string, customerID string, locationID string) (*domain.Location, error) {
	args := m.Called(ctx, companyID, customerID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockCustomerRepository) ListLocations(ctx context.Context, companyID string, customerID string) ([]domain.Location, error) {
	args := m.Called(ctx, companyID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockCustomerRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateLocation(ctx context.Context, location domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

// --- Mock ArticleRepository ---

type MockArticleRepository struct {
	mock.Mock
}

var _ portsrepo.ArticleRepositoryFacade = (*MockArticleRepository)(nil)

func (m *MockArticleRepository) FindArticleByID(ctx context.Context, companyID string, articleID string) (*domain.Article, error) {
	args := m.Called(ctx, companyID, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) FindArticleByCode(ctx context.Context, companyID string, code string) (*domain.Article, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) ListArticles(ctx context.Context, companyID string, filter portsrepo.ListArticlesFilter) ([]domain.Article, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockArticleRepository) SaveArticle(ctx context.Context, article domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) UpdateArticle(ctx context.Context, article domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) AdjustStock(ctx context.Context, companyID string, articleID string, delta decimal.Decimal, updatedByUserID string) (*domain.Article, error) {
	args := m.Called(ctx, companyID, articleID, delta, updatedByUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) FindCategoryByID(ctx context.Context, companyID string, categoryID string) (*domain.ArticleCategory, error) {
	args := m.Called(ctx, companyID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArticleCategory), args.Error(1)
}

func (m *MockArticleRepository) ListCategories(ctx context.Context, companyID string) ([]domain.ArticleCategory, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArticleCategory), args.Error(1)
}

func (m *MockArticleRepository) SaveCategory(ctx context.Context, category domain.ArticleCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockArticleRepository) UpdateCategory(ctx context.Context, category domain.ArticleCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// --- Mock QuoteRepository ---

type MockQuoteRepository struct {
	mock.Mock
}

var _ portsrepo.QuoteRepositoryFacade = (*MockQuoteRepository)(nil)

func (m *MockQuoteRepository) FindQuoteByID(ctx context.Context, companyID string, quoteID string) (*domain.Quote, error) {
	args := m.Called(ctx, companyID, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ListQuotes(ctx context.Context, companyID string, filter portsrepo.ListQuotesFilter) ([]domain.Quote, *string, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Quote), nextToken, args.Error(2)
}

func (m *MockQuoteRepository) SaveQuote(ctx context.Context, quote *domain.Quote, prefix string) error {
	args := m.Called(ctx, quote, prefix)
	return args.Error(0)
}

func (m *MockQuoteRepository) UpdateQuote(ctx context.Context, quote domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) ReplaceQuoteLines(ctx context.Context, quote domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) UpdateQuoteStatus(ctx context.Context, companyID string, quoteID string, status domain.QuoteStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, companyID, quoteID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockQuoteRepository) MarkExpiredQuotes(ctx context.Context, companyID string, asOf time.Time, updatedByUserID string) (int64, error) {
	args := m.Called(ctx, companyID, asOf, updatedByUserID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock WorkOrderRepository ---

type MockWorkOrderRepository struct {
	mock.Mock
}

var _ portsrepo.WorkOrderRepositoryFacade = (*MockWorkOrderRepository)(nil)

func (m *MockWorkOrderRepository) FindWorkOrderByID(ctx context.Context, companyID string, workOrderID string) (*domain.WorkOrder, error) {
	args := m.Called(ctx, companyID, workOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkOrder), args.Error(1)
}

func (m *MockWorkOrderRepository) FindWorkOrdersByIDs(ctx context.Context, companyID string, workOrderIDs []string) ([]domain.WorkOrder, error) {
	args := m.Called(ctx, companyID, workOrderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkOrder), args.Error(1)
}

func (m *MockWorkOrderRepository) ListWorkOrders(ctx context.Context, companyID string, filter portsrepo.ListWorkOrdersFilter) ([]domain.WorkOrder, *string, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.WorkOrder), nextToken, args.Error(2)
}

func (m *MockWorkOrderRepository) SaveWorkOrder(ctx context.Context, workOrder *domain.WorkOrder, prefix string) error {
	args := m.Called(ctx, workOrder, prefix)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) UpdateWorkOrder(ctx context.Context, workOrder domain.WorkOrder) error {
	args := m.Called(ctx, workOrder)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) ReplaceWorkOrderLines(ctx context.Context, workOrder domain.WorkOrder) error {
	args := m.Called(ctx, workOrder)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) UpdateWorkOrderStatus(ctx context.Context, companyID string, workOrderID string, status domain.WorkOrderStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, companyID, workOrderID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) FindTimeEntryByID(ctx context.Context, companyID string, entryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockWorkOrderRepository) ListTimeEntries(ctx context.Context, companyID string, workOrderID string) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, companyID, workOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockWorkOrderRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry, order domain.WorkOrder) error {
	args := m.Called(ctx, entry, order)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry, order domain.WorkOrder) error {
	args := m.Called(ctx, entry, order)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) DeleteTimeEntry(ctx context.Context, companyID string, entryID string, order domain.WorkOrder) error {
	args := m.Called(ctx, companyID, entryID, order)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, companyID string, filter portsrepo.ListInvoicesFilter) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), nextToken, args.Error(2)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice *domain.Invoice, prefix string) error {
	args := m.Called(ctx, invoice, prefix)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveInvoiceFromWorkOrders(ctx context.Context, invoice *domain.Invoice, prefix string, workOrderIDs []string, updatedByUserID string) error {
	args := m.Called(ctx, invoice, prefix, workOrderIDs, updatedByUserID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ReplaceInvoiceItems(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkOverdueInvoices(ctx context.Context, companyID string, asOf time.Time, updatedByUserID string) (int64, error) {
	args := m.Called(ctx, companyID, asOf, updatedByUserID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, companyID string, invoiceID string) error {
	args := m.Called(ctx, companyID, invoiceID)
	return args.Error(0)
}

// --- Mock AttachmentRepository ---

type MockAttachmentRepository struct {
	mock.Mock
}

var _ portsrepo.AttachmentRepositoryFacade = (*MockAttachmentRepository)(nil)

func (m *MockAttachmentRepository) FindAttachmentByID(ctx context.Context, companyID string, attachmentID string) (*domain.Attachment, error) {
	args := m.Called(ctx, companyID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListAttachmentsByEntity(ctx context.Context, companyID string, entityType string, entityID string) ([]domain.Attachment, error) {
	args := m.Called(ctx, companyID, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) DeleteAttachment(ctx context.Context, companyID string, attachmentID string) error {
	args := m.Called(ctx, companyID, attachmentID)
	return args.Error(0)
}

// --- Mock AuditLogRepository ---

type MockAuditLogRepository struct {
	mock.Mock
}

var _ portsrepo.AuditLogRepositoryFacade = (*MockAuditLogRepository)(nil)

func (m *MockAuditLogRepository) ListAuditLogs(ctx context.Context, companyID string, filter portsrepo.ListAuditLogsFilter) ([]domain.AuditLog, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

func (m *MockAuditLogRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
