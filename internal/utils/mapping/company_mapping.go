package mapping

import (
	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:         d.CompanyID,
		Name:              d.Name,
		Address:           d.Address,
		PostalCode:        d.PostalCode,
		City:              d.City,
		Country:           d.Country,
		Phone:             d.Phone,
		Email:             d.Email,
		VATNumber:         d.VATNumber,
		InvoicePrefix:     d.InvoicePrefix,
		QuotePrefix:       d.QuotePrefix,
		WorkOrderPrefix:   d.WorkOrderPrefix,
		DefaultVATRate:    d.DefaultVATRate,
		BankAccount:       d.BankAccount,
		ChamberOfCommerce: d.ChamberOfCommerce,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:         m.CompanyID,
		Name:              m.Name,
		Address:           m.Address,
		PostalCode:        m.PostalCode,
		City:              m.City,
		Country:           m.Country,
		Phone:             m.Phone,
		Email:             m.Email,
		VATNumber:         m.VATNumber,
		InvoicePrefix:     m.InvoicePrefix,
		QuotePrefix:       m.QuotePrefix,
		WorkOrderPrefix:   m.WorkOrderPrefix,
		DefaultVATRate:    m.DefaultVATRate,
		BankAccount:       m.BankAccount,
		ChamberOfCommerce: m.ChamberOfCommerce,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
