package mapping

import (
	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:    d.CustomerID,
		CompanyID:     d.CompanyID,
		CompanyName:   d.CompanyName,
		ContactPerson: d.ContactPerson,
		Email:         d.Email,
		Phone:         d.Phone,
		Mobile:        d.Mobile,
		Address:       d.Address,
		PostalCode:    d.PostalCode,
		City:          d.City,
		Country:       d.Country,
		VATNumber:     d.VATNumber,
		PaymentTerms:  d.PaymentTerms,
		CreditLimit:   d.CreditLimit,
		Notes:         d.Notes,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:    m.CustomerID,
		CompanyID:     m.CompanyID,
		CompanyName:   m.CompanyName,
		ContactPerson: m.ContactPerson,
		Email:         m.Email,
		Phone:         m.Phone,
		Mobile:        m.Mobile,
		Address:       m.Address,
		PostalCode:    m.PostalCode,
		City:          m.City,
		Country:       m.Country,
		VATNumber:     m.VATNumber,
		PaymentTerms:  m.PaymentTerms,
		CreditLimit:   m.CreditLimit,
		Notes:         m.Notes,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLocation converts a domain Location to a model Location
func ToModelLocation(d domain.Location) models.Location {
	return models.Location{
		LocationID:         d.LocationID,
		CustomerID:         d.CustomerID,
		Name:               d.Name,
		Address:            d.Address,
		PostalCode:         d.PostalCode,
		City:               d.City,
		Country:            d.Country,
		ContactPerson:      d.ContactPerson,
		Phone:              d.Phone,
		AccessInstructions: d.AccessInstructions,
		Notes:              d.Notes,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLocation converts a model Location to a domain Location
func ToDomainLocation(m models.Location) domain.Location {
	return domain.Location{
		LocationID:         m.LocationID,
		CustomerID:         m.CustomerID,
		Name:               m.Name,
		Address:            m.Address,
		PostalCode:         m.PostalCode,
		City:               m.City,
		Country:            m.Country,
		ContactPerson:      m.ContactPerson,
		Phone:              m.Phone,
		AccessInstructions: m.AccessInstructions,
		Notes:              m.Notes,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
