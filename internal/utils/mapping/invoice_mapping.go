package mapping

import (
	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice (header only;
// items are mapped separately).
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:        d.InvoiceID,
		CompanyID:        d.CompanyID,
		InvoiceNumber:    d.InvoiceNumber,
		CustomerID:       d.CustomerID,
		InvoiceType:      string(d.InvoiceType),
		InvoiceDate:      d.InvoiceDate,
		DueDate:          d.DueDate,
		Status:           string(d.Status),
		Subtotal:         d.Subtotal,
		VATAmount:        d.VATAmount,
		TotalAmount:      d.TotalAmount,
		PaidAmount:       d.PaidAmount,
		PaymentDate:      d.PaymentDate,
		PaymentReference: d.PaymentReference,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:        m.InvoiceID,
		CompanyID:        m.CompanyID,
		InvoiceNumber:    m.InvoiceNumber,
		CustomerID:       m.CustomerID,
		InvoiceType:      domain.InvoiceType(m.InvoiceType),
		InvoiceDate:      m.InvoiceDate,
		DueDate:          m.DueDate,
		Status:           domain.InvoiceStatus(m.Status),
		Subtotal:         m.Subtotal,
		VATAmount:        m.VATAmount,
		TotalAmount:      m.TotalAmount,
		PaidAmount:       m.PaidAmount,
		PaymentDate:      m.PaymentDate,
		PaymentReference: m.PaymentReference,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceItem converts a domain InvoiceItem to its model form
func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:      d.ItemID,
		InvoiceID:   d.InvoiceID,
		WorkOrderID: d.WorkOrderID,
		ArticleID:   d.ArticleID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		VATRate:     d.VATRate,
		TotalPrice:  d.TotalPrice,
		SortOrder:   d.SortOrder,
	}
}

// ToDomainInvoiceItem converts a model InvoiceItem to its domain form
func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:      m.ItemID,
		InvoiceID:   m.InvoiceID,
		WorkOrderID: m.WorkOrderID,
		ArticleID:   m.ArticleID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		VATRate:     m.VATRate,
		TotalPrice:  m.TotalPrice,
		SortOrder:   m.SortOrder,
	}
}

// ToDomainInvoiceItemSlice converts a slice of model invoice items.
func ToDomainInvoiceItemSlice(ms []models.InvoiceItem) []domain.InvoiceItem {
	out := make([]domain.InvoiceItem, len(ms))
	for i, m := range ms {
		out[i] = ToDomainInvoiceItem(m)
	}
	return out
}
