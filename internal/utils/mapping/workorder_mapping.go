package mapping

import (
	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/models"
)

// ToModelWorkOrder converts a domain WorkOrder to a model WorkOrder (header
// only; lines and time entries are mapped separately).
func ToModelWorkOrder(d domain.WorkOrder) models.WorkOrder {
	return models.WorkOrder{
		WorkOrderID:     d.WorkOrderID,
		CompanyID:       d.CompanyID,
		WorkOrderNumber: d.WorkOrderNumber,
		QuoteID:         d.QuoteID,
		CustomerID:      d.CustomerID,
		LocationID:      d.LocationID,
		Title:           d.Title,
		Description:     d.Description,
		WorkDate:        d.WorkDate,
		Status:          string(d.Status),
		TechnicianID:    d.TechnicianID,
		WorkPerformed:   d.WorkPerformed,
		Subtotal:        d.Subtotal,
		VATAmount:       d.VATAmount,
		TotalAmount:     d.TotalAmount,
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorkOrder converts a model WorkOrder to a domain WorkOrder
func ToDomainWorkOrder(m models.WorkOrder) domain.WorkOrder {
	return domain.WorkOrder{
		WorkOrderID:     m.WorkOrderID,
		CompanyID:       m.CompanyID,
		WorkOrderNumber: m.WorkOrderNumber,
		QuoteID:         m.QuoteID,
		CustomerID:      m.CustomerID,
		LocationID:      m.LocationID,
		Title:           m.Title,
		Description:     m.Description,
		WorkDate:        m.WorkDate,
		Status:          domain.WorkOrderStatus(m.Status),
		TechnicianID:    m.TechnicianID,
		WorkPerformed:   m.WorkPerformed,
		Subtotal:        m.Subtotal,
		VATAmount:       m.VATAmount,
		TotalAmount:     m.TotalAmount,
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWorkOrderLine converts a domain WorkOrderLine to its model form
func ToModelWorkOrderLine(d domain.WorkOrderLine) models.WorkOrderLine {
	return models.WorkOrderLine{
		LineID:      d.LineID,
		WorkOrderID: d.WorkOrderID,
		ArticleID:   d.ArticleID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		VATRate:     d.VATRate,
		LineTotal:   d.LineTotal,
		SortOrder:   d.SortOrder,
	}
}

// ToDomainWorkOrderLine converts a model WorkOrderLine to its domain form
func ToDomainWorkOrderLine(m models.WorkOrderLine) domain.WorkOrderLine {
	return domain.WorkOrderLine{
		LineID:      m.LineID,
		WorkOrderID: m.WorkOrderID,
		ArticleID:   m.ArticleID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		VATRate:     m.VATRate,
		LineTotal:   m.LineTotal,
		SortOrder:   m.SortOrder,
	}
}

// ToDomainWorkOrderLineSlice converts a slice of model work order lines.
func ToDomainWorkOrderLineSlice(ms []models.WorkOrderLine) []domain.WorkOrderLine {
	out := make([]domain.WorkOrderLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainWorkOrderLine(m)
	}
	return out
}

// ToModelTimeEntry converts a domain TimeEntry to its model form
func ToModelTimeEntry(d domain.TimeEntry) models.TimeEntry {
	return models.TimeEntry{
		EntryID:     d.EntryID,
		CompanyID:   d.CompanyID,
		WorkOrderID: d.WorkOrderID,
		UserID:      d.UserID,
		EntryDate:   d.EntryDate,
		Hours:       d.Hours,
		HourlyRate:  d.HourlyRate,
		Description: d.Description,
		Billable:    d.Billable,
		VATRate:     d.VATRate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTimeEntry converts a model TimeEntry to its domain form
func ToDomainTimeEntry(m models.TimeEntry) domain.TimeEntry {
	return domain.TimeEntry{
		EntryID:     m.EntryID,
		CompanyID:   m.CompanyID,
		WorkOrderID: m.WorkOrderID,
		UserID:      m.UserID,
		EntryDate:   m.EntryDate,
		Hours:       m.Hours,
		HourlyRate:  m.HourlyRate,
		Description: m.Description,
		Billable:    m.Billable,
		VATRate:     m.VATRate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTimeEntrySlice converts a slice of model time entries.
func ToDomainTimeEntrySlice(ms []models.TimeEntry) []domain.TimeEntry {
	out := make([]domain.TimeEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTimeEntry(m)
	}
	return out
}
