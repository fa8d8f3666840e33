package billing

import (
	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// This package implements the single totals convention used across all
// document kinds: line totals are net (VAT-exclusive), VAT is added on top.
//
//	line_total = quantity * unit_price
//	vat        = sum(line_total * vat_rate / 100)
//	total      = subtotal + vat
//
// Sums are rounded to 2 decimal places at the document level.

var hundred = decimal.NewFromInt(100)

// Totals holds the three derived monetary fields of a document.
type Totals struct {
	Subtotal    decimal.Decimal
	VATAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// LineAmount is one net amount with its VAT rate, the common shape of quote
// lines, work order lines, time entries and invoice items.
type LineAmount struct {
	Net     decimal.Decimal
	VATRate decimal.Decimal
}

// LineTotal computes the net total of a line: quantity times unit price.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Compute derives document totals from a set of net line amounts.
// Recomputing from the same lines always yields identical results.
func Compute(lines []LineAmount) Totals {
	subtotal := decimal.Zero
	vat := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Net)
		vat = vat.Add(l.Net.Mul(l.VATRate).Div(hundred))
	}
	subtotal = subtotal.Round(2)
	vat = vat.Round(2)
	return Totals{
		Subtotal:    subtotal,
		VATAmount:   vat,
		TotalAmount: subtotal.Add(vat),
	}
}

// QuoteTotals derives totals from a quote's lines.
func QuoteTotals(lines []domain.QuoteLine) Totals {
	amounts := make([]LineAmount, len(lines))
	for i, l := range lines {
		amounts[i] = LineAmount{Net: l.LineTotal, VATRate: l.VATRate}
	}
	return Compute(amounts)
}

// WorkOrderTotals derives totals from a work order's material lines plus its
// billable time entries. Non-billable entries contribute nothing.
func WorkOrderTotals(lines []domain.WorkOrderLine, entries []domain.TimeEntry) Totals {
	amounts := make([]LineAmount, 0, len(lines)+len(entries))
	for _, l := range lines {
		amounts = append(amounts, LineAmount{Net: l.LineTotal, VATRate: l.VATRate})
	}
	for _, e := range entries {
		if !e.Billable {
			continue
		}
		amounts = append(amounts, LineAmount{Net: e.BillableAmount(), VATRate: e.VATRate})
	}
	return Compute(amounts)
}

// InvoiceTotals derives totals from an invoice's items.
func InvoiceTotals(items []domain.InvoiceItem) Totals {
	amounts := make([]LineAmount, len(items))
	for i, it := range items {
		amounts[i] = LineAmount{Net: it.TotalPrice, VATRate: it.VATRate}
	}
	return Compute(amounts)
}
