package billing_test

import (
	"testing"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/utils/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	assert.True(t, billing.LineTotal(d("2.5"), d("40")).Equal(d("100")))
	assert.True(t, billing.LineTotal(d("3"), d("19.99")).Equal(d("59.97")))
}

func TestComputeNetConvention(t *testing.T) {
	totals := billing.Compute([]billing.LineAmount{
		{Net: d("100.00"), VATRate: d("21")},
		{Net: d("50.00"), VATRate: d("21")},
	})

	assert.True(t, totals.Subtotal.Equal(d("150.00")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.VATAmount.Equal(d("31.50")), "vat %s", totals.VATAmount)
	assert.True(t, totals.TotalAmount.Equal(d("181.50")), "total %s", totals.TotalAmount)
}

func TestComputeMixedRates(t *testing.T) {
	totals := billing.Compute([]billing.LineAmount{
		{Net: d("100.00"), VATRate: d("21")},
		{Net: d("100.00"), VATRate: d("9")},
		{Net: d("10.00"), VATRate: d("0")},
	})

	assert.True(t, totals.Subtotal.Equal(d("210.00")))
	assert.True(t, totals.VATAmount.Equal(d("30.00")))
	assert.True(t, totals.TotalAmount.Equal(d("240.00")))
}

func TestComputeIsIdempotent(t *testing.T) {
	lines := []billing.LineAmount{
		{Net: d("33.33"), VATRate: d("21")},
		{Net: d("66.67"), VATRate: d("9")},
	}

	first := billing.Compute(lines)
	second := billing.Compute(lines)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.VATAmount.Equal(second.VATAmount))
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	// total == subtotal + vat exactly
	assert.True(t, first.TotalAmount.Equal(first.Subtotal.Add(first.VATAmount)))
}

func TestComputeRoundsToCent(t *testing.T) {
	// 0.333 * 21% = 0.06993 -> must land on a whole cent after summing.
	totals := billing.Compute([]billing.LineAmount{
		{Net: d("0.333"), VATRate: d("21")},
	})
	assert.True(t, totals.Subtotal.Equal(d("0.33")))
	assert.True(t, totals.VATAmount.Equal(d("0.07")))
	assert.True(t, totals.TotalAmount.Equal(d("0.40")))
}

func TestComputeEmpty(t *testing.T) {
	totals := billing.Compute(nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.VATAmount.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
}

func TestWorkOrderTotalsFoldBillableTime(t *testing.T) {
	lines := []domain.WorkOrderLine{
		{Quantity: d("2"), UnitPrice: d("25.00"), VATRate: d("21"), LineTotal: d("50.00")},
	}
	entries := []domain.TimeEntry{
		{Hours: d("2"), HourlyRate: d("50.00"), Billable: true, VATRate: d("21")},
		{Hours: d("8"), HourlyRate: d("50.00"), Billable: false, VATRate: d("21")}, // ignored
	}

	totals := billing.WorkOrderTotals(lines, entries)

	assert.True(t, totals.Subtotal.Equal(d("150.00")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.VATAmount.Equal(d("31.50")))
	assert.True(t, totals.TotalAmount.Equal(d("181.50")))
}

func TestQuoteAndInvoiceTotalsAgree(t *testing.T) {
	// The same net amounts must produce the same totals regardless of the
	// document kind carrying them.
	qt := billing.QuoteTotals([]domain.QuoteLine{
		{LineTotal: d("80.00"), VATRate: d("21")},
		{LineTotal: d("20.00"), VATRate: d("9")},
	})
	it := billing.InvoiceTotals([]domain.InvoiceItem{
		{TotalPrice: d("80.00"), VATRate: d("21")},
		{TotalPrice: d("20.00"), VATRate: d("9")},
	})

	assert.True(t, qt.Subtotal.Equal(it.Subtotal))
	assert.True(t, qt.VATAmount.Equal(it.VATAmount))
	assert.True(t, qt.TotalAmount.Equal(it.TotalAmount))
}
