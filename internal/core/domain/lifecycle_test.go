package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteStatusTransitions(t *testing.T) {
	assert.True(t, QuoteDraft.CanTransitionTo(QuoteSent))
	assert.False(t, QuoteDraft.CanTransitionTo(QuoteAccepted), "draft may only move to sent")
	assert.True(t, QuoteSent.CanTransitionTo(QuoteAccepted))
	assert.True(t, QuoteSent.CanTransitionTo(QuoteRejected))
	assert.True(t, QuoteSent.CanTransitionTo(QuoteExpired))
	assert.True(t, QuoteAccepted.CanTransitionTo(QuoteExpired))

	// No resurrection.
	assert.False(t, QuoteRejected.CanTransitionTo(QuoteDraft))
	assert.False(t, QuoteRejected.CanTransitionTo(QuoteSent))
	assert.False(t, QuoteExpired.CanTransitionTo(QuoteSent))
}

func TestWorkOrderStatusTransitions(t *testing.T) {
	assert.True(t, WorkOrderPlanned.CanTransitionTo(WorkOrderInProgress))
	assert.True(t, WorkOrderPlanned.CanTransitionTo(WorkOrderCompleted))
	assert.True(t, WorkOrderInProgress.CanTransitionTo(WorkOrderCompleted))
	assert.True(t, WorkOrderCompleted.CanTransitionTo(WorkOrderInvoiced))

	// Invoiced is terminal.
	assert.False(t, WorkOrderInvoiced.CanTransitionTo(WorkOrderCompleted))
	assert.False(t, WorkOrderInvoiced.CanTransitionTo(WorkOrderPlanned))
	assert.False(t, WorkOrderPlanned.CanTransitionTo(WorkOrderInvoiced))
}

func TestInvoiceStatusTransitions(t *testing.T) {
	assert.True(t, InvoiceDraft.CanTransitionTo(InvoiceSent))
	assert.True(t, InvoiceDraft.CanTransitionTo(InvoiceCancelled))
	assert.True(t, InvoiceSent.CanTransitionTo(InvoicePaid))
	assert.True(t, InvoiceSent.CanTransitionTo(InvoiceOverdue))
	assert.True(t, InvoiceOverdue.CanTransitionTo(InvoicePaid))

	assert.False(t, InvoicePaid.CanTransitionTo(InvoiceDraft))
	assert.False(t, InvoiceCancelled.CanTransitionTo(InvoiceSent))
	assert.False(t, InvoiceSent.CanTransitionTo(InvoiceDraft))
}

func TestValidStatusValues(t *testing.T) {
	assert.True(t, ValidQuoteStatus(QuoteDraft))
	assert.False(t, ValidQuoteStatus(QuoteStatus("archived")))
	assert.True(t, ValidWorkOrderStatus(WorkOrderInProgress))
	assert.False(t, ValidWorkOrderStatus(WorkOrderStatus("done")))
	assert.True(t, ValidInvoiceStatus(InvoiceOverdue))
	assert.False(t, ValidInvoiceStatus(InvoiceStatus("archived")))
}

func TestUserRoles(t *testing.T) {
	assert.True(t, ValidUserRole(RoleTechnician))
	assert.False(t, ValidUserRole(UserRole("superuser")))
	assert.True(t, RoleFinancial.OneOf(RoleAdmin, RoleManager, RoleFinancial))
	assert.False(t, RoleTechnician.OneOf(RoleAdmin, RoleManager, RoleFinancial))
}
