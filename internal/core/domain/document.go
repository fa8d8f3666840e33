package domain

// DocumentKind identifies the three numbered financial document types.
type DocumentKind string

const (
	DocumentKindQuote     DocumentKind = "QUOTE"
	DocumentKindWorkOrder DocumentKind = "WORK_ORDER"
	DocumentKindInvoice   DocumentKind = "INVOICE"
)
