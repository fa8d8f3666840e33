package models

import "github.com/shopspring/decimal"

// ArticleCategory is a row in the article_categories table.
type ArticleCategory struct {
	CategoryID  string `db:"category_id"`
	CompanyID   string `db:"company_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}

// Article is a row in the articles table. (company_id, code) is unique.
type Article struct {
	ArticleID     string           `db:"article_id"`
	CompanyID     string           `db:"company_id"`
	CategoryID    *string          `db:"category_id"`
	Code          string           `db:"code"`
	Name          string           `db:"name"`
	Description   string           `db:"description"`
	Unit          string           `db:"unit"`
	PurchasePrice *decimal.Decimal `db:"purchase_price"`
	SellingPrice  decimal.Decimal  `db:"selling_price"`
	VATRate       decimal.Decimal  `db:"vat_rate"`
	StockQuantity decimal.Decimal  `db:"stock_quantity"`
	MinStockLevel decimal.Decimal  `db:"min_stock_level"`
	Supplier      string           `db:"supplier"`
	SupplierCode  string           `db:"supplier_code"`
	IsActive      bool             `db:"is_active"`
	AuditFields
}
