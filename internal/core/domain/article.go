package domain

import "github.com/shopspring/decimal"

// ArticleCategory groups articles within a company.
type ArticleCategory struct {
	CategoryID  string `json:"categoryID"` // Primary Key (UUID)
	CompanyID   string `json:"companyID"`  // FK -> companies.company_id (NON-NULL)
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// Article represents a sellable product or material. (CompanyID, Code) is
// unique per company.
type Article struct {
	ArticleID     string           `json:"articleID"` // Primary Key (UUID)
	CompanyID     string           `json:"companyID"` // FK -> companies.company_id (NON-NULL)
	CategoryID    *string          `json:"categoryID"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Unit          string           `json:"unit"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal  `json:"sellingPrice"`
	VATRate       decimal.Decimal  `json:"vatRate"` // Percentage, e.g. 21.00
	StockQuantity decimal.Decimal  `json:"stockQuantity"`
	MinStockLevel decimal.Decimal  `json:"minStockLevel"`
	Supplier      string           `json:"supplier"`
	SupplierCode  string           `json:"supplierCode"`
	IsActive      bool             `json:"isActive"`
	AuditFields
}

// IsLowStock reports whether the article's stock is at or below its
// configured minimum.
func (a Article) IsLowStock() bool {
	return a.StockQuantity.LessThanOrEqual(a.MinStockLevel)
}
