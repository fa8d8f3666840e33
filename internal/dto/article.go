package dto

import (
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateArticleRequest defines the data needed to create a new article.
type CreateArticleRequest struct {
	CategoryID    *string          `json:"categoryID"`
	Code          string           `json:"code" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Unit          string           `json:"unit"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal  `json:"sellingPrice" binding:"required"`
	VATRate       *decimal.Decimal `json:"vatRate"` // Defaults to the company rate when omitted
	StockQuantity *decimal.Decimal `json:"stockQuantity"`
	MinStockLevel *decimal.Decimal `json:"minStockLevel"`
	Supplier      string           `json:"supplier"`
	SupplierCode  string           `json:"supplierCode"`
}

// UpdateArticleRequest defines the data allowed for updating an article.
// Pointers distinguish omitted fields from zero-value updates.
type UpdateArticleRequest struct {
	CategoryID    *string          `json:"categoryID"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Unit          *string          `json:"unit"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice"`
	VATRate       *decimal.Decimal `json:"vatRate"`
	MinStockLevel *decimal.Decimal `json:"minStockLevel"`
	Supplier      *string          `json:"supplier"`
	SupplierCode  *string          `json:"supplierCode"`
	IsActive      *bool            `json:"isActive"`
}

// AdjustStockRequest defines a relative stock mutation. Delta may be negative
// but must not take the stock below zero.
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta" binding:"required"`
	Reason string          `json:"reason"`
}

// ArticleResponse defines the data returned for an article.
type ArticleResponse struct {
	ArticleID     string           `json:"articleID"`
	CategoryID    *string          `json:"categoryID,omitempty"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Unit          string           `json:"unit"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
	SellingPrice  decimal.Decimal  `json:"sellingPrice"`
	VATRate       decimal.Decimal  `json:"vatRate"`
	StockQuantity decimal.Decimal  `json:"stockQuantity"`
	MinStockLevel decimal.Decimal  `json:"minStockLevel"`
	Supplier      string           `json:"supplier"`
	SupplierCode  string           `json:"supplierCode"`
	IsActive      bool             `json:"isActive"`
	IsLowStock    bool             `json:"isLowStock"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToArticleResponse converts a domain.Article to ArticleResponse DTO.
func ToArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ArticleID:     a.ArticleID,
		CategoryID:    a.CategoryID,
		Code:          a.Code,
		Name:          a.Name,
		Description:   a.Description,
		Unit:          a.Unit,
		PurchasePrice: a.PurchasePrice,
		SellingPrice:  a.SellingPrice,
		VATRate:       a.VATRate,
		StockQuantity: a.StockQuantity,
		MinStockLevel: a.MinStockLevel,
		Supplier:      a.Supplier,
		SupplierCode:  a.SupplierCode,
		IsActive:      a.IsActive,
		IsLowStock:    a.IsLowStock(),
		CreatedAt:     a.CreatedAt,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// ListArticlesParams defines query parameters for listing articles.
type ListArticlesParams struct {
	Limit           int    `form:"limit,default=20"`
	Offset          int    `form:"offset,default=0"`
	Search          string `form:"search"`
	CategoryID      string `form:"categoryID"`
	LowStockOnly    bool   `form:"lowStockOnly"`
	IncludeInactive bool   `form:"includeInactive"`
}

// ListArticlesResponse wraps the list of articles.
type ListArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
}

// ToListArticlesResponse converts a slice of domain.Article to DTO.
func ToListArticlesResponse(as []domain.Article) ListArticlesResponse {
	res := make([]ArticleResponse, len(as))
	for i, a := range as {
		res[i] = ToArticleResponse(&a)
	}
	return ListArticlesResponse{Articles: res}
}

// --- Article category DTOs ---

// CreateCategoryRequest defines the data needed to create an article category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse defines the data returned for an article category.
type CategoryResponse struct {
	CategoryID  string    `json:"categoryID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToCategoryResponse converts a domain.ArticleCategory to CategoryResponse DTO.
func ToCategoryResponse(c *domain.ArticleCategory) CategoryResponse {
	return CategoryResponse{
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToListCategoriesResponse converts a slice of domain.ArticleCategory to DTO.
func ToListCategoriesResponse(cs []domain.ArticleCategory) ListCategoriesResponse {
	res := make([]CategoryResponse, len(cs))
	for i, c := range cs {
		res[i] = ToCategoryResponse(&c)
	}
	return ListCategoriesResponse{Categories: res}
}
