package mapping

import (
	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/models"
)

// ToModelArticle converts a domain Article to a model Article
func ToModelArticle(d domain.Article) models.Article {
	return models.Article{
		ArticleID:     d.ArticleID,
		CompanyID:     d.CompanyID,
		CategoryID:    d.CategoryID,
		Code:          d.Code,
		Name:          d.Name,
		Description:   d.Description,
		Unit:          d.Unit,
		PurchasePrice: d.PurchasePrice,
		SellingPrice:  d.SellingPrice,
		VATRate:       d.VATRate,
		StockQuantity: d.StockQuantity,
		MinStockLevel: d.MinStockLevel,
		Supplier:      d.Supplier,
		SupplierCode:  d.SupplierCode,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainArticle converts a model Article to a domain Article
func ToDomainArticle(m models.Article) domain.Article {
	return domain.Article{
		ArticleID:     m.ArticleID,
		CompanyID:     m.CompanyID,
		CategoryID:    m.CategoryID,
		Code:          m.Code,
		Name:          m.Name,
		Description:   m.Description,
		Unit:          m.Unit,
		PurchasePrice: m.PurchasePrice,
		SellingPrice:  m.SellingPrice,
		VATRate:       m.VATRate,
		StockQuantity: m.StockQuantity,
		MinStockLevel: m.MinStockLevel,
		Supplier:      m.Supplier,
		SupplierCode:  m.SupplierCode,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelArticleCategory converts a domain ArticleCategory to its model form
func ToModelArticleCategory(d domain.ArticleCategory) models.ArticleCategory {
	return models.ArticleCategory{
		CategoryID:  d.CategoryID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainArticleCategory converts a model ArticleCategory to its domain form
func ToDomainArticleCategory(m models.ArticleCategory) domain.ArticleCategory {
	return domain.ArticleCategory{
		CategoryID:  m.CategoryID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
