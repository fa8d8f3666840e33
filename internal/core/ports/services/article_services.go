package services

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/dto"
)

// ArticleReaderSvc defines read operations for article data
type ArticleReaderSvc interface {
	// GetArticleByID retrieves an article within the caller's company.
	GetArticleByID(ctx context.Context, companyID string, articleID string) (*domain.Article, error)

	// ListArticles retrieves a filtered, paginated list of articles.
	ListArticles(ctx context.Context, companyID string, params dto.ListArticlesParams) ([]domain.Article, error)
}

// ArticleWriterSvc defines write operations for article data
type ArticleWriterSvc interface {
	// CreateArticle persists a new article. The code must be unique within
	// the company.
	CreateArticle(ctx context.Context, companyID string, req dto.CreateArticleRequest, userID string) (*domain.Article, error)

	// UpdateArticle updates an existing article's details.
	UpdateArticle(ctx context.Context, companyID string, articleID string, req dto.UpdateArticleRequest, userID string) (*domain.Article, error)

	// AdjustStock applies a relative stock mutation. A delta that would
	// take the stock below zero is rejected and nothing changes.
	AdjustStock(ctx context.Context, companyID string, articleID string, req dto.AdjustStockRequest, userID string) (*domain.Article, error)
}

// CategorySvc defines operations for article categories
type CategorySvc interface {
	// ListCategories retrieves all categories in the company.
	ListCategories(ctx context.Context, companyID string) ([]domain.ArticleCategory, error)

	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, companyID string, req dto.CreateCategoryRequest, userID string) (*domain.ArticleCategory, error)

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, companyID string, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.ArticleCategory, error)
}

// ArticleSvcFacade combines all article-related service interfaces
type ArticleSvcFacade interface {
	ArticleReaderSvc
	ArticleWriterSvc
	CategorySvc
}
