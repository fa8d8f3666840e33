package repositories

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListArticlesFilter narrows article list queries.
type ListArticlesFilter struct {
	Search          string
	CategoryID      string
	LowStockOnly    bool
	IncludeInactive bool
	Limit           int
	Offset          int
}

// ArticleReader defines read operations for article data
type ArticleReader interface {
	// FindArticleByID retrieves an article by ID, scoped to a company.
	FindArticleByID(ctx context.Context, companyID string, articleID string) (*domain.Article, error)

	// FindArticleByCode retrieves an article by its company-unique code.
	FindArticleByCode(ctx context.Context, companyID string, code string) (*domain.Article, error)

	// ListArticles retrieves a filtered, paginated list of articles.
	ListArticles(ctx context.Context, companyID string, filter ListArticlesFilter) ([]domain.Article, error)
}

// ArticleWriter defines write operations for article data
type ArticleWriter interface {
	// SaveArticle persists a new article.
	SaveArticle(ctx context.Context, article domain.Article) error

	// UpdateArticle updates an existing article's details.
	UpdateArticle(ctx context.Context, article domain.Article) error

	// AdjustStock applies a relative stock mutation atomically and returns
	// the updated article. The statement fails when the result would be
	// negative.
	AdjustStock(ctx context.Context, companyID string, articleID string, delta decimal.Decimal, updatedByUserID string) (*domain.Article, error)
}

// CategoryReader defines read operations for article categories
type CategoryReader interface {
	// FindCategoryByID retrieves a category by ID, scoped to a company.
	FindCategoryByID(ctx context.Context, companyID string, categoryID string) (*domain.ArticleCategory, error)

	// ListCategories retrieves all categories for a company.
	ListCategories(ctx context.Context, companyID string) ([]domain.ArticleCategory, error)
}

// CategoryWriter defines write operations for article categories
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.ArticleCategory) error

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, category domain.ArticleCategory) error
}

// ArticleRepositoryFacade combines all article-related repository interfaces
type ArticleRepositoryFacade interface {
	ArticleReader
	ArticleWriter
	CategoryReader
	CategoryWriter
}
