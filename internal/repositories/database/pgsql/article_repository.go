package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	"github.com/fieldserve/field_service_app/internal/models"
	"github.com/fieldserve/field_service_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxArticleRepository struct {
	BaseRepository
}

// newPgxArticleRepository creates a new repository for article and category data.
func newPgxArticleRepository(pool *pgxpool.Pool) portsrepo.ArticleRepositoryFacade {
	return &PgxArticleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ArticleRepositoryFacade = (*PgxArticleRepository)(nil)

const articleColumns = `
	article_id, company_id, category_id, code, name, description, unit,
	purchase_price, selling_price, vat_rate, stock_quantity, min_stock_level,
	supplier, supplier_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

const categoryColumns = `
	category_id, company_id, name, description,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanArticle(row pgx.Row) (*models.Article, error) {
	var m models.Article
	err := row.Scan(
		&m.ArticleID,
		&m.CompanyID,
		&m.CategoryID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.Unit,
		&m.PurchasePrice,
		&m.SellingPrice,
		&m.VATRate,
		&m.StockQuantity,
		&m.MinStockLevel,
		&m.Supplier,
		&m.SupplierCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanCategory(row pgx.Row) (*models.ArticleCategory, error) {
	var m models.ArticleCategory
	err := row.Scan(
		&m.CategoryID,
		&m.CompanyID,
		&m.Name,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindArticleByID retrieves an article by ID, scoped to a company.
func (r *PgxArticleRepository) FindArticleByID(ctx context.Context, companyID string, articleID string) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE company_id = $1 AND article_id = $2;`

	m, err := scanArticle(r.Pool.QueryRow(ctx, query, companyID, articleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find article "+articleID, err)
	}

	article := mapping.ToDomainArticle(*m)
	return &article, nil
}

// FindArticleByCode retrieves an article by its company-unique code.
func (r *PgxArticleRepository) FindArticleByCode(ctx context.Context, companyID string, code string) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE company_id = $1 AND code = $2;`

	m, err := scanArticle(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find article by code "+code, err)
	}

	article := mapping.ToDomainArticle(*m)
	return &article, nil
}

// ListArticles retrieves a filtered, paginated list of articles.
func (r *PgxArticleRepository) ListArticles(ctx context.Context, companyID string, filter portsrepo.ListArticlesFilter) ([]domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE company_id = $1`
	args := []any{companyID}

	if !filter.IncludeInactive {
		query += ` AND is_active = TRUE`
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}
	if filter.LowStockOnly {
		query += ` AND stock_quantity <= min_stock_level`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (code ILIKE $%d OR name ILIKE $%d OR description ILIKE $%d)`, n, n, n)
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` ORDER BY code ASC LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list articles for company "+companyID, err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		m, err := scanArticle(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan article row", err)
		}
		articles = append(articles, mapping.ToDomainArticle(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating article rows", err)
	}
	return articles, nil
}

// SaveArticle persists a new article.
func (r *PgxArticleRepository) SaveArticle(ctx context.Context, article domain.Article) error {
	m := mapping.ToModelArticle(article)
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ArticleID, m.CompanyID, m.CategoryID, m.Code, m.Name, m.Description, m.Unit,
		m.PurchasePrice, m.SellingPrice, m.VATRate, m.StockQuantity, m.MinStockLevel,
		m.Supplier, m.SupplierCode, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert article "+m.ArticleID, err)
	}
	return nil
}

// UpdateArticle updates an existing article's details.
func (r *PgxArticleRepository) UpdateArticle(ctx context.Context, article domain.Article) error {
	m := mapping.ToModelArticle(article)
	query := `
		UPDATE articles
		SET category_id = $3,
		    code = $4,
		    name = $5,
		    description = $6,
		    unit = $7,
		    purchase_price = $8,
		    selling_price = $9,
		    vat_rate = $10,
		    min_stock_level = $11,
		    supplier = $12,
		    supplier_code = $13,
		    is_active = $14,
		    last_updated_at = $15,
		    last_updated_by = $16
		WHERE company_id = $1 AND article_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.ArticleID,
		m.CategoryID, m.Code, m.Name, m.Description, m.Unit,
		m.PurchasePrice, m.SellingPrice, m.VATRate, m.MinStockLevel,
		m.Supplier, m.SupplierCode, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to update article "+m.ArticleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("article " + m.ArticleID + " not found for update")
	}
	return nil
}

// AdjustStock applies a relative stock mutation in a single statement. The
// stock_quantity check constraint rejects any result below zero, so two
// concurrent adjustments can never race the quantity negative.
func (r *PgxArticleRepository) AdjustStock(ctx context.Context, companyID string, articleID string, delta decimal.Decimal, updatedByUserID string) (*domain.Article, error) {
	query := `
		UPDATE articles
		SET stock_quantity = stock_quantity + $3,
		    last_updated_at = NOW(),
		    last_updated_by = $4
		WHERE company_id = $1 AND article_id = $2
		RETURNING ` + articleColumns + `;
	`
	m, err := scanArticle(r.Pool.QueryRow(ctx, query, companyID, articleID, delta, updatedByUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if isCheckViolation(err) {
			return nil, apperrors.ErrValidation
		}
		return nil, apperrors.NewAppError(500, "failed to adjust stock for article "+articleID, err)
	}

	article := mapping.ToDomainArticle(*m)
	return &article, nil
}

// FindCategoryByID retrieves a category by ID, scoped to a company.
func (r *PgxArticleRepository) FindCategoryByID(ctx context.Context, companyID string, categoryID string) (*domain.ArticleCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM article_categories WHERE company_id = $1 AND category_id = $2;`

	m, err := scanCategory(r.Pool.QueryRow(ctx, query, companyID, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find category "+categoryID, err)
	}

	category := mapping.ToDomainArticleCategory(*m)
	return &category, nil
}

// ListCategories retrieves all categories for a company.
func (r *PgxArticleRepository) ListCategories(ctx context.Context, companyID string) ([]domain.ArticleCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM article_categories WHERE company_id = $1 ORDER BY name ASC;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list categories for company "+companyID, err)
	}
	defer rows.Close()

	categories := make([]domain.ArticleCategory, 0)
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, mapping.ToDomainArticleCategory(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}
	return categories, nil
}

// SaveCategory persists a new category.
func (r *PgxArticleRepository) SaveCategory(ctx context.Context, category domain.ArticleCategory) error {
	m := mapping.ToModelArticleCategory(category)
	query := `
		INSERT INTO article_categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.CompanyID, m.Name, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert category "+m.CategoryID, err)
	}
	return nil
}

// UpdateCategory updates an existing category's details.
func (r *PgxArticleRepository) UpdateCategory(ctx context.Context, category domain.ArticleCategory) error {
	m := mapping.ToModelArticleCategory(category)
	query := `
		UPDATE article_categories
		SET name = $3,
		    description = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE company_id = $1 AND category_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.CategoryID, m.Name, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update category "+m.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category " + m.CategoryID + " not found for update")
	}
	return nil
}
