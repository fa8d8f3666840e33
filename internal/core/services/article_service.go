package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/fieldserve/field_service_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// articleService handles the article catalog, categories and stock levels.
type articleService struct {
	articleRepo portsrepo.ArticleRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	audit       *auditLogService
}

// NewArticleService creates a new article service.
func NewArticleService(articleRepo portsrepo.ArticleRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, audit *auditLogService) portssvc.ArticleSvcFacade {
	return &articleService{
		articleRepo: articleRepo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		audit:       audit,
	}
}

var _ portssvc.ArticleSvcFacade = (*articleService)(nil)

// GetArticleByID retrieves an article within the company scope.
func (s *articleService) GetArticleByID(ctx context.Context, companyID string, articleID string) (*domain.Article, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	article, err := s.articleRepo.FindArticleByID(ctx, companyID, articleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find article", slog.String("error", err.Error()), slog.String("article_id", articleID))
		}
		return nil, err
	}
	if article.CompanyID != companyID {
		logger.Warn("Article found but belongs to a different company",
			slog.String("article_id", articleID),
			slog.String("owner_company", article.CompanyID))
		return nil, apperrors.ErrNotFound
	}
	return article, nil
}

// ListArticles retrieves a filtered, paginated list of articles.
func (s *articleService) ListArticles(ctx context.Context, companyID string, params dto.ListArticlesParams) ([]domain.Article, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	articles, err := s.articleRepo.ListArticles(ctx, companyID, portsrepo.ListArticlesFilter{
		Search:          params.Search,
		CategoryID:      params.CategoryID,
		LowStockOnly:    params.LowStockOnly,
		IncludeInactive: params.IncludeInactive,
		Limit:           params.Limit,
		Offset:          params.Offset,
	})
	if err != nil {
		logger.Error("Failed to list articles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	if articles == nil {
		return []domain.Article{}, nil
	}
	return articles, nil
}

// CreateArticle persists a new article. The code must be unique within the
// company; the VAT rate falls back to the company default.
func (s *articleService) CreateArticle(ctx context.Context, companyID string, req dto.CreateArticleRequest, userID string) (*domain.Article, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager); err != nil {
		return nil, err
	}

	if req.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: selling price must not be negative", apperrors.ErrValidation)
	}

	vatRate, err := s.resolveVATRate(ctx, companyID, req.VATRate)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.articleRepo.FindCategoryByID(ctx, companyID, *req.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, *req.CategoryID)
			}
			return nil, fmt.Errorf("failed to validate category: %w", err)
		}
	}

	stock := decimal.Zero
	if req.StockQuantity != nil {
		if req.StockQuantity.IsNegative() {
			return nil, fmt.Errorf("%w: stock quantity must not be negative", apperrors.ErrValidation)
		}
		stock = *req.StockQuantity
	}
	minStock := decimal.Zero
	if req.MinStockLevel != nil {
		minStock = *req.MinStockLevel
	}

	now := time.Now().UTC()
	article := domain.Article{
		ArticleID:     uuid.NewString(),
		CompanyID:     companyID,
		CategoryID:    req.CategoryID,
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		Unit:          req.Unit,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		VATRate:       vatRate,
		StockQuantity: stock,
		MinStockLevel: minStock,
		Supplier:      req.Supplier,
		SupplierCode:  req.SupplierCode,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.articleRepo.SaveArticle(ctx, article); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: article code %q already exists", apperrors.ErrConflict, req.Code)
		}
		logger.Error("Failed to save article", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "article", article.ArticleID, domain.AuditCreate, fmt.Sprintf("created article %q (%s)", article.Name, article.Code))

	logger.Info("Article created", slog.String("article_id", article.ArticleID), slog.String("code", article.Code))
	return &article, nil
}

// UpdateArticle updates an existing article's details. The code is immutable.
func (s *articleService) UpdateArticle(ctx context.Context, companyID string, articleID string, req dto.UpdateArticleRequest, userID string) (*domain.Article, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager); err != nil {
		return nil, err
	}

	article, err := s.articleRepo.FindArticleByID(ctx, companyID, articleID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if *req.CategoryID != "" {
			if _, err := s.articleRepo.FindCategoryByID(ctx, companyID, *req.CategoryID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, *req.CategoryID)
				}
				return nil, fmt.Errorf("failed to validate category: %w", err)
			}
			article.CategoryID = req.CategoryID
		} else {
			article.CategoryID = nil
		}
	}
	if req.Name != nil {
		article.Name = *req.Name
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Unit != nil {
		article.Unit = *req.Unit
	}
	if req.PurchasePrice != nil {
		article.PurchasePrice = req.PurchasePrice
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: selling price must not be negative", apperrors.ErrValidation)
		}
		article.SellingPrice = *req.SellingPrice
	}
	if req.VATRate != nil {
		if req.VATRate.IsNegative() {
			return nil, fmt.Errorf("%w: VAT rate must not be negative", apperrors.ErrValidation)
		}
		article.VATRate = *req.VATRate
	}
	if req.MinStockLevel != nil {
		article.MinStockLevel = *req.MinStockLevel
	}
	if req.Supplier != nil {
		article.Supplier = *req.Supplier
	}
	if req.SupplierCode != nil {
		article.SupplierCode = *req.SupplierCode
	}
	if req.IsActive != nil {
		article.IsActive = *req.IsActive
	}

	article.LastUpdatedAt = time.Now().UTC()
	article.LastUpdatedBy = userID

	if err := s.articleRepo.UpdateArticle(ctx, *article); err != nil {
		logger.Error("Failed to update article", slog.String("error", err.Error()), slog.String("article_id", articleID))
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "article", articleID, domain.AuditUpdate, "updated article")

	logger.Info("Article updated", slog.String("article_id", articleID))
	return article, nil
}

// AdjustStock applies a relative stock mutation. A delta that would take the
// stock below zero is rejected and nothing changes.
func (s *articleService) AdjustStock(ctx context.Context, companyID string, articleID string, req dto.AdjustStockRequest, userID string) (*domain.Article, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleTechnician); err != nil {
		return nil, err
	}

	if req.Delta.IsZero() {
		return nil, fmt.Errorf("%w: stock delta must not be zero", apperrors.ErrValidation)
	}

	article, err := s.articleRepo.AdjustStock(ctx, companyID, articleID, req.Delta, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, fmt.Errorf("%w: stock cannot go below zero", apperrors.ErrValidation)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to adjust stock", slog.String("error", err.Error()), slog.String("article_id", articleID))
		}
		return nil, err
	}

	detail := fmt.Sprintf("adjusted stock by %s", req.Delta.String())
	if req.Reason != "" {
		detail = fmt.Sprintf("%s (%s)", detail, req.Reason)
	}
	s.audit.record(ctx, companyID, userID, "article", articleID, domain.AuditStockAdjust, detail)

	if article.IsLowStock() {
		logger.Warn("Article stock at or below minimum",
			slog.String("article_id", articleID),
			slog.String("stock", article.StockQuantity.String()),
			slog.String("min_stock", article.MinStockLevel.String()),
		)
	}

	logger.Info("Stock adjusted", slog.String("article_id", articleID), slog.String("delta", req.Delta.String()))
	return article, nil
}

// ListCategories retrieves all categories in the company.
func (s *articleService) ListCategories(ctx context.Context, companyID string) ([]domain.ArticleCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	categories, err := s.articleRepo.ListCategories(ctx, companyID)
	if err != nil {
		logger.Error("Failed to list categories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.ArticleCategory{}, nil
	}
	return categories, nil
}

// CreateCategory persists a new category.
func (s *articleService) CreateCategory(ctx context.Context, companyID string, req dto.CreateCategoryRequest, userID string) (*domain.ArticleCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := domain.ArticleCategory{
		CategoryID:  uuid.NewString(),
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.articleRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "category", category.CategoryID, domain.AuditCreate, fmt.Sprintf("created category %q", category.Name))

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// UpdateCategory updates an existing category's details.
func (s *articleService) UpdateCategory(ctx context.Context, companyID string, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.ArticleCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager); err != nil {
		return nil, err
	}

	category, err := s.articleRepo.FindCategoryByID(ctx, companyID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = userID

	if err := s.articleRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "category", categoryID, domain.AuditUpdate, "updated category")

	logger.Info("Category updated", slog.String("category_id", categoryID))
	return category, nil
}

// resolveVATRate returns the explicit rate when provided, otherwise the
// company default.
func (s *articleService) resolveVATRate(ctx context.Context, companyID string, rate *decimal.Decimal) (decimal.Decimal, error) {
	if rate != nil {
		if rate.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: VAT rate must not be negative", apperrors.ErrValidation)
		}
		return *rate, nil
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve default VAT rate: %w", err)
	}
	return company.DefaultVATRate, nil
}
