package handlers

import (
	"net/http"

	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// articleHandler handles HTTP requests for articles, stock and categories.
type articleHandler struct {
	articleService portssvc.ArticleSvcFacade
}

func newArticleHandler(articleService portssvc.ArticleSvcFacade) *articleHandler {
	return &articleHandler{articleService: articleService}
}

// registerArticleRoutes sets up the routes for articles and categories.
func registerArticleRoutes(rg *gin.RouterGroup, articleService portssvc.ArticleSvcFacade) {
	h := newArticleHandler(articleService)

	articles := rg.Group("/articles")
	{
		articles.POST("", h.createArticle)
		articles.GET("", h.listArticles)
		articles.GET("/:article_id", h.getArticle)
		articles.PUT("/:article_id", h.updateArticle)
		articles.POST("/:article_id/stock", h.adjustStock)
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.PUT("/:category_id", h.updateCategory)
	}
}

// createArticle godoc
// @Summary Create a new article
// @Description Creates a new article. The code must be unique within the company.
// @Tags articles
// @Accept json
// @Produce json
// @Param article body dto.CreateArticleRequest true "Article details"
// @Success 201 {object} dto.ArticleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /articles [post]
func (h *articleHandler) createArticle(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create article")
		return
	}

	c.JSON(http.StatusCreated, dto.ToArticleResponse(article))
}

// listArticles godoc
// @Summary List articles
// @Description Retrieves a filtered, paginated list of articles.
// @Tags articles
// @Produce json
// @Param search query string false "Match against code, name or description"
// @Param categoryID query string false "Filter by category"
// @Param lowStockOnly query bool false "Only articles at or below their minimum stock level"
// @Param includeInactive query bool false "Include deactivated articles"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListArticlesResponse
// @Failure 401 {object} ErrorResponse
// @Router /articles [get]
func (h *articleHandler) listArticles(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListArticlesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	articles, err := h.articleService.ListArticles(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list articles")
		return
	}

	c.JSON(http.StatusOK, dto.ToListArticlesResponse(articles))
}

// getArticle godoc
// @Summary Get an article
// @Description Retrieves an article by ID.
// @Tags articles
// @Produce json
// @Param article_id path string true "Article ID"
// @Success 200 {object} dto.ArticleResponse
// @Failure 404 {object} ErrorResponse
// @Router /articles/{article_id} [get]
func (h *articleHandler) getArticle(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	article, err := h.articleService.GetArticleByID(c.Request.Context(), companyID, c.Param("article_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve article")
		return
	}

	c.JSON(http.StatusOK, dto.ToArticleResponse(article))
}

// updateArticle godoc
// @Summary Update an article
// @Description Updates an existing article's details. Stock changes go
// @Description through the stock endpoint instead.
// @Tags articles
// @Accept json
// @Produce json
// @Param article_id path string true "Article ID"
// @Param article body dto.UpdateArticleRequest true "Article fields to update"
// @Success 200 {object} dto.ArticleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /articles/{article_id} [put]
func (h *articleHandler) updateArticle(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), companyID, c.Param("article_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update article")
		return
	}

	c.JSON(http.StatusOK, dto.ToArticleResponse(article))
}

// adjustStock godoc
// @Summary Adjust article stock
// @Description Applies a relative stock mutation. A delta that would take the
// @Description stock below zero is rejected and nothing changes.
// @Tags articles
// @Accept json
// @Produce json
// @Param article_id path string true "Article ID"
// @Param adjustment body dto.AdjustStockRequest true "Stock delta"
// @Success 200 {object} dto.ArticleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /articles/{article_id}/stock [post]
func (h *articleHandler) adjustStock(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	article, err := h.articleService.AdjustStock(c.Request.Context(), companyID, c.Param("article_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to adjust stock")
		return
	}

	c.JSON(http.StatusOK, dto.ToArticleResponse(article))
}

// createCategory godoc
// @Summary Create an article category
// @Description Creates a new category for grouping articles.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Router /categories [post]
func (h *articleHandler) createCategory(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	category, err := h.articleService.CreateCategory(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List article categories
// @Description Retrieves all categories in the company.
// @Tags categories
// @Produce json
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 401 {object} ErrorResponse
// @Router /categories [get]
func (h *articleHandler) listCategories(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	categories, err := h.articleService.ListCategories(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCategoriesResponse(categories))
}

// updateCategory godoc
// @Summary Update an article category
// @Description Updates an existing category's details.
// @Tags categories
// @Accept json
// @Produce json
// @Param category_id path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Category fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /categories/{category_id} [put]
func (h *articleHandler) updateCategory(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	category, err := h.articleService.UpdateCategory(c.Request.Context(), companyID, c.Param("category_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}
