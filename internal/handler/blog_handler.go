package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lifestream/internal/errors"
	"lifestream/internal/middleware"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
	"lifestream/internal/service"
)

const defaultBlogPageSize = 10

// BlogHandler handles blog endpoints.
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// CreateBlogRequest represents a new blog post submission.
type CreateBlogRequest struct {
	Title     string `json:"title" validate:"required"`
	Thumbnail string `json:"thumbnail"`
	Content   string `json:"content" validate:"required"`
}

// UpdateBlogRequest edits an existing post.
type UpdateBlogRequest struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Content   string `json:"content"`
}

// UpdateBlogStatusRequest toggles the publication status of a post.
type UpdateBlogStatusRequest struct {
	Status model.BlogStatus `json:"status" validate:"required,oneof=draft published"`
}

// Create godoc
// @Summary Create a draft blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBlogRequest true "Blog data"
// @Success 201 {object} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	claims, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or malformed credential",
			Code:  "UNAUTHENTICATED",
		})
	}

	var req CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	created, err := h.blogService.Create(c.Request().Context(), &model.Blog{
		Title:       req.Title,
		Thumbnail:   req.Thumbnail,
		Content:     req.Content,
		AuthorName:  claims.Name,
		AuthorEmail: claims.Email,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// ListPublished godoc
// @Summary List published blog posts, paginated
// @Tags blogs
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Envelope
// @Router /blogs [get]
func (h *BlogHandler) ListPublished(c echo.Context) error {
	p := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), defaultBlogPageSize)

	blogs, total, err := h.blogService.ListPublished(c.Request().Context(), p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(blogs, total, p))
}

// ListAdmin godoc
// @Summary List blog posts in any status, admin only
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Envelope
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin-blogs [get]
func (h *BlogHandler) ListAdmin(c echo.Context) error {
	p := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), defaultBlogPageSize)
	status := model.BlogStatus(c.QueryParam("status"))

	blogs, total, err := h.blogService.List(c.Request().Context(), status, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(blogs, total, p))
}

// Get godoc
// @Summary Get a blog post by id
// @Tags blogs
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}

	blog, err := h.blogService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, blog)
}

// Update godoc
// @Summary Edit a blog post, author only
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param request body UpdateBlogRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /blogs/{id} [patch]
func (h *BlogHandler) Update(c echo.Context) error {
	claims, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or malformed credential",
			Code:  "UNAUTHENTICATED",
		})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}

	var req UpdateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	// Allow-listed content columns only.
	fields := map[string]interface{}{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Thumbnail != "" {
		fields["thumbnail"] = req.Thumbnail
	}
	if req.Content != "" {
		fields["content"] = req.Content
	}

	if err := h.blogService.UpdateContent(c.Request().Context(), id, claims.Email, fields); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "blog updated"})
}

// UpdateStatus godoc
// @Summary Toggle publication status of a blog post, admin only
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param request body UpdateBlogStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /blogs/{id}/status [patch]
func (h *BlogHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}

	var req UpdateBlogStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	if err := h.blogService.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "blog status updated"})
}

// Delete godoc
// @Summary Delete a blog post, admin only
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}

	if err := h.blogService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "blog deleted"})
}
