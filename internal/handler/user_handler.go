package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lifestream/internal/errors"
	"lifestream/internal/middleware"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
	"lifestream/internal/repository"
	"lifestream/internal/service"
)

const defaultUserPageSize = 10

// UserHandler handles user endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents a user registration.
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"omitempty,min=6"`
	Avatar     string `json:"avatar"`
	BloodGroup string `json:"bloodGroup"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

// AdminUpdateUserRequest mutates role and/or status of a user.
type AdminUpdateUserRequest struct {
	Role   model.UserRole   `json:"role" validate:"omitempty,oneof=donor volunteer admin"`
	Status model.UserStatus `json:"status" validate:"omitempty,oneof=active blocked"`
}

// UpdateProfileRequest edits the caller's own profile fields.
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	BloodGroup string `json:"bloodGroup"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

// RoleResponse carries a user's role.
type RoleResponse struct {
	Role model.UserRole `json:"role"`
}

// StatusResponse carries a user's account status.
type StatusResponse struct {
	Status model.UserStatus `json:"status"`
}

// Create godoc
// @Summary Register a user, idempotent by email
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 200 {object} map[string]string
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
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

	user := &model.User{
		Name:       req.Name,
		Email:      req.Email,
		Avatar:     req.Avatar,
		BloodGroup: req.BloodGroup,
		District:   req.District,
		Upazila:    req.Upazila,
	}
	created, err := h.userService.Register(c.Request().Context(), user, req.Password)
	if err == errors.ErrUserExists {
		// Repeated registration is not an error for the client, just a no-op.
		return c.JSON(http.StatusOK, echo.Map{"message": "user already exists"})
	}
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List users, paginated, admin only
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Envelope
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	p := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), defaultUserPageSize)
	filter := repository.UserFilter{
		Role:   model.UserRole(c.QueryParam("role")),
		Status: model.UserStatus(c.QueryParam("status")),
	}

	users, total, err := h.userService.List(c.Request().Context(), filter, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(users, total, p))
}

// AdminUpdate godoc
// @Summary Update a user's role or status, admin only
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body AdminUpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) AdminUpdate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}

	var req AdminUpdateUserRequest
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

	if err := h.userService.AdminUpdate(c.Request().Context(), id, req.Role, req.Status); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated"})
}

// GetRole godoc
// @Summary Read the caller's role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} RoleResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/role/{email} [get]
func (h *UserHandler) GetRole(c echo.Context) error {
	role, err := h.userService.GetRole(c.Request().Context(), c.Param("email"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, RoleResponse{Role: role})
}

// GetStatus godoc
// @Summary Read the caller's account status
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatusResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/status [get]
func (h *UserHandler) GetStatus(c echo.Context) error {
	claims, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or malformed credential",
			Code:  "UNAUTHENTICATED",
		})
	}

	user, err := h.userService.GetByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: user.Status})
}

// CountDonors godoc
// @Summary Count active donors
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CountResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/count-donors [get]
func (h *UserHandler) CountDonors(c echo.Context) error {
	count, err := h.userService.CountActiveDonors(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}

// ListPublicDonors godoc
// @Summary Search active donors
// @Tags users
// @Produce json
// @Param bloodGroup query string false "Blood group filter"
// @Param district query string false "District filter"
// @Param upazila query string false "Upazila filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Envelope
// @Router /public-donors [get]
func (h *UserHandler) ListPublicDonors(c echo.Context) error {
	p := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), defaultUserPageSize)

	users, total, err := h.userService.ListPublicDonors(
		c.Request().Context(),
		c.QueryParam("bloodGroup"),
		c.QueryParam("district"),
		c.QueryParam("upazila"),
		p,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(users, total, p))
}

// GetProfile godoc
// @Summary Read a user profile by email
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param email query string true "User email"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/users [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		email = c.QueryParam("email")
	}

	user, err := h.userService.GetByEmail(c.Request().Context(), email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update a user profile by email
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email query string true "User email"
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/users [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		email = c.QueryParam("email")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	// Allow-listed profile columns only; role and status are admin territory.
	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}
	if req.BloodGroup != "" {
		fields["blood_group"] = req.BloodGroup
	}
	if req.District != "" {
		fields["district"] = req.District
	}
	if req.Upazila != "" {
		fields["upazila"] = req.Upazila
	}

	if err := h.userService.UpdateProfile(c.Request().Context(), email, fields); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}
