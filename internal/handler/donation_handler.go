package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lifestream/internal/errors"
	"lifestream/internal/middleware"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
	"lifestream/internal/service"
)

const (
	defaultDonationPageSize = 5
	defaultPublicPageSize   = 10
)

// DonationHandler handles donation request endpoints.
type DonationHandler struct {
	donationService service.DonationService
}

// NewDonationHandler creates a new donation handler.
func NewDonationHandler(donationService service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// CreateDonationRequest represents a new donation request submission.
type CreateDonationRequest struct {
	RequesterName  string `json:"requesterName" validate:"required"`
	RequesterEmail string `json:"requesterEmail" validate:"required,email"`
	RecipientName  string `json:"recipientName"`
	District       string `json:"district"`
	Upazila        string `json:"upazila"`
	Hospital       string `json:"hospital"`
	Address        string `json:"address"`
	BloodGroup     string `json:"bloodGroup" validate:"required"`
	DonationDate   string `json:"donationDate" validate:"required"`
	DonationTime   string `json:"donationTime"`
	Message        string `json:"message"`
}

// UpdateDonationStatusRequest sets a new status on a request.
type UpdateDonationStatusRequest struct {
	Status model.DonationStatus `json:"status" validate:"required,oneof=pending inprogress done cancelled"`
}

// CountResponse carries a single aggregate counter.
type CountResponse struct {
	Count int64 `json:"count"`
}

// List godoc
// @Summary List all donation requests
// @Tags donation-requests
// @Produce json
// @Success 200 {array} model.DonationRequest
// @Failure 500 {object} errors.ErrorResponse
// @Router /donation-requests [get]
func (h *DonationHandler) List(c echo.Context) error {
	reqs, err := h.donationService.ListAll(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reqs)
}

// Create godoc
// @Summary Post a new donation request
// @Tags donation-requests
// @Accept json
// @Produce json
// @Param request body CreateDonationRequest true "Donation request data"
// @Success 201 {object} model.DonationRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /donation-requests [post]
func (h *DonationHandler) Create(c echo.Context) error {
	var req CreateDonationRequest
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

	donationDate, err := time.Parse("2006-01-02", req.DonationDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid donationDate, expected YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}

	created, err := h.donationService.Create(c.Request().Context(), &model.DonationRequest{
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		RecipientName:  req.RecipientName,
		District:       req.District,
		Upazila:        req.Upazila,
		Hospital:       req.Hospital,
		Address:        req.Address,
		BloodGroup:     req.BloodGroup,
		DonationDate:   donationDate,
		DonationTime:   req.DonationTime,
		Message:        req.Message,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get a donation request by id
// @Tags donation-requests
// @Produce json
// @Param id path string true "Donation request ID"
// @Success 200 {object} model.DonationRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /donation-requests/{id} [get]
func (h *DonationHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}

	req, err := h.donationService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, req)
}

// UpdateStatus godoc
// @Summary Update the status of a donation request
// @Tags donation-requests
// @Accept json
// @Produce json
// @Param id path string true "Donation request ID"
// @Param request body UpdateDonationStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /donation-requests/{id} [patch]
func (h *DonationHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}

	var req UpdateDonationStatusRequest
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

	if err := h.donationService.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}

// Delete godoc
// @Summary Delete a donation request
// @Tags donation-requests
// @Produce json
// @Param id path string true "Donation request ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /donation-requests/{id} [delete]
func (h *DonationHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}

	if err := h.donationService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "donation request deleted"})
}

// Confirm godoc
// @Summary Confirm a pending donation request as the calling donor
// @Tags donation-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation request ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /donation-requests/donate/{id} [patch]
func (h *DonationHandler) Confirm(c echo.Context) error {
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

	if err := h.donationService.Confirm(c.Request().Context(), id, claims.Name, claims.Email); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "donation confirmed"})
}

// ListMine godoc
// @Summary List the caller's donation requests, paginated
// @Tags donation-requests
// @Produce json
// @Security BearerAuth
// @Param email query string true "Requester email"
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /my-donation-requests [get]
func (h *DonationHandler) ListMine(c echo.Context) error {
	p := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), defaultDonationPageSize)
	email := c.QueryParam("email")
	status := model.DonationStatus(c.QueryParam("status"))

	reqs, total, err := h.donationService.ListByRequester(c.Request().Context(), email, status, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(reqs, total, p))
}

// ListAdmin godoc
// @Summary List all donation requests for the admin dashboard, paginated
// @Tags donation-requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Envelope
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin-donation-requests [get]
func (h *DonationHandler) ListAdmin(c echo.Context) error {
	p := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), defaultDonationPageSize)
	status := model.DonationStatus(c.QueryParam("status"))

	reqs, total, err := h.donationService.ListAdmin(c.Request().Context(), status, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(reqs, total, p))
}

// ListPublic godoc
// @Summary Browse pending donation requests
// @Tags donation-requests
// @Produce json
// @Param bloodGroup query string false "Blood group filter"
// @Param district query string false "District filter"
// @Param upazila query string false "Upazila filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Envelope
// @Router /public-donation-requests [get]
func (h *DonationHandler) ListPublic(c echo.Context) error {
	p := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), defaultPublicPageSize)

	reqs, total, err := h.donationService.ListPublicPending(
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
	return c.JSON(http.StatusOK, pagination.NewEnvelope(reqs, total, p))
}

// Count godoc
// @Summary Count all donation requests
// @Tags donation-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CountResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /donation-requests/count [get]
func (h *DonationHandler) Count(c echo.Context) error {
	count, err := h.donationService.Count(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}
