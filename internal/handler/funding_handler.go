package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"lifestream/internal/errors"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
	"lifestream/internal/service"
)

const defaultFundingPageSize = 10

// FundingHandler handles funding endpoints.
type FundingHandler struct {
	fundingService service.FundingService
}

// NewFundingHandler creates a new funding handler.
func NewFundingHandler(fundingService service.FundingService) *FundingHandler {
	return &FundingHandler{fundingService: fundingService}
}

// CreateFundingRequest represents a funding record submission.
type CreateFundingRequest struct {
	Name   string          `json:"name" validate:"required"`
	Email  string          `json:"email" validate:"required,email"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Date   string          `json:"date"`
}

// TotalAmountResponse carries the platform-wide funding sum.
type TotalAmountResponse struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// Create godoc
// @Summary Record a funding contribution
// @Tags fundings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateFundingRequest true "Funding data"
// @Success 201 {object} model.Funding
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /fundings [post]
func (h *FundingHandler) Create(c echo.Context) error {
	var req CreateFundingRequest
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

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid date, expected RFC3339",
				Code:  "INVALID_DATE",
			})
		}
		date = parsed
	}

	created, err := h.fundingService.Create(c.Request().Context(), &model.Funding{
		Name:   req.Name,
		Email:  req.Email,
		Amount: req.Amount,
		Date:   date,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// ListMine godoc
// @Summary List the caller's funding records, paginated
// @Tags fundings
// @Produce json
// @Security BearerAuth
// @Param email query string true "Donor email"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /user-fundings [get]
func (h *FundingHandler) ListMine(c echo.Context) error {
	p := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), defaultFundingPageSize)
	email := c.QueryParam("email")

	fundings, total, err := h.fundingService.ListByEmail(c.Request().Context(), email, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(fundings, total, p))
}

// TotalAmount godoc
// @Summary Sum of all funding contributions
// @Tags fundings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TotalAmountResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /fundings/total-amount [get]
func (h *FundingHandler) TotalAmount(c echo.Context) error {
	total, err := h.fundingService.TotalAmount(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, TotalAmountResponse{TotalAmount: total})
}
