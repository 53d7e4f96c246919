package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"lifestream/internal/config"
	"lifestream/internal/handler"
	"lifestream/internal/middleware"
	"lifestream/internal/model"
	"lifestream/internal/repository"
)

// Register wires routes, guards and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	donationHandler *handler.DonationHandler,
	fundingHandler *handler.FundingHandler,
	paymentHandler *handler.PaymentHandler,
	blogHandler *handler.BlogHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	authn := middleware.RequireIdentity(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(users, model.RoleAdmin)
	selfByQuery := middleware.RequireSelfQuery("email")
	selfByParam := middleware.RequireSelfParam("email")

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Lifestream server is running")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Auth
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)

	// Donation requests
	e.GET("/donation-requests", donationHandler.List)
	e.POST("/donation-requests", donationHandler.Create)
	e.GET("/donation-requests/count", donationHandler.Count, authn)
	e.GET("/donation-requests/:id", donationHandler.Get)
	e.PATCH("/donation-requests/:id", donationHandler.UpdateStatus)
	e.DELETE("/donation-requests/:id", donationHandler.Delete)
	e.PATCH("/donation-requests/donate/:id", donationHandler.Confirm, authn)
	e.GET("/my-donation-requests", donationHandler.ListMine, authn, selfByQuery)
	e.GET("/admin-donation-requests", donationHandler.ListAdmin, authn, adminOnly)
	e.GET("/public-donation-requests", donationHandler.ListPublic)
	e.GET("/public-donors", userHandler.ListPublicDonors)

	// Users
	e.POST("/users", userHandler.Create)
	e.GET("/users", userHandler.List, authn, adminOnly)
	e.GET("/users/count-donors", userHandler.CountDonors, authn)
	e.GET("/users/status", userHandler.GetStatus, authn)
	e.GET("/users/role/:email", userHandler.GetRole, authn, selfByParam)
	e.PATCH("/users/:id", userHandler.AdminUpdate, authn, adminOnly)

	// Profiles
	e.GET("/api/users", userHandler.GetProfile, authn, selfByQuery)
	e.PUT("/api/users", userHandler.UpdateProfile, authn, selfByQuery)
	e.GET("/api/users/:email", userHandler.GetProfile, authn, selfByParam)
	e.PUT("/api/users/:email", userHandler.UpdateProfile, authn, selfByParam)

	// Fundings and payments
	e.POST("/fundings", fundingHandler.Create, authn)
	e.GET("/user-fundings", fundingHandler.ListMine, authn, selfByQuery)
	e.GET("/fundings/total-amount", fundingHandler.TotalAmount, authn)
	e.POST("/create-payment", paymentHandler.CreatePayment, authn)

	// Blogs
	e.POST("/blogs", blogHandler.Create, authn)
	e.GET("/blogs", blogHandler.ListPublished)
	e.GET("/blogs/:id", blogHandler.Get)
	e.PATCH("/blogs/:id", blogHandler.Update, authn)
	e.PATCH("/blogs/:id/status", blogHandler.UpdateStatus, authn, adminOnly)
	e.DELETE("/blogs/:id", blogHandler.Delete, authn, adminOnly)
	e.GET("/admin-blogs", blogHandler.ListAdmin, authn, adminOnly)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
