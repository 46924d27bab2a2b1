package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arkawidia/lisensia-backend/api/controllers"
	"github.com/arkawidia/lisensia-backend/api/middleware"
	"github.com/arkawidia/lisensia-backend/internal/applications"
	"github.com/arkawidia/lisensia-backend/internal/auth"
	"github.com/arkawidia/lisensia-backend/internal/customers"
	"github.com/arkawidia/lisensia-backend/internal/licenses"
	"github.com/arkawidia/lisensia-backend/internal/users"
	"github.com/arkawidia/lisensia-backend/pkg/config"
	"github.com/arkawidia/lisensia-backend/pkg/db"
	"github.com/arkawidia/lisensia-backend/pkg/logger"
	"github.com/arkawidia/lisensia-backend/pkg/redis"
)

// NewRouter wires the dashboard API. Everything under /api except login
// requires a valid bearer token; user administration additionally requires
// the admin role.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	authService auth.Service,
	customerService customers.Service,
	applicationService applications.Service,
	userService users.Service,
	licenseService licenses.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbClient, redisClient))
	})

	r.Post("/api/v1/auth/login", controllers.AuthLogin(authService, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", controllers.CustomerCreate(customerService, logg))
			r.Get("/", controllers.CustomerList(customerService, logg))
			r.Get("/{customerId}", controllers.CustomerGet(customerService, logg))
			r.Put("/{customerId}", controllers.CustomerUpdate(customerService, logg))
			r.Delete("/{customerId}", controllers.CustomerDelete(customerService, logg))
			r.Get("/{customerId}/licenses", controllers.LicenseListByCustomer(licenseService, logg))
		})

		r.Route("/applications", func(r chi.Router) {
			r.Post("/", controllers.ApplicationCreate(applicationService, logg))
			r.Get("/", controllers.ApplicationList(applicationService, logg))
			r.Get("/{applicationId}", controllers.ApplicationGet(applicationService, logg))
			r.Put("/{applicationId}", controllers.ApplicationUpdate(applicationService, logg))
			r.Delete("/{applicationId}", controllers.ApplicationDelete(applicationService, logg))
			r.Get("/{applicationId}/licenses", controllers.LicenseListByApplication(licenseService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{userId}/licenses", controllers.LicenseListByUser(licenseService, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))
				r.Post("/", controllers.UserCreate(userService, logg))
				r.Get("/", controllers.UserList(userService, logg))
				r.Get("/{userId}", controllers.UserGet(userService, logg))
				r.Put("/{userId}", controllers.UserUpdate(userService, logg))
				r.Delete("/{userId}", controllers.UserDelete(userService, logg))
			})
		})

		r.Route("/licenses", func(r chi.Router) {
			r.Post("/", controllers.LicenseCreate(licenseService, logg))
			r.Get("/", controllers.LicenseList(licenseService, logg))
			r.Get("/{licenseId}", controllers.LicenseGet(licenseService, logg))
			r.Put("/{licenseId}", controllers.LicenseUpdate(licenseService, logg))
			r.Delete("/{licenseId}", controllers.LicenseDelete(licenseService, logg))
		})
	})

	return r
}
