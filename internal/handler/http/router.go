package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/holiday-backend-go/internal/config"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	JWTService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	holidayHandler HolidayHandler,
	eventHandler EventHandler,
	invitationHandler InvitationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
		// The stream token travels in the query string.
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/events"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// SSE authenticates with its own query token
		r.Get("/events", eventHandler.Stream)

		r.Route("/invitations/token/{token}", func(r chi.Router) {
			r.Get("/", invitationHandler.GetInvitationByToken)
			r.Post("/accept", invitationHandler.AcceptInvitation)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)
			r.Post("/events/token", eventHandler.StreamToken)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", employeeHandler.Me)
				r.Get("/balance", employeeHandler.MyBalance)
			})
			r.Get("/companies/my", employeeHandler.MyCompany)

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireEmployer)
				r.Get("/", employeeHandler.ListEmployees)
				r.Patch("/{id}", employeeHandler.UpdateEmployee)
			})

			r.Route("/invitations", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
				r.Get("/", invitationHandler.List)
				r.Post("/", invitationHandler.Create)
				r.Delete("/{id}", invitationHandler.Revoke)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)
				r.Post("/", holidayHandler.Create)
				r.Get("/calendar", holidayHandler.Calendar)

				// Employer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHolidayApprove))
					r.Get("/bank", holidayHandler.ListBankHolidays)
					r.Get("/requests", holidayHandler.ListRequests)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", holidayHandler.Get)
					r.Patch("/", holidayHandler.Edit)
					r.Delete("/", holidayHandler.Delete)
					r.With(middleware.RequirePermission(user.PermissionHolidayApprove)).
						Patch("/process", holidayHandler.Process)
				})
			})
		})
	})
	return r
}

// NewLogger builds the JSON slog logger shared by the router and the
// service layer.
func NewLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
}
