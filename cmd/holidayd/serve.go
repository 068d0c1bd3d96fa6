package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/holiday-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/holiday-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/holiday-backend-go/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/holiday-backend-go/internal/service/company"
	serviceEmployee "github.com/cmlabs-hris/holiday-backend-go/internal/service/employee"
	serviceHoliday "github.com/cmlabs-hris/holiday-backend-go/internal/service/holiday"
	serviceInvitation "github.com/cmlabs-hris/holiday-backend-go/internal/service/invitation"
	serviceNotification "github.com/cmlabs-hris/holiday-backend-go/internal/service/notification"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	invitationRepo := postgresql.NewInvitationRepository(db)
	tx := postgresql.NewTransactor(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("jwt: %w", err)
	}

	hub := sse.NewHub()
	notifier := serviceNotification.NewNotificationService(hub, serviceNotification.Config{})

	companyService := serviceCompany.NewCompanyService(companyRepo)
	authService := serviceAuth.NewAuthService(tx, userRepo, companyService, JWTService)
	employeeService := serviceEmployee.NewEmployeeService(tx, userRepo)
	holidayService := serviceHoliday.NewHolidayService(tx, holidayRepo, userRepo, notifier)
	invitationService := serviceInvitation.NewInvitationService(tx, invitationRepo, userRepo, companyRepo, cfg.Invitation.Expiry)

	router := appHTTP.NewRouter(
		cfg,
		logger,
		JWTService,
		appHTTP.NewAuthHandler(JWTService, authService),
		appHTTP.NewEmployeeHandler(employeeService, companyService),
		appHTTP.NewHolidayHandler(holidayService),
		appHTTP.NewEventHandler(notifier, JWTService),
		appHTTP.NewInvitationHandler(invitationService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-sigCtx.Done():
		logger.Info("Shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}

	// Streams hold their requests open, so close them before draining.
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	notifier.Stop()

	logger.Info("Server stopped")
	return nil
}
