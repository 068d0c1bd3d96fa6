package main

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/holiday-backend-go/internal/config"
	"github.com/cmlabs-hris/holiday-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/holiday-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/holiday-backend-go/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/holiday-backend-go/internal/service/company"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a demo company",
	Long:  `Creates a demo company with one employer and a few employees. Every account uses the password "` + fixtures.DemoPassword + `".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		hash, err := serviceAuth.HashPassword(fixtures.DemoPassword)
		if err != nil {
			return err
		}

		ids, err := fixtures.Seed(
			cmd.Context(),
			postgresql.NewTransactor(db),
			serviceCompany.NewCompanyService(postgresql.NewCompanyRepository(db)),
			postgresql.NewUserRepository(db),
			hash,
		)
		if errors.Is(err, fixtures.ErrAlreadySeeded) {
			fmt.Fprintln(cmd.OutOrStdout(), "demo data already present")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Seeded company:", ids.CompanyID)
		for _, u := range fixtures.GetDemoUsers() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s) %s\n", u.Email, u.Role, ids.UserIDs[u.Email])
		}
		return nil
	},
}
