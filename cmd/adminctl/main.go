// adminctl is the operator CLI for the portal: seeding the admin account,
// minting API tokens for headless clients, and regenerating the tax table.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ozarkhomeloans/portal/config"
	"github.com/ozarkhomeloans/portal/internal/auth"
	"github.com/ozarkhomeloans/portal/internal/database"
	"github.com/ozarkhomeloans/portal/internal/token"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "adminctl",
		Short:   "Operator tools for the portal server",
		Version: version,
	}

	root.AddCommand(seedAdminCmd())
	root.AddCommand(tokenCmd())
	root.AddCommand(importTaxesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDB opens the configured SQLite database.
func openDB() (*database.DB, *config.Config, error) {
	cfg := config.Load()
	db, err := database.New(cfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", cfg.DB.Path, err)
	}
	return db, cfg, nil
}

func seedAdminCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create or promote the admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}

			db, cfg, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			authService := auth.New(db, cfg)

			existing, err := db.GetUserByEmail(email)
			if err != nil {
				return fmt.Errorf("lookup user: %w", err)
			}
			if existing != nil {
				if err := db.UpdateUserRole(existing.ID, "admin"); err != nil {
					return fmt.Errorf("promote user: %w", err)
				}
				fmt.Printf("Promoted existing user %s to admin\n", email)
				return nil
			}

			user, err := authService.CreateUser(email, password, name, "admin")
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Printf("Created admin user %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	cmd.Flags().StringVar(&name, "name", "Administrator", "Display name")
	return cmd
}

func tokenCmd() *cobra.Command {
	var email string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API bearer token for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}

			db, cfg, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if cfg.JWT.SigningKey == "" {
				return fmt.Errorf("JWT_SIGNING_KEY is not set; the server must share the same key")
			}

			user, err := db.GetUserByEmail(email)
			if err != nil {
				return fmt.Errorf("lookup user: %w", err)
			}
			if user == nil {
				return fmt.Errorf("no user with email %s", email)
			}

			tokenService := token.New(cfg.JWT.SigningKey, cfg.JWT.Issuer)
			signed, err := tokenService.GenerateToken(user.ID, user.Email, user.Role, ttl)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}

			fmt.Println(signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "User email address")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
