package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account management commands",
	}

	cmd.AddCommand(newUserRegisterCmd())
	cmd.AddCommand(newUserLoginCmd())
	cmd.AddCommand(newUserMeCmd())
	cmd.AddCommand(newUserListCmd())

	return cmd
}

func newUserRegisterCmd() *cobra.Command {
	var name, email, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || pass == "" || name == "" {
				return fmt.Errorf("--name, --email, and --pass are required")
			}

			req := map[string]string{
				"display_name": name,
				"email":        email,
				"password":     pass,
			}
			var result AuthResult

			if err := client.Post("/api/v1/users/register", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newUserLoginCmd() *cobra.Command {
	var email, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || pass == "" {
				return fmt.Errorf("--email and --pass are required")
			}

			req := map[string]string{
				"email":    email,
				"password": pass,
			}
			var result AuthResult

			if err := client.Post("/api/v1/users/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newUserMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show current account info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if err := client.Get("/api/v1/users/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered users (for picking invitees)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []User

			if err := client.Get("/api/v1/users", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
