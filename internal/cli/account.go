package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/auth"
	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/session"
)

func (r *runner) userID() models.ID {
	return r.env.Session.Identity().ID
}

func (r *runner) loginCmd() *cobra.Command {
	var email, password string
	var asAdmin bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the identity locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				u   *models.User
				err error
			)
			if asAdmin {
				u, err = r.env.Services.Auth.AdminLogin(ctx, email, password)
			} else {
				u, err = r.env.Services.Auth.Login(ctx, email, password)
			}
			if err != nil {
				return err
			}
			if err := r.env.Session.Login(session.IdentityOf(*u)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", u.Name)
			if u.Role.IsAdmin() {
				fmt.Fprintln(cmd.OutOrStdout(), "Admin commands are under `shoecart admin`.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().BoolVar(&asAdmin, "admin", false, "sign in to the admin panel")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	cmd.PreRunE = r.requireAnonymous
	return cmd
}

func (r *runner) logoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.env.Session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
	cmd.PreRunE = r.requireUser
	return cmd
}

func (r *runner) registerCmd() *cobra.Command {
	var req auth.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := r.env.Services.Auth.Register(cmd.Context(), req)
			if err != nil {
				return withDetails(err)
			}
			if err := r.env.Session.Register(session.IdentityOf(*u)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registration successful. Welcome, %s!\n", u.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "your name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (8+ chars, 1 uppercase, 1 number, 1 special char)")
	cmd.PreRunE = r.requireAnonymous
	return cmd
}

func (r *runner) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity and cart count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := r.env.Session.Identity()
			if id == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			if err := r.env.Session.RefreshCartCount(cmd.Context()); err != nil {
				r.logger.Debug("cart count refresh failed", zap.Error(err))
			}
			out := struct {
				session.Identity
				CartCount int `json:"cartCount"`
			}{*id, r.env.Session.CartCount()}
			return r.show(cmd, out, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s <%s> role=%s cart=%d\n", id.Name, id.Email, id.Role, out.CartCount)
				return err
			})
		},
	}
}
