// Package cli is the shoecart command line storefront. The signed-in identity
// is kept in local session storage between invocations.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/app"
	"github.com/rinsh4dd/e-com/internal/auth"
	"github.com/rinsh4dd/e-com/internal/config"
	"github.com/rinsh4dd/e-com/internal/logging"
	"github.com/rinsh4dd/e-com/internal/session"
)

// Env is what commands run against.
type Env struct {
	Services *app.Services
	Session  *session.Store
}

type runner struct {
	cfgPath string
	backend string
	verbose bool
	asJSON  bool

	env    *Env
	app    *app.App
	logger *zap.Logger
}

// Execute runs the CLI with args and releases whatever it opened.
func Execute(ctx context.Context, args []string) error {
	r := &runner{}
	root := r.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := r.close(ctx); err == nil {
		err = cerr
	}
	return err
}

// NewRootCmd builds the command tree on top of env instead of opening the
// configured backend.
func NewRootCmd(env *Env) *cobra.Command {
	r := &runner{env: env, logger: zap.NewNop()}
	return r.rootCmd()
}

func (r *runner) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shoecart",
		Short:         "ShoeCart storefront from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.open(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&r.cfgPath, "config", "c", "shoecart.yaml", "config file")
	root.PersistentFlags().StringVar(&r.backend, "backend", "", "override the configured backend (rest, mongo, memory)")
	root.PersistentFlags().BoolVarP(&r.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&r.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(
		r.loginCmd(),
		r.logoutCmd(),
		r.registerCmd(),
		r.whoamiCmd(),
		r.productsCmd(),
		r.cartCmd(),
		r.wishlistCmd(),
		r.checkoutCmd(),
		r.ordersCmd(),
		r.adminCmd(),
	)
	return root
}

func (r *runner) open(ctx context.Context) error {
	if r.env != nil {
		return nil
	}
	cfg, err := config.Load(r.cfgPath)
	if err != nil {
		return err
	}
	if r.backend != "" {
		cfg.Backend = r.backend
	}
	if r.verbose {
		cfg.Logging.Level = "debug"
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	r.logger = logger

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	sess, err := a.OpenSession()
	if err != nil {
		_ = a.Close(ctx)
		return err
	}
	r.app = a
	r.env = &Env{Services: a.Services, Session: sess}
	return nil
}

func (r *runner) close(ctx context.Context) error {
	if r.app == nil {
		return nil
	}
	err := r.env.Session.Close()
	if cerr := r.app.Close(ctx); err == nil {
		err = cerr
	}
	_ = r.logger.Sync()
	return err
}

// Guards. Each failure carries a hint naming the command to run next.

func (r *runner) requireUser(*cobra.Command, []string) error {
	return withHint(auth.RequireIdentity(r.env.Session.Identity()))
}

func (r *runner) requireAdmin(*cobra.Command, []string) error {
	return withHint(auth.RequireAdmin(r.env.Session.Identity()))
}

func (r *runner) requireAnonymous(*cobra.Command, []string) error {
	return withHint(auth.RequireAnonymous(r.env.Session.Identity()))
}

func withHint(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrLoginRequired):
		return fmt.Errorf("%w (run `shoecart login`)", err)
	case errors.Is(err, auth.ErrAdminRequired):
		return fmt.Errorf("%w (run `shoecart login --admin`)", err)
	case errors.Is(err, auth.ErrAlreadySignedIn):
		return fmt.Errorf("%w (run `shoecart logout` first)", err)
	}
	return err
}

// guard installs check as the PreRunE of cmd and every command below it.
func guard(cmd *cobra.Command, check func(*cobra.Command, []string) error) *cobra.Command {
	cmd.PreRunE = check
	for _, c := range cmd.Commands() {
		guard(c, check)
	}
	return cmd
}
