package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/sistema-academico/academico-console/internal/api"
	"github.com/sistema-academico/academico-console/internal/authz"
	"github.com/sistema-academico/academico-console/internal/permission"
	"github.com/sistema-academico/academico-console/internal/session"
)

// ErrDenied marks a command refused by the authorization gate. The denial
// notice has already been printed when it is returned.
var ErrDenied = errors.New("cli: permission denied")

// Console bundles the client core behind the subcommands. Every protected
// affordance goes through the authorization gate before the backend is
// called.
type Console struct {
	logger   *slog.Logger
	client   *api.Client
	store    *session.Store
	registry *permission.Registry
	gate     *authz.Gate
	validate *validator.Validate
	out      io.Writer
}

// NewConsole constructs a Console.
func NewConsole(logger *slog.Logger, client *api.Client, store *session.Store, registry *permission.Registry, out io.Writer) *Console {
	return &Console{
		logger:   logger,
		client:   client,
		store:    store,
		registry: registry,
		gate:     authz.NewGate(registry),
		validate: validator.New(),
		out:      out,
	}
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Login validates the credentials locally, then runs the session store's
// login flow.
func (c *Console) Login(ctx context.Context, email, password string) error {
	if err := c.validate.Struct(loginInput{Email: email, Password: password}); err != nil {
		return errors.New("informe email e senha válidos")
	}
	principal, err := c.store.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Login realizado com sucesso! Bem-vindo(a), %s (%s).\n", principal.Name, principal.Role)
	return nil
}

// Logout ends the session; it always succeeds locally.
func (c *Console) Logout(ctx context.Context) {
	c.store.Logout(ctx)
	fmt.Fprintln(c.out, "Sessão encerrada.")
}

// WhoAmI prints the current principal.
func (c *Console) WhoAmI(ctx context.Context) error {
	principal := c.store.Principal()
	if principal == nil {
		fmt.Fprintln(c.out, "Não autenticado.")
		return nil
	}
	fmt.Fprintf(c.out, "%s <%s>\n", principal.Name, principal.Email)
	fmt.Fprintf(c.out, "Papel: %s\n", principal.Role)
	if principal.CourseName != "" {
		fmt.Fprintf(c.out, "Curso: %s\n", principal.CourseName)
	}
	return nil
}

// Refresh re-fetches the grant set for the current session.
func (c *Console) Refresh(ctx context.Context) error {
	if err := c.store.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Permissões atualizadas.")
	return nil
}

// guard checks the gate for one affordance; when denied it prints the
// explicit denial notice and returns ErrDenied without touching the
// backend.
func (c *Console) guard(resource, action string) error {
	if c.gate.Can(resource, action) {
		return nil
	}
	fmt.Fprintln(c.out, authz.DenialNotice(action))
	return ErrDenied
}
