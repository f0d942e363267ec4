package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sistema-academico/academico-console/cmd/academico/cli"
	"github.com/sistema-academico/academico-console/internal/api"
	"github.com/sistema-academico/academico-console/internal/app"
	"github.com/sistema-academico/academico-console/internal/permission"
	"github.com/sistema-academico/academico-console/internal/session"
)

const usage = `Sistema Acadêmico — console administrativo

Uso: academico <comando> [opções]

Comandos:
  login       -email -password       autentica no backend
  logout                             encerra a sessão
  whoami                             mostra o usuário autenticado
  refresh                            recarrega as permissões da sessão
  resources                          lista os recursos disponíveis
  dashboard                          indicadores agregados
  users       list|create|update|delete
  courses     list|show|create|update|delete|subjects
  semesters   list|create|update|delete
`

func main() {
	if app.InTestMode() {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	stateDir, err := cfg.ResolveStateDir()
	if err != nil {
		logger.Error("resolve state dir", slog.Any("error", err))
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)
	registry := permission.NewRegistry()
	store := session.NewStore(client, registry, session.NewFileStore(stateDir), logger)

	// Restore a persisted session before dispatching any command; failure
	// is silent and simply leaves the console logged out.
	store.Rehydrate(ctx)

	console := cli.NewConsole(logger, client, store, registry, os.Stdout)

	if err := run(ctx, console, store, os.Args[1:]); err != nil {
		if !errors.Is(err, cli.ErrDenied) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "Erro:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, console *cli.Console, store *session.Store, args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return errors.New("comando ausente")
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ContinueOnError)
		email := fs.String("email", "", "email de acesso")
		password := fs.String("password", "", "senha")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return console.Login(ctx, *email, *password)

	case "logout":
		console.Logout(ctx)
		return nil

	case "whoami":
		return console.WhoAmI(ctx)
	}

	// Everything below needs an authenticated session.
	if store.Principal() == nil {
		fmt.Fprintln(os.Stderr, "Não autenticado. Use 'academico login'.")
		return errors.New("sessão ausente")
	}

	switch cmd {
	case "refresh":
		return console.Refresh(ctx)
	case "resources":
		return console.Resources(ctx)
	case "dashboard":
		return console.Dashboard(ctx)
	case "users":
		return runUsers(ctx, console, rest)
	case "courses":
		return runCourses(ctx, console, rest)
	case "semesters":
		return runSemesters(ctx, console, rest)
	default:
		fmt.Print(usage)
		return fmt.Errorf("comando desconhecido: %s", cmd)
	}
}

func runUsers(ctx context.Context, console *cli.Console, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: academico users list|create|update|delete")
	}
	verb, rest := args[0], args[1:]
	fs := flag.NewFlagSet("users "+verb, flag.ContinueOnError)
	id := fs.String("id", "", "identificador do usuário")
	name := fs.String("name", "", "nome")
	email := fs.String("email", "", "email")
	role := fs.String("role", "", "papel (admin|coordinator|teacher|student)")
	course := fs.String("course", "", "curso (opcional)")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	switch verb {
	case "list":
		return console.ListUsers(ctx)
	case "create":
		return console.CreateUser(ctx, *name, *email, *role, *course)
	case "update":
		return console.UpdateUser(ctx, *id, *name, *email, *role, *course)
	case "delete":
		return console.DeleteUser(ctx, *id)
	default:
		return fmt.Errorf("subcomando desconhecido: users %s", verb)
	}
}

func runCourses(ctx context.Context, console *cli.Console, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: academico courses list|show|create|update|delete|subjects")
	}
	verb, rest := args[0], args[1:]
	fs := flag.NewFlagSet("courses "+verb, flag.ContinueOnError)
	id := fs.String("id", "", "identificador do curso")
	name := fs.String("name", "", "nome")
	code := fs.String("code", "", "código")
	description := fs.String("description", "", "descrição")
	semester := fs.String("semester", "", "identificador do semestre")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	switch verb {
	case "list":
		return console.ListCourses(ctx)
	case "show":
		return console.ShowCourse(ctx, *id)
	case "create":
		return console.CreateCourse(ctx, *name, *code, *description)
	case "update":
		return console.UpdateCourse(ctx, *id, *name, *code, *description)
	case "delete":
		return console.DeleteCourse(ctx, *id)
	case "subjects":
		return console.ListSubjects(ctx, *id, *semester)
	default:
		return fmt.Errorf("subcomando desconhecido: courses %s", verb)
	}
}

func runSemesters(ctx context.Context, console *cli.Console, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: academico semesters list|create|update|delete")
	}
	verb, rest := args[0], args[1:]
	fs := flag.NewFlagSet("semesters "+verb, flag.ContinueOnError)
	id := fs.String("id", "", "identificador do semestre")
	code := fs.String("code", "", "código (ex.: 2026.1)")
	course := fs.String("course", "", "identificador do curso")
	start := fs.String("start", "", "data de início (YYYY-MM-DD)")
	end := fs.String("end", "", "data de término (YYYY-MM-DD)")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	switch verb {
	case "list":
		return console.ListSemesters(ctx)
	case "create":
		return console.CreateSemester(ctx, *code, *course, *start, *end)
	case "update":
		return console.UpdateSemester(ctx, *id, *code, *course, *start, *end)
	case "delete":
		return console.DeleteSemester(ctx, *id)
	default:
		return fmt.Errorf("subcomando desconhecido: semesters %s", verb)
	}
}
