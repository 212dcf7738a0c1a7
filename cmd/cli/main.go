package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tenderdesk/procurement-service/internal/config"
	"github.com/tenderdesk/procurement-service/internal/persistence"
	"github.com/tenderdesk/procurement-service/internal/repository"
	"github.com/tenderdesk/procurement-service/internal/service"
)

const usage = "expected 'create-admin' or 'reset-password' subcommand"

// readPassword is swapped out in tests.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

type createAdminArgs struct {
	input service.MemberInput
}

type resetPasswordArgs struct {
	username string
	password string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create-admin":
		args, err := parseCreateAdmin(os.Args[2:], os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		withAdminService(func(ctx context.Context, admins *service.AdminService) error {
			user, err := admins.CreateAdmin(ctx, args.input)
			if err != nil {
				return err
			}
			fmt.Printf("Admin '%s' created with id %d.\n", user.Username, user.ID)
			return nil
		})
	case "reset-password":
		args, err := parseResetPassword(os.Args[2:], os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		withAdminService(func(ctx context.Context, admins *service.AdminService) error {
			if err := admins.ResetPassword(ctx, args.username, args.password); err != nil {
				return err
			}
			fmt.Printf("Password for '%s' updated.\n", args.username)
			return nil
		})
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func parseCreateAdmin(args []string, out io.Writer) (createAdminArgs, error) {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(out)
	name := fs.String("name", "Admin", "Display name")
	username := fs.String("username", "", "Username for the new admin")
	email := fs.String("email", "", "Email for the new admin")
	password := fs.String("password", "", "Password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return createAdminArgs{}, err
	}
	if *username == "" || *email == "" {
		fs.PrintDefaults()
		return createAdminArgs{}, errors.New("username and email are required")
	}

	pw, err := passwordOrPrompt(*password, out)
	if err != nil {
		return createAdminArgs{}, err
	}
	return createAdminArgs{input: service.MemberInput{
		Name:     *name,
		Username: *username,
		Email:    *email,
		Password: pw,
	}}, nil
}

func parseResetPassword(args []string, out io.Writer) (resetPasswordArgs, error) {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	fs.SetOutput(out)
	username := fs.String("username", "", "Account to update")
	password := fs.String("password", "", "New password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return resetPasswordArgs{}, err
	}
	if *username == "" {
		fs.PrintDefaults()
		return resetPasswordArgs{}, errors.New("username is required")
	}

	pw, err := passwordOrPrompt(*password, out)
	if err != nil {
		return resetPasswordArgs{}, err
	}
	return resetPasswordArgs{username: *username, password: pw}, nil
}

func passwordOrPrompt(flagValue string, out io.Writer) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(out, "Password: ")
	raw, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimSpace(string(raw))
	if pw == "" {
		return "", errors.New("password must not be empty")
	}
	return pw, nil
}

func withAdminService(fn func(context.Context, *service.AdminService) error) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	logger := zap.NewNop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool == nil {
		log.Fatal("POSTGRES_DSN is required")
	}
	if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	admins := service.NewAdminService(repository.NewUserRepository(pool), cfg.Auth.BcryptCost)
	if err := fn(ctx, admins); err != nil {
		pg.Close()
		log.Fatal(err)
	}
}
