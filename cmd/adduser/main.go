package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/repository"
	"github.com/csemotors/csemotors-go/internal/service"
	"github.com/csemotors/csemotors-go/internal/validation"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Account email")
	first := fs.String("first", "", "First name")
	last := fs.String("last", "", "Last name")
	accountType := fs.String("type", string(model.AccountEmployee), "Account type (Employee or Admin)")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	driver := fs.String("driver", envOr("DB_DRIVER", "mysql"), "Database driver (mysql or sqlite)")
	dsn := fs.String("dsn", os.Getenv("DATABASE_DSN"), "Database DSN")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" || *first == "" || *last == "" {
		fmt.Fprintln(stdout, "Usage: adduser -email <email> -first <name> -last <name> [-type Employee|Admin] [-password <password>] [-driver mysql|sqlite] [-dsn <dsn>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email, first, last")
	}

	typ := model.AccountType(*accountType)
	if typ != model.AccountEmployee && typ != model.AccountAdmin {
		return fmt.Errorf("type must be Employee or Admin, got %q", *accountType)
	}
	if *dsn == "" {
		return fmt.Errorf("missing database dsn: set -dsn or DATABASE_DSN")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if !validation.StrongPassword(password) {
		return fmt.Errorf("password must be at least 12 characters with an uppercase letter, a lowercase letter, a number and a symbol")
	}

	db, err := repository.NewDB(*driver, *dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := repository.Migrate(ctx, db, *driver); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	accounts := service.NewAccountService(repository.NewAccountRepository(db), nil)
	account, err := accounts.CreateAccount(ctx, model.NewAccount{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Password:  password,
		Type:      typ,
	})
	if errors.Is(err, service.ErrEmailTaken) {
		return fmt.Errorf("account %s already exists", *email)
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Fprintf(stdout, "%s account %s created successfully with ID %d\n", account.Type, account.Email, account.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests supply the password as the first line.
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
