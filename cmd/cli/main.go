// Command cli is the operator tool: user provisioning, company setup and
// quick balance checks against the configured database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/norrbok/norrbok/infra/initializer"
	"github.com/norrbok/norrbok/pkg/app"
	"github.com/norrbok/norrbok/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load(slog.Default(), ".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize dependencies: %v", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)

	ctx := context.Background()
	switch os.Args[1] {
	case "create-user":
		if len(os.Args) < 4 {
			fmt.Println("Usage: cli create-user <username> <email>")
			return
		}
		createUser(ctx, a, os.Args[2], os.Args[3])
	case "create-company":
		if len(os.Args) < 4 {
			fmt.Println("Usage: cli create-company <name> <org_number>")
			return
		}
		createCompany(ctx, a, os.Args[2], os.Args[3])
	case "seed-chart":
		if len(os.Args) < 3 {
			fmt.Println("Usage: cli seed-chart <company_id>")
			return
		}
		seedChart(ctx, a, os.Args[2])
	case "balance":
		if len(os.Args) < 3 {
			fmt.Println("Usage: cli balance <account_id>")
			return
		}
		balance(ctx, a, os.Args[2])
	default:
		color.Yellow("Unknown command: %s", os.Args[1])
		usage()
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  create-user <username> <email>      (password read from terminal)")
	fmt.Println("  create-company <name> <org_number>")
	fmt.Println("  seed-chart <company_id>")
	fmt.Println("  balance <account_id>")
}

func createUser(ctx context.Context, a *app.App, username, email string) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		color.Red("Failed to read password: %v", err)
		return
	}
	u, err := a.UserService.Register(ctx, username, email, string(password))
	if err != nil {
		color.Red("Failed to create user: %v", err)
		return
	}
	color.Green("User created: %s (%s)", u.Username, u.ID)
}

func createCompany(ctx context.Context, a *app.App, name, orgNumber string) {
	c, err := a.LedgerService.CreateCompany(ctx, name, orgNumber)
	if err != nil {
		color.Red("Failed to create company: %v", err)
		return
	}
	color.Green("Company created: %s (%s)", c.Name, c.ID)
}

func seedChart(ctx context.Context, a *app.App, rawID string) {
	companyID, err := uuid.Parse(rawID)
	if err != nil {
		color.Red("Invalid company ID: %v", err)
		return
	}
	accounts, err := a.LedgerService.SeedDefaultChart(ctx, companyID)
	if err != nil {
		color.Red("Failed to seed chart: %v", err)
		return
	}
	color.Green("Seeded %d accounts:", len(accounts))
	for _, acct := range accounts {
		fmt.Printf("  %s  %-30s %s\n", acct.Code, acct.Name, acct.Type)
	}
}

func balance(ctx context.Context, a *app.App, rawID string) {
	accountID, err := uuid.Parse(rawID)
	if err != nil {
		color.Red("Invalid account ID: %v", err)
		return
	}
	b, err := a.LedgerService.GetBalance(ctx, accountID)
	if err != nil {
		color.Red("Failed to fetch balance: %v", err)
		return
	}
	color.Green("Account %s balance: %s", accountID, b.StringFixed(2))
}
