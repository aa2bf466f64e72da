// Package main is the entry point for the expensectl command line tool.
package main

import (
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	_ = godotenv.Load()

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		pterm.DisableColor()
	}

	if err := cli.NewApp(version, nil).Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
