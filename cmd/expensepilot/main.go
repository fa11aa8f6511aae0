package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/expensepilot-dev/expensepilot/internal/commands"
)

func main() {
	// A .env in the working directory can supply EXPENSEPILOT_*
	// overrides; missing files are fine.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
