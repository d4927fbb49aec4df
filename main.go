package main

import (
	"os"

	"github.com/joho/godotenv"

	"patientor/internal/cli"
)

func main() {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
