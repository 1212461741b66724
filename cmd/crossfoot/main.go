package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dkorolev/crossfoot/internal/cli"
)

func main() {
	// Load .env before flag parsing so provider keys are visible
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
