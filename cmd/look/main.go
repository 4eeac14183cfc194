package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	os.Exit(newApp(os.Stdout, os.Stderr).Execute(os.Args[1:]))
}
