package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"inkwell/app/config"
	"inkwell/app/routes"
)

// CliVersion is the version reported by the version command.
const CliVersion = "1.0.0"

// exit is swappable for tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain runs the CLI. Split from main so tests can drive it.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("inkwell version %s\n", CliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: inkwell <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog API server. Configuration
                                 comes from the environment (see .env):
                                 PORT, DATA_DIR, UPLOADS_DIR, JWT_SECRET,
                                 TOKEN_TTL, CORS_ALLOWED_ORIGINS,
                                 REDIS_ADDR, ENV.
`
	fmt.Println(helpText)
}

// serve opens the Badger store and runs the HTTP API.
func serve() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	opts := badger.DefaultOptions(cfg.DataDir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	router, err := routes.SetupRoutes(db, cfg)
	if err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	log.Printf("Starting blog service on port %s", cfg.Port)
	if err := routes.StartServer(":"+cfg.Port, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
