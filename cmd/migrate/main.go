package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"

	"github.com/yourusername/assessment-portal/internal/config"
	"github.com/yourusername/assessment-portal/pkg/database"
)

const usage = `usage: migrate [-config path] [-dir migrations] <command>

commands:
  up            apply all pending migrations
  down [N]      roll back N migrations (default 1)
  force V       set version V and clear the dirty flag
  version       print the current version
`

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	dir := flag.String("dir", "migrations", "migrations directory")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadWithDriver(*configPath, config.StoreDriverPostgres)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Postgres.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db, *dir)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(m, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("up: %w", err)
		}
		fmt.Println("Migrations applied.")
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return fmt.Errorf("down: invalid step count %q", args[1])
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("down: %w", err)
		}
		fmt.Printf("Rolled back %d migration(s).\n", steps)
	case "force":
		if len(args) < 2 {
			return errors.New("force: version is required")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("force: invalid version %q", args[1])
		}
		fmt.Printf("Forcing migration version to %d to clean dirty state...\n", version)
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force: %w", err)
		}
		fmt.Println("Success! Dirty state cleaned.")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied yet.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
	return nil
}
