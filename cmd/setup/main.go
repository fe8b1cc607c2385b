// Command setup creates the application database if needed and applies the
// schema. Safe to rerun: the schema statements are idempotent.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/questkeeper-app/questkeeper/internal/database/schema"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	adminURL := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", user, password, host, port)
	if err := ensureDatabase(ctx, adminURL, dbname); err != nil {
		return err
	}

	targetURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
	return applySchema(ctx, targetURL, dbname)
}

// ensureDatabase creates dbname if it does not exist, via the admin
// 'postgres' database
func ensureDatabase(ctx context.Context, adminURL, dbname string) error {
	conn, err := pgx.Connect(ctx, adminURL)
	if err != nil {
		return fmt.Errorf("connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbname).Scan(&exists); err != nil {
		return fmt.Errorf("check database existence: %w", err)
	}
	if exists {
		fmt.Printf("Database %s already exists.\n", dbname)
		return nil
	}

	fmt.Printf("Creating database %s...\n", dbname)
	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbname)); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	fmt.Println("Database created successfully.")
	return nil
}

func applySchema(ctx context.Context, targetURL, dbname string) error {
	conn, err := pgx.Connect(ctx, targetURL)
	if err != nil {
		return fmt.Errorf("connect to %s database: %w", dbname, err)
	}
	defer conn.Close(ctx)

	fmt.Println("Initializing schema...")
	if _, err := conn.Exec(ctx, schema.SchemaSQL); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	fmt.Println("Schema initialized successfully.")
	return nil
}
