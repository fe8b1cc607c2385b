package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/questkeeper-app/questkeeper/internal/database"
	"github.com/questkeeper-app/questkeeper/internal/database/schema"
)

func main() {
	skipConfirm := flag.Bool("yes", false, "Skip the confirmation prompt")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		log.Fatal("DB_NAME is not set")
	}

	if !*skipConfirm && !confirmReset(dbName) {
		log.Println("Aborted.")
		return
	}

	if err := resetDatabase(context.Background(), dbName); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}

	log.Println("\n✅ Database reset complete, schema applied.")
}

// confirmReset asks for the database name back before anything is dropped.
func confirmReset(dbName string) bool {
	fmt.Printf("This DROPS database %q and every character and task in it.\n", dbName)
	fmt.Printf("Type the database name to continue: ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(answer) == dbName
}

func resetDatabase(ctx context.Context, dbName string) error {
	// Connect to PostgreSQL server (postgres database to manage other databases)
	serverConnString := connString("postgres")

	serverPool, err := database.NewPool(serverConnString, 10, 30*time.Minute, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL server: %w", err)
	}
	defer serverPool.Close()

	// Terminate existing connections so the drop does not block
	log.Printf("Terminating existing connections to database %s...", dbName)
	_, err = serverPool.Exec(ctx, fmt.Sprintf(`
		SELECT pg_terminate_backend(pg_stat_activity.pid)
		FROM pg_stat_activity
		WHERE pg_stat_activity.datname = '%s'
		AND pid <> pg_backend_pid()
	`, dbName))
	if err != nil {
		log.Printf("Warning: Failed to terminate connections: %v", err)
	}

	log.Printf("Dropping database %s if it exists...", dbName)
	if _, err := serverPool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}

	log.Printf("Creating database %s...", dbName)
	if _, err := serverPool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	// Apply the schema to the fresh database so the server can start
	// immediately after a reset
	log.Println("Applying schema...")
	conn, err := pgx.Connect(ctx, connString(dbName))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", dbName, err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schema.SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func connString(dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		dbName,
	)
}
