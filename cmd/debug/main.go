package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/questkeeper-app/questkeeper/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	// Construct connection string
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	dbPool, err := database.NewPool(connString, 4, 30*time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	// Dump Characters
	fmt.Println("--- Characters ---")
	rows, err := dbPool.Query(ctx, `
		SELECT user_id, level, experience, gold, health, intelligence, strength, avatar_style
		FROM characters
		ORDER BY updated_at DESC
	`)
	if err != nil {
		log.Printf("Failed to query characters: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var userID, avatarStyle string
			var level, exp, gold, health, intelligence, strength int
			if err := rows.Scan(&userID, &level, &exp, &gold, &health, &intelligence, &strength, &avatarStyle); err != nil {
				log.Printf("Failed to scan character: %v", err)
			}
			fmt.Printf("User: %s, Level: %d, Exp: %d, Gold: %d, HP: %d, Int: %d, Str: %d, Avatar: %s\n",
				userID, level, exp, gold, health, intelligence, strength, avatarStyle)
		}
	}

	// Dump Active Tasks
	fmt.Println("\n--- Active Tasks ---")
	rows, err = dbPool.Query(ctx, `
		SELECT task_id, user_id, name, difficulty, quest_type, created_at
		FROM tasks
		WHERE NOT completed
		ORDER BY created_at
	`)
	if err != nil {
		log.Printf("Failed to query tasks: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var taskID, userID, name, difficulty, questType string
			var createdAt interface{}
			if err := rows.Scan(&taskID, &userID, &name, &difficulty, &questType, &createdAt); err != nil {
				log.Printf("Failed to scan task: %v", err)
			}
			fmt.Printf("Task: %s, User: %s, Name: %q, Difficulty: %s, Type: %s, CreatedAt: %v\n",
				taskID, userID, name, difficulty, questType, createdAt)
		}
	}

	// Completed counts per user, useful when checking reward math by hand
	fmt.Println("\n--- Completions ---")
	rows, err = dbPool.Query(ctx, `
		SELECT user_id, COUNT(*) FROM tasks WHERE completed GROUP BY user_id ORDER BY user_id
	`)
	if err != nil {
		log.Printf("Failed to query completions: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var userID string
			var count int
			if err := rows.Scan(&userID, &count); err != nil {
				log.Printf("Failed to scan completion count: %v", err)
			}
			fmt.Printf("User: %s, Completed: %d\n", userID, count)
		}
	}
}
