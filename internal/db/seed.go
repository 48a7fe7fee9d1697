package db

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultUsername is the account created on first boot. Its password is "1234".
const DefaultUsername = "twwt"

// Seed ensures the default account and sample posts exist. Safe to run on
// every boot: it only writes when the tables are empty, and backfills
// authorless posts to the default user otherwise.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(
		`SELECT COUNT(*) FROM users WHERE username = $1`, DefaultUsername).Scan(&count); err != nil {
		return fmt.Errorf("count default user: %w", err)
	}

	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("1234"), 10)
		if err != nil {
			return fmt.Errorf("hash default password: %w", err)
		}
		if _, err := db.Exec(
			`INSERT INTO users (username, password) VALUES ($1, $2)`,
			DefaultUsername, string(hash)); err != nil {
			return fmt.Errorf("create default user: %w", err)
		}
	}

	var defaultUserID int
	if err := db.QueryRow(
		`SELECT id FROM users WHERE username = $1`, DefaultUsername).Scan(&defaultUserID); err != nil {
		return fmt.Errorf("get default user id: %w", err)
	}

	var postCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&postCount); err != nil {
		return fmt.Errorf("count posts: %w", err)
	}

	if postCount == 0 {
		if _, err := db.Exec(`
			INSERT INTO posts (subject, title, content, user_id) VALUES
			('Fitness', 'How to get fit', 'Eat healthy and exercise', $1),
			('Technology', 'Learning to Code', 'Start with the basics and practice daily', $1),
			('Travel', 'Visit Vietnam', 'Amazing culture and delicious food', $1)
		`, defaultUserID); err != nil {
			return fmt.Errorf("insert sample posts: %w", err)
		}
		return nil
	}

	// Legacy rows from before accounts existed have no author.
	if _, err := db.Exec(
		`UPDATE posts SET user_id = $1 WHERE user_id IS NULL`, defaultUserID); err != nil {
		return fmt.Errorf("backfill post authors: %w", err)
	}

	return nil
}
