package user

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory database covering every table the account
// flows touch, including the ones the delete cascade sweeps. Raw DDL is
// used because the production column defaults are postgres-specific.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE users (
			id text PRIMARY KEY,
			username text,
			email text UNIQUE,
			password text,
			credits integer DEFAULT 3,
			verified numeric DEFAULT false,
			role text DEFAULT 'user',
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE TABLE verification_codes (
			id text PRIMARY KEY,
			email text,
			code text,
			expires_at datetime,
			created_at datetime
		)`,
		`CREATE TABLE subscriptions (
			id text PRIMARY KEY,
			user_id text,
			plan_name text,
			credits_remaining integer,
			max_credits integer,
			start_date datetime,
			end_date datetime,
			status text DEFAULT 'active',
			transaction_id text,
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE TABLE transactions (
			id text PRIMARY KEY,
			user_id text,
			plan_name text,
			amount real,
			status text,
			pid text UNIQUE,
			ref_id text,
			payment_method text DEFAULT 'eSewa',
			created_at datetime
		)`,
		`CREATE TABLE generations (
			id text PRIMARY KEY,
			user_id text,
			prompt text,
			image_key text,
			image_url text,
			aspect_ratio text,
			created_at datetime,
			updated_at datetime
		)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}
