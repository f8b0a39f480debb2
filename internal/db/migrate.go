package db

import (
	"context"
	"database/sql"
)

const accountsMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS accounts (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    username text NOT NULL,
    name text NOT NULL DEFAULT '',
    email text NOT NULL,
    password_hash text NOT NULL DEFAULT '',
    roles text[] NOT NULL DEFAULT '{ROLE_USER}',
    provider text NOT NULL DEFAULT 'local',
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS accounts_email_lower_unique
ON accounts (LOWER(email));

CREATE UNIQUE INDEX IF NOT EXISTS accounts_username_lower_unique
ON accounts (LOWER(username));
`

func RunAccountsMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, accountsMigration)
	return err
}
