package repositories

import (
	"context"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS distributors (
		id BIGSERIAL PRIMARY KEY,
		arn TEXT NOT NULL UNIQUE,
		arn_holder_name TEXT NOT NULL,
		city TEXT,
		owner TEXT,
		stage TEXT,
		aum BIGINT,
		date_added TEXT,
		priority TEXT,
		linkedin_url TEXT,
		notes_link TEXT,
		notes TEXT,
		address TEXT,
		pin TEXT,
		email TEXT,
		telephone_r TEXT,
		telephone_o TEXT,
		arn_valid_from TEXT,
		arn_valid_till TEXT,
		kyd_compliant TEXT,
		euin TEXT,
		lead_source TEXT,
		platform_used TEXT,
		follow_up_date TEXT,
		secondary_contact TEXT,
		secondary_name TEXT,
		first_call_date TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dynamic_fields (
		id BIGSERIAL PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		type TEXT NOT NULL,
		options TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS distributor_dynamic_values (
		distributor_id BIGINT NOT NULL REFERENCES distributors(id) ON DELETE CASCADE,
		field_key TEXT NOT NULL REFERENCES dynamic_fields(key) ON DELETE CASCADE,
		field_value TEXT NOT NULL,
		PRIMARY KEY (distributor_id, field_key)
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id UUID PRIMARY KEY,
		distributor_id BIGINT NOT NULL REFERENCES distributors(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// InitSchema creates the tables if they do not exist yet. Safe to run on
// every startup.
func InitSchema(ctx context.Context, db Database) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
