package repository

import (
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS finance_transactions (
		id TEXT PRIMARY KEY,
		transaction_date DATE NOT NULL,
		transaction_type TEXT NOT NULL CHECK (transaction_type IN ('income', 'expense')),
		amount NUMERIC(15, 2) NOT NULL CHECK (amount >= 0),
		account_id TEXT,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_finance_transactions_account ON finance_transactions (account_id)`,
	`CREATE TABLE IF NOT EXISTS jamaah (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		gender TEXT NOT NULL CHECK (gender IN ('male', 'female')),
		total_price NUMERIC(15, 2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS jamaah_payments (
		id TEXT PRIMARY KEY,
		jamaah_id TEXT NOT NULL REFERENCES jamaah (id) ON DELETE CASCADE,
		amount NUMERIC(15, 2) NOT NULL CHECK (amount > 0),
		payment_date DATE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'verified', 'rejected')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jamaah_payments_jamaah ON jamaah_payments (jamaah_id)`,
	`CREATE TABLE IF NOT EXISTS package_hotel_bookings (
		booking_id TEXT PRIMARY KEY,
		package_hotel_id TEXT NOT NULL,
		jamaah_id TEXT NOT NULL REFERENCES jamaah (id) ON DELETE CASCADE,
		room_type TEXT NOT NULL CHECK (room_type IN ('Quad', 'Triple', 'Double')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_package_hotel_bookings_context ON package_hotel_bookings (package_hotel_id)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		package_hotel_id TEXT NOT NULL,
		room_number TEXT NOT NULL,
		room_type TEXT NOT NULL CHECK (room_type IN ('Quad', 'Triple', 'Double')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_context ON rooms (package_hotel_id)`,
	`CREATE TABLE IF NOT EXISTS room_occupants (
		room_id TEXT NOT NULL REFERENCES rooms (id) ON DELETE CASCADE,
		booking_id TEXT NOT NULL UNIQUE REFERENCES package_hotel_bookings (booking_id) ON DELETE CASCADE,
		position INT NOT NULL,
		PRIMARY KEY (room_id, booking_id)
	)`,
}

// EnsureSchema creates the tables used by the service when they are missing
func EnsureSchema(db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
