package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS machines (
		id                         TEXT PRIMARY KEY,
		number                     TEXT NOT NULL UNIQUE,
		brand                      TEXT NOT NULL,
		capacity_ton               REAL NOT NULL,
		status                     TEXT NOT NULL DEFAULT 'available'
		                           CHECK(status IN ('available','in_use','maintenance')),
		next_maintenance_date      TEXT,
		last_maintenance_date      TEXT,
		hour_meter                 INTEGER NOT NULL DEFAULT 0,
		hour_meter_next_maintenance INTEGER,
		notes                      TEXT NOT NULL DEFAULT '',
		created_at                 TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS molds (
		id                          TEXT PRIMARY KEY,
		name                        TEXT NOT NULL UNIQUE,
		manufacturer                TEXT NOT NULL,
		cavities                    INTEGER NOT NULL,
		total_cycles                INTEGER NOT NULL DEFAULT 0,
		cycles_since_maintenance    INTEGER NOT NULL DEFAULT 0,
		maintenance_interval_cycles INTEGER,
		last_maintenance_date       TEXT,
		status                      TEXT NOT NULL DEFAULT 'available'
		                            CHECK(status IN ('available','in_use','maintenance')),
		notes                       TEXT NOT NULL DEFAULT '',
		created_at                  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS production_orders (
		id              TEXT PRIMARY KEY,
		order_number    TEXT NOT NULL UNIQUE,
		customer        TEXT NOT NULL,
		machine_id      TEXT NOT NULL REFERENCES machines(id),
		mold_id         TEXT NOT NULL REFERENCES molds(id),
		qty_target      INTEGER NOT NULL,
		qty_produced    INTEGER NOT NULL DEFAULT 0,
		cycle_seconds   REAL NOT NULL,
		material        TEXT NOT NULL,
		masterbatch_pct REAL NOT NULL DEFAULT 0,
		piece_weight_g  REAL NOT NULL,
		total_weight_kg TEXT NOT NULL,
		start_date      TEXT NOT NULL,
		due_date        TEXT,
		status          TEXT NOT NULL DEFAULT 'pending'
		                CHECK(status IN ('pending','in_production','completed','late','cancelled')),
		priority        INTEGER NOT NULL DEFAULT 3,
		notes           TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_orders_status ON production_orders(status)`,

	`CREATE TABLE IF NOT EXISTS appointments (
		id              TEXT PRIMARY KEY,
		order_id        TEXT NOT NULL REFERENCES production_orders(id) ON DELETE CASCADE,
		date            TEXT NOT NULL,
		shift           TEXT NOT NULL CHECK(shift IN ('A','B','C')),
		qty_produced    INTEGER NOT NULL,
		scrap_kg        TEXT NOT NULL DEFAULT '0',
		downtime_min    INTEGER NOT NULL DEFAULT 0,
		downtime_reason TEXT NOT NULL DEFAULT '',
		operator        TEXT NOT NULL,
		notes           TEXT NOT NULL DEFAULT '',
		recorded_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_order ON appointments(order_id)`,

	`CREATE TABLE IF NOT EXISTS maintenance_records (
		id               TEXT PRIMARY KEY,
		equipment_kind   TEXT NOT NULL CHECK(equipment_kind IN ('machine','mold')),
		equipment_id     TEXT NOT NULL,
		date             TEXT NOT NULL,
		maintenance_type TEXT NOT NULL CHECK(maintenance_type IN ('preventive','corrective')),
		description      TEXT NOT NULL,
		technician       TEXT NOT NULL,
		cost             TEXT NOT NULL DEFAULT '0',
		downtime_hours   REAL NOT NULL DEFAULT 0,
		recorded_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_maintenance_date ON maintenance_records(date)`,
}
