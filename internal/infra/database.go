package infra

import (
	"fmt"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express on its own.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Unique violations surface as gorm.ErrDuplicatedKey so services can
		// map them to 409 without matching SQLSTATE strings.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against
// a throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on PostgreSQL < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Member{},
		&model.Vehicle{},
		&model.Event{},
		&model.EventParticipant{},
		&model.BarProduct{},
		&model.Sale{},
		&model.SaleItem{},
		&model.InventoryItem{},
		&model.InventoryLog{},
		&model.ActivityLog{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully
// handle. Each statement is guarded so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Sale items and event participants must go when their parent goes.
		{"cascade bar_sale_items → bar_sales", `
DO $$ BEGIN
  IF EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_bar_sales_items') THEN
    ALTER TABLE bar_sale_items DROP CONSTRAINT fk_bar_sales_items;
  END IF;
  ALTER TABLE bar_sale_items
    ADD CONSTRAINT fk_bar_sales_items
    FOREIGN KEY (sale_id) REFERENCES bar_sales(id) ON DELETE CASCADE;
END $$`},
		{"cascade event_participants → events", `
DO $$ BEGIN
  IF EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_events_participants') THEN
    ALTER TABLE event_participants DROP CONSTRAINT fk_events_participants;
  END IF;
  ALTER TABLE event_participants
    ADD CONSTRAINT fk_events_participants
    FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE;
END $$`},
		{"cascade vehicles → members", `
DO $$ BEGIN
  IF EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_members_vehicles') THEN
    ALTER TABLE vehicles DROP CONSTRAINT fk_members_vehicles;
  END IF;
  ALTER TABLE vehicles
    ADD CONSTRAINT fk_members_vehicles
    FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE;
END $$`},
		// Partial index for the activity log list view, which is always
		// filtered-and-sorted by recency.
		{"activity_logs recency index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_activity_logs_recent') THEN
    CREATE INDEX idx_activity_logs_recent ON activity_logs (created_at DESC);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
