package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and configures the
// connection pool. Schema setup happens in RunMigrations, called explicitly
// by the composition root and by the integration test harness.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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

	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.CashDrawer{},
		&model.CashMovement{},
		&model.Sale{},
		&model.SaleItem{},
		&model.StockMovement{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// The single-open-drawer invariant lives in the storage layer: the
		// partial unique index admits at most one row with status='open',
		// which turns Open into insert-if-none-exists. A losing concurrent
		// Open fails with SQLSTATE 23505 rather than creating a second
		// open drawer.
		{"partial unique index on open drawers", `
CREATE UNIQUE INDEX IF NOT EXISTS ux_cash_drawers_open
    ON cash_drawers ((status))
    WHERE status = 'open'`},

		// Ticket numbers come from a sequence so concurrent sales never
		// collide on the unique index.
		{"sales ticket number sequence",
			`CREATE SEQUENCE IF NOT EXISTS sales_ticket_number_seq`},

		// Belt-and-suspenders stock floor. The conditional UPDATE in the
		// sale transaction already refuses to go below zero; the CHECK
		// makes the database reject any other writer that tries.
		{"stock floor check constraint", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'ck_products_stock_non_negative') THEN
    ALTER TABLE products ADD CONSTRAINT ck_products_stock_non_negative CHECK (stock >= 0);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("schema patch %q: %w", p.descr, err)
		}
	}
	return nil
}
