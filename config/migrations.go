package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/sitestock/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250110_create_identity_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.UserProfile{})
			},
		},
		{
			ID: "20250110_create_catalog_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ProductCategory{}, &models.Product{})
			},
		},
		{
			ID: "20250110_create_project_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Customer{}, &models.Project{}, &models.ProjectAssignment{})
			},
		},
		{
			ID: "20250110_create_stock_transactions",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.StockTransaction{})
			},
		},
		{
			ID: "20250218_index_transactions_by_date",
			Migrate: func(tx *gorm.DB) error {
				// The ledger is always listed newest first.
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_stock_transactions_date_desc ON stock_transactions (transaction_date DESC)").Error
			},
		},
	})
	return m.Migrate()
}
