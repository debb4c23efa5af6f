package models

import (
	"bitbucket.org/mmdatafocus/property_backend/config"
)

// MigrateTable creates or updates the database schema.
func MigrateTable() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&Business{},
		&User{},
		&Property{},
		&Unit{},
		&Tenant{},
		&Vendor{},
		&TransactionCategory{},
		&Lease{},
		&Transaction{},
		&Inspection{},
		&InspectionPhoto{},
	)
}
