package models

import (
	"time"

	"gorm.io/gorm"
)

// Base contains common columns for catalog tables. Rows are soft-deleted so
// historical references stay resolvable.
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// All returns every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&AssetType{},
		&Asset{},
		&CurrentSheet{},
		&ExpenseType{},
		&Expense{},
		&ContactType{},
		&Contact{},
		&Transaction{},
	}
}
