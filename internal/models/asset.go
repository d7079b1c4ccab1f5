package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies assets, e.g. "Bank", "Cash", "Wallet".
type AssetType struct {
	Base
	Name string `gorm:"size:50;not null;index" json:"name"`
}

// Asset represents a tracked account or wallet holding a balance.
type Asset struct {
	Base
	Name        string `gorm:"not null;index" json:"name"`
	AssetTypeID uint   `gorm:"not null;index" json:"asset_type_id"`
}

// CurrentSheet is the materialized live balance of one asset. It is only
// written inside the storage transaction that appends the journal row
// causing the change.
type CurrentSheet struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	AssetID   uint            `gorm:"not null;uniqueIndex" json:"asset_id"`
	Balance   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}
