package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of monetary event
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "Income"
	TransactionTypePayment  TransactionType = "Payment"
	TransactionTypeTransfer TransactionType = "Transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypePayment, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction is an immutable journal entry. Rows are appended and never
// updated or deleted.
type Transaction struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Type               TransactionType `gorm:"column:transaction_type;size:16;not null;index" json:"transaction_type"`
	Amount             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	AssetID            uint            `gorm:"not null;index" json:"asset_id"`
	DestinationAssetID *uint           `gorm:"index" json:"destination_asset_id,omitempty"`
	ExpenseID          *uint           `gorm:"index" json:"expense_id,omitempty"`
	ContactID          *uint           `gorm:"index" json:"contact_id,omitempty"`
	Note               string          `json:"note,omitempty"`
	CreatedAt          time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// SignedAmountFor returns the effect of the transaction on the given asset's
// balance: positive for money arriving, negative for money leaving, zero if
// the transaction does not touch the asset.
func (t *Transaction) SignedAmountFor(assetID uint) decimal.Decimal {
	switch t.Type {
	case TransactionTypeIncome:
		if t.AssetID == assetID {
			return t.Amount
		}
	case TransactionTypePayment:
		if t.AssetID == assetID {
			return t.Amount.Neg()
		}
	case TransactionTypeTransfer:
		if t.AssetID == assetID {
			return t.Amount.Neg()
		}
		if t.DestinationAssetID != nil && *t.DestinationAssetID == assetID {
			return t.Amount
		}
	}
	return decimal.Zero
}

// MonthLayout is the time layout for YYYY-MM month filters.
const MonthLayout = "2006-01"
