package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"selfbank/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAssetType creates an asset type with a unique name.
func CreateTestAssetType(t *testing.T, db *gorm.DB) *models.AssetType {
	t.Helper()

	assetType := &models.AssetType{Name: fmt.Sprintf("Asset Type %d", nextID())}
	if err := db.Create(assetType).Error; err != nil {
		t.Fatalf("failed to create test asset type: %v", err)
	}
	return assetType
}

// CreateTestAsset creates an asset with an empty sheet.
func CreateTestAsset(t *testing.T, db *gorm.DB, assetTypeID uint) *models.Asset {
	t.Helper()
	return CreateTestAssetWithBalance(t, db, assetTypeID, "0")
}

// CreateTestAssetWithBalance creates an asset whose sheet holds balance. A
// positive balance is also journaled as an opening Income row so the asset
// reconciles.
func CreateTestAssetWithBalance(t *testing.T, db *gorm.DB, assetTypeID uint, balance string) *models.Asset {
	t.Helper()

	amount := decimal.RequireFromString(balance)
	asset := &models.Asset{Name: fmt.Sprintf("Asset %d", nextID()), AssetTypeID: assetTypeID}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}

	sheet := &models.CurrentSheet{AssetID: asset.ID, Balance: amount}
	if err := db.Create(sheet).Error; err != nil {
		t.Fatalf("failed to create test sheet: %v", err)
	}

	if amount.IsPositive() {
		opening := &models.Transaction{
			Type:    models.TransactionTypeIncome,
			Amount:  amount,
			AssetID: asset.ID,
			Note:    "Opening balance",
		}
		if err := db.Create(opening).Error; err != nil {
			t.Fatalf("failed to journal opening balance: %v", err)
		}
	}
	return asset
}

// CreateTestExpenseType creates an expense type with a unique name.
func CreateTestExpenseType(t *testing.T, db *gorm.DB) *models.ExpenseType {
	t.Helper()

	expenseType := &models.ExpenseType{Name: fmt.Sprintf("Expense Type %d", nextID())}
	if err := db.Create(expenseType).Error; err != nil {
		t.Fatalf("failed to create test expense type: %v", err)
	}
	return expenseType
}

// CreateTestExpense creates an expense under the given type.
func CreateTestExpense(t *testing.T, db *gorm.DB, expenseTypeID uint) *models.Expense {
	t.Helper()

	expense := &models.Expense{Description: fmt.Sprintf("Expense %d", nextID()), ExpenseTypeID: expenseTypeID}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestContactType creates a contact type with a unique name.
func CreateTestContactType(t *testing.T, db *gorm.DB) *models.ContactType {
	t.Helper()

	contactType := &models.ContactType{Name: fmt.Sprintf("Contact Type %d", nextID())}
	if err := db.Create(contactType).Error; err != nil {
		t.Fatalf("failed to create test contact type: %v", err)
	}
	return contactType
}

// CreateTestContact creates a contact under the given type.
func CreateTestContact(t *testing.T, db *gorm.DB, contactTypeID uint) *models.Contact {
	t.Helper()

	n := nextID()
	contact := &models.Contact{
		Name:          fmt.Sprintf("Contact %d", n),
		BusinessName:  fmt.Sprintf("Business %d", n),
		Phone:         fmt.Sprintf("555-%04d", n),
		ContactTypeID: contactTypeID,
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("failed to create test contact: %v", err)
	}
	return contact
}

// CreateTestTransaction inserts a journal row directly, without touching any
// sheet. Use it to seed read-side tests.
func CreateTestTransaction(t *testing.T, db *gorm.DB, txn *models.Transaction) *models.Transaction {
	t.Helper()

	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}
