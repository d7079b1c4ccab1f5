package testutil_test

import (
	"testing"

	"selfbank/internal/errors"
	"selfbank/internal/models"
	"selfbank/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"asset_types", "assets", "current_sheets", "expense_types", "expenses", "contact_types", "contacts", "transactions"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestAssetType(t, first)

	var count int64
	second.Model(&models.AssetType{}).Count(&count)
	if count != 0 {
		t.Errorf("expected databases to be isolated, found %d rows", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	assetType := testutil.CreateTestAssetType(t, db)
	if assetType.ID == 0 {
		t.Fatal("asset type should have a non-zero ID")
	}

	asset := testutil.CreateTestAssetWithBalance(t, db, assetType.ID, "150.25")
	testutil.AssertBalance(t, db, asset.ID, "150.25")
	testutil.AssertTransactionCount(t, db, 1)

	empty := testutil.CreateTestAsset(t, db, assetType.ID)
	testutil.AssertBalance(t, db, empty.ID, "0")
	testutil.AssertTransactionCount(t, db, 1)

	expense := testutil.CreateTestExpense(t, db, testutil.CreateTestExpenseType(t, db).ID)
	if expense.Description == "" {
		t.Error("expense should have a description")
	}

	contact := testutil.CreateTestContact(t, db, testutil.CreateTestContactType(t, db).ID)
	if contact.Phone == "" {
		t.Error("contact should have a phone")
	}
}

func TestAssertAppError(t *testing.T) {
	// Should not fail for matching code.
	testutil.AssertAppError(t, errors.ErrInUse, "IN_USE")
	testutil.AssertAppError(t, errors.WithMessage(errors.ErrSameAsset, "custom"), "SAME_ASSET")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
