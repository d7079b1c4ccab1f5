package services

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"selfbank/internal/models"
	"selfbank/internal/money"
	"selfbank/internal/testutil"
)

func TestCreateAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("opens_sheet_and_journals_initial_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		at := testutil.CreateTestAssetType(t, db)

		asset, err := svc.CreateAsset(ctx, "Checking", at.ID, money.MustParse("250.50"))
		testutil.AssertNoError(t, err)
		if asset.ID == 0 {
			t.Fatal("expected non-zero asset ID")
		}

		testutil.AssertBalance(t, db, asset.ID, "250.50")
		testutil.AssertTransactionCount(t, db, 1)

		var opening models.Transaction
		testutil.AssertNoError(t, db.First(&opening).Error)
		if opening.Type != models.TransactionTypeIncome || opening.Note != OpeningBalanceNote {
			t.Errorf("expected opening income row, got %+v", opening)
		}
	})

	t.Run("zero_balance_has_empty_journal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		at := testutil.CreateTestAssetType(t, db)

		asset, err := svc.CreateAsset(ctx, "Wallet", at.ID, decimal.Zero)
		testutil.AssertNoError(t, err)

		testutil.AssertBalance(t, db, asset.ID, "0")
		testutil.AssertTransactionCount(t, db, 0)
	})

	t.Run("missing_asset_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset(ctx, "Orphan", 99999, decimal.Zero)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		var count int64
		db.Model(&models.Asset{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no asset rows, got %d", count)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		at := testutil.CreateTestAssetType(t, db)

		_, err := svc.CreateAsset(ctx, "  ", at.ID, decimal.Zero)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("invalid_initial_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		at := testutil.CreateTestAssetType(t, db)

		_, err := svc.CreateAsset(ctx, "Neg", at.ID, decimal.RequireFromString("-1"))
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		_, err = svc.CreateAsset(ctx, "Fraction", at.ID, decimal.RequireFromString("1.001"))
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		_, err = svc.CreateAsset(ctx, "Huge", at.ID, decimal.RequireFromString("10000000000.00"))
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		var count int64
		db.Model(&models.Asset{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no asset rows, got %d", count)
		}
		testutil.AssertTransactionCount(t, db, 0)
	})
}

func TestUpdateAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		at := testutil.CreateTestAssetType(t, db)
		other := testutil.CreateTestAssetType(t, db)
		asset := testutil.CreateTestAsset(t, db, at.ID)

		updated, err := svc.UpdateAsset(ctx, asset.ID, AssetUpdateFields{Name: strPtr("Renamed")})
		testutil.AssertNoError(t, err)
		if updated.Name != "Renamed" || updated.AssetTypeID != at.ID {
			t.Errorf("expected only name to change, got %+v", updated)
		}

		updated, err = svc.UpdateAsset(ctx, asset.ID, AssetUpdateFields{AssetTypeID: uintPtr(other.ID)})
		testutil.AssertNoError(t, err)
		if updated.Name != "Renamed" || updated.AssetTypeID != other.ID {
			t.Errorf("expected only type to change, got %+v", updated)
		}
	})

	t.Run("unknown_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		asset := testutil.CreateTestAsset(t, db, testutil.CreateTestAssetType(t, db).ID)

		_, err := svc.UpdateAsset(ctx, asset.ID, AssetUpdateFields{AssetTypeID: uintPtr(99999)})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.UpdateAsset(ctx, 99999, AssetUpdateFields{Name: strPtr("x")})
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})
}

func TestDeleteAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("removes_asset_and_sheet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		asset := testutil.CreateTestAsset(t, db, testutil.CreateTestAssetType(t, db).ID)

		testutil.AssertNoError(t, svc.DeleteAsset(ctx, asset.ID))

		got, err := svc.GetAsset(ctx, asset.ID)
		testutil.AssertNoError(t, err)
		if got != nil {
			t.Error("expected asset to be gone")
		}
		sheet, err := svc.GetBalance(ctx, asset.ID)
		testutil.AssertNoError(t, err)
		if sheet != nil {
			t.Error("expected sheet to be removed with the asset")
		}
	})

	t.Run("referenced_by_transfer_destination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		at := testutil.CreateTestAssetType(t, db)
		src := testutil.CreateTestAssetWithBalance(t, db, at.ID, "100")
		dst := testutil.CreateTestAsset(t, db, at.ID)

		_, err := NewTransferService(db).TransferFund(ctx, TransferInput{
			SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: money.MustParse("10"),
		})
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, svc.DeleteAsset(ctx, dst.ID), "IN_USE")
		testutil.AssertBalance(t, db, dst.ID, "10")
	})

	t.Run("racing_income_never_leaves_orphaned_journal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		recorder := NewTransactionService(db)
		at := testutil.CreateTestAssetType(t, db)

		for i := 0; i < 20; i++ {
			asset := testutil.CreateTestAsset(t, db, at.ID)

			var wg sync.WaitGroup
			var deleteErr, incomeErr error
			wg.Add(2)
			go func() {
				defer wg.Done()
				deleteErr = svc.DeleteAsset(ctx, asset.ID)
			}()
			go func() {
				defer wg.Done()
				_, incomeErr = recorder.RecordIncome(ctx, IncomeInput{AssetID: asset.ID, Amount: money.MustParse("5")})
			}()
			wg.Wait()

			var journal int64
			db.Model(&models.Transaction{}).Where("asset_id = ?", asset.ID).Count(&journal)

			if deleteErr == nil {
				testutil.AssertAppError(t, incomeErr, "ASSET_NOT_FOUND")
				if journal != 0 {
					t.Fatalf("round %d: deleted asset still has %d journal rows", i, journal)
				}
				continue
			}
			testutil.AssertAppError(t, deleteErr, "IN_USE")
			testutil.AssertNoError(t, incomeErr)
			testutil.AssertBalance(t, db, asset.ID, "5")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		testutil.AssertAppError(t, svc.DeleteAsset(ctx, 99999), "NOT_FOUND")
	})
}

func TestListAssets(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAssetService(db)

	empty, err := svc.ListAssets(ctx)
	testutil.AssertNoError(t, err)
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil list, got %v", empty)
	}

	at := testutil.CreateTestAssetType(t, db)
	testutil.CreateTestAsset(t, db, at.ID)
	testutil.CreateTestAsset(t, db, at.ID)

	list, err := svc.ListAssets(ctx)
	testutil.AssertNoError(t, err)
	if len(list) != 2 || list[0].ID > list[1].ID {
		t.Errorf("expected two assets ordered by id, got %+v", list)
	}
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("consistent_after_every_kind_of_posting", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		assets := NewAssetService(db)
		recorder := NewTransactionService(db)
		transfers := NewTransferService(db)
		at := testutil.CreateTestAssetType(t, db)
		expense := testutil.CreateTestExpense(t, db, testutil.CreateTestExpenseType(t, db).ID)

		a, err := assets.CreateAsset(ctx, "A", at.ID, money.MustParse("100.00"))
		testutil.AssertNoError(t, err)
		b, err := assets.CreateAsset(ctx, "B", at.ID, decimal.Zero)
		testutil.AssertNoError(t, err)

		_, err = recorder.RecordIncome(ctx, IncomeInput{AssetID: a.ID, Amount: money.MustParse("0.10")})
		testutil.AssertNoError(t, err)
		_, err = recorder.RecordPayment(ctx, PaymentInput{AssetID: a.ID, Amount: money.MustParse("0.20"), ExpenseID: &expense.ID})
		testutil.AssertNoError(t, err)
		_, err = transfers.TransferFund(ctx, TransferInput{SourceAssetID: a.ID, DestinationAssetID: b.ID, Amount: money.MustParse("33.33")})
		testutil.AssertNoError(t, err)

		for _, id := range []uint{a.ID, b.ID} {
			rec, err := assets.Reconcile(ctx, id)
			testutil.AssertNoError(t, err)
			if !rec.Consistent {
				t.Errorf("asset %d: sheet %s != journal %s", id, rec.SheetBalance, rec.JournalBalance)
			}
		}
		testutil.AssertBalance(t, db, a.ID, "66.57")
		testutil.AssertBalance(t, db, b.ID, "33.33")
	})

	t.Run("detects_drift", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		asset := testutil.CreateTestAssetWithBalance(t, db, testutil.CreateTestAssetType(t, db).ID, "50")

		testutil.AssertNoError(t, db.Model(&models.CurrentSheet{}).
			Where("asset_id = ?", asset.ID).Update("balance", decimal.RequireFromString("49")).Error)

		rec, err := svc.Reconcile(ctx, asset.ID)
		testutil.AssertNoError(t, err)
		if rec.Consistent {
			t.Error("expected drift to be reported")
		}
		if !rec.JournalBalance.Equal(decimal.RequireFromString("50")) {
			t.Errorf("expected journal balance 50, got %s", rec.JournalBalance)
		}
	})

	t.Run("unknown_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := NewAssetService(db).Reconcile(ctx, 99999)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}
