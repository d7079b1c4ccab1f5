package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/models"
	"selfbank/internal/money"
	"selfbank/internal/testutil"
)

func setupTransfer(t *testing.T, sourceBalance, destBalance string) (*gorm.DB, TransferServicer, *models.Asset, *models.Asset) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	at := testutil.CreateTestAssetType(t, db)
	src := testutil.CreateTestAssetWithBalance(t, db, at.ID, sourceBalance)
	dst := testutil.CreateTestAssetWithBalance(t, db, at.ID, destBalance)
	return db, NewTransferService(db), src, dst
}

func TestTransferFund(t *testing.T) {
	ctx := context.Background()

	t.Run("moves_exact_amount", func(t *testing.T) {
		db, svc, src, dst := setupTransfer(t, "100.00", "0")

		tx, err := svc.TransferFund(ctx, TransferInput{
			SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: money.MustParse("40.00"), Note: "rent float",
		})
		require.NoError(t, err)

		assert.Equal(t, models.TransactionTypeTransfer, tx.Type)
		assert.Equal(t, src.ID, tx.AssetID)
		require.NotNil(t, tx.DestinationAssetID)
		assert.Equal(t, dst.ID, *tx.DestinationAssetID)
		assert.Equal(t, "rent float", tx.Note)

		testutil.AssertBalance(t, db, src.ID, "60.00")
		testutil.AssertBalance(t, db, dst.ID, "40.00")
		testutil.AssertTransactionCount(t, db, 2)
	})

	t.Run("no_drift_over_many_small_transfers", func(t *testing.T) {
		db, svc, src, dst := setupTransfer(t, "1.00", "0")

		for i := 0; i < 10; i++ {
			_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: money.MustParse("0.10")})
			require.NoError(t, err)
		}

		testutil.AssertBalance(t, db, src.ID, "0")
		testutil.AssertBalance(t, db, dst.ID, "1.00")
	})

	t.Run("entire_balance", func(t *testing.T) {
		db, svc, src, dst := setupTransfer(t, "25.50", "0")

		_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: money.MustParse("25.50")})
		require.NoError(t, err)
		testutil.AssertBalance(t, db, src.ID, "0")
	})

	t.Run("insufficient_funds", func(t *testing.T) {
		db, svc, src, dst := setupTransfer(t, "30.00", "5.00")

		_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: money.MustParse("50.00")})
		testutil.AssertAppError(t, err, "INSUFFICIENT_FUNDS")

		testutil.AssertBalance(t, db, src.ID, "30.00")
		testutil.AssertBalance(t, db, dst.ID, "5.00")
		testutil.AssertTransactionCount(t, db, 2)
	})

	t.Run("same_asset", func(t *testing.T) {
		db, svc, src, _ := setupTransfer(t, "30.00", "0")

		_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: src.ID, DestinationAssetID: src.ID, Amount: money.MustParse("1")})
		testutil.AssertAppError(t, err, "SAME_ASSET")
		testutil.AssertBalance(t, db, src.ID, "30.00")
	})

	t.Run("invalid_amount", func(t *testing.T) {
		_, svc, src, dst := setupTransfer(t, "30.00", "0")

		for _, amount := range []string{"0", "-1", "0.001"} {
			_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: decimal.RequireFromString(amount)})
			testutil.AssertAppError(t, err, "INVALID_AMOUNT")
		}
	})

	t.Run("destination_would_exceed_max", func(t *testing.T) {
		db, svc, src, dst := setupTransfer(t, "100.00", "9999999990.00")

		_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: money.MustParse("10.00")})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		testutil.AssertBalance(t, db, src.ID, "100.00")
		testutil.AssertBalance(t, db, dst.ID, "9999999990.00")
		testutil.AssertTransactionCount(t, db, 2)
	})

	t.Run("amount_above_storage_range", func(t *testing.T) {
		db, svc, src, dst := setupTransfer(t, "100.00", "0")

		_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: decimal.RequireFromString("123456789012345678.91")})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
		testutil.AssertBalance(t, db, src.ID, "100.00")
	})

	t.Run("amount_checked_before_same_asset", func(t *testing.T) {
		_, svc, src, _ := setupTransfer(t, "30.00", "0")

		_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: src.ID, DestinationAssetID: src.ID, Amount: decimal.Zero})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("unknown_destination", func(t *testing.T) {
		db, svc, src, _ := setupTransfer(t, "30.00", "0")

		_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: src.ID, DestinationAssetID: 99999, Amount: money.MustParse("1")})
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
		testutil.AssertBalance(t, db, src.ID, "30.00")
	})

	t.Run("unknown_source", func(t *testing.T) {
		db, svc, _, dst := setupTransfer(t, "30.00", "0")

		_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: 99999, DestinationAssetID: dst.ID, Amount: money.MustParse("1")})
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
		testutil.AssertBalance(t, db, dst.ID, "0")
	})
}

func TestTransferFund_StorageFailureRollsBack(t *testing.T) {
	db, svc, src, dst := setupTransfer(t, "100.00", "0")

	cause := errors.New("disk full")
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_sheet_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "current_sheets" {
			_ = tx.AddError(cause)
		}
	})
	require.NoError(t, err)

	_, err = svc.TransferFund(context.Background(), TransferInput{SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: money.MustParse("10")})
	testutil.AssertAppError(t, err, "TRANSFER_FAILED")
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperrors.ErrTransferFailed)

	require.NoError(t, db.Callback().Update().Remove("test:fail_sheet_update"))
	testutil.AssertBalance(t, db, src.ID, "100.00")
	testutil.AssertBalance(t, db, dst.ID, "0")
	testutil.AssertTransactionCount(t, db, 1)
}

func TestTransferFund_CanceledContext(t *testing.T) {
	db, svc, src, dst := setupTransfer(t, "100.00", "0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.TransferFund(ctx, TransferInput{SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: money.MustParse("10")})
	testutil.AssertAppError(t, err, "TRANSFER_FAILED")
	assert.ErrorIs(t, err, context.Canceled)

	testutil.AssertBalance(t, db, src.ID, "100.00")
	testutil.AssertBalance(t, db, dst.ID, "0")
}

func TestTransferFund_ConcurrentNoOverdraft(t *testing.T) {
	db, svc, src, dst := setupTransfer(t, "100.00", "0")

	const workers = 10
	amount := money.MustParse("30.00")

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.TransferFund(context.Background(), TransferInput{
				SourceAssetID: src.ID, DestinationAssetID: dst.ID, Amount: amount,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	}
	assert.Equal(t, 3, succeeded)

	testutil.AssertBalance(t, db, src.ID, "10.00")
	testutil.AssertBalance(t, db, dst.ID, "90.00")

	rec, err := NewAssetService(db).Reconcile(context.Background(), src.ID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.False(t, rec.SheetBalance.IsNegative())
}

func TestTransferFund_OppositeDirections(t *testing.T) {
	db, svc, a, b := setupTransfer(t, "50.00", "50.00")

	const rounds = 20
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.TransferFund(context.Background(), TransferInput{SourceAssetID: a.ID, DestinationAssetID: b.ID, Amount: money.MustParse("7.25")})
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.TransferFund(context.Background(), TransferInput{SourceAssetID: b.ID, DestinationAssetID: a.ID, Amount: money.MustParse("3.10")})
		}()
	}
	wg.Wait()

	var sheets []models.CurrentSheet
	require.NoError(t, db.Where("asset_id IN ?", []uint{a.ID, b.ID}).Find(&sheets).Error)
	require.Len(t, sheets, 2)

	total := money.Sum(sheets[0].Balance, sheets[1].Balance)
	assert.True(t, total.Equal(money.MustParse("100.00")), "funds must be conserved, got %s", total)
	for _, s := range sheets {
		assert.False(t, s.Balance.IsNegative())
	}

	assets := NewAssetService(db)
	for _, id := range []uint{a.ID, b.ID} {
		rec, err := assets.Reconcile(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, rec.Consistent, "asset %d out of balance", id)
	}
}
