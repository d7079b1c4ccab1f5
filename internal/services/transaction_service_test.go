package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"selfbank/internal/models"
	"selfbank/internal/money"
	"selfbank/internal/pagination"
	"selfbank/internal/testutil"
)

func TestRecordIncome(t *testing.T) {
	ctx := context.Background()

	t.Run("credits_sheet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		asset := testutil.CreateTestAssetWithBalance(t, db, testutil.CreateTestAssetType(t, db).ID, "10.00")
		contact := testutil.CreateTestContact(t, db, testutil.CreateTestContactType(t, db).ID)

		tx, err := svc.RecordIncome(ctx, IncomeInput{
			AssetID: asset.ID, Amount: money.MustParse("40.05"), Note: "invoice 7", ContactID: &contact.ID,
		})
		testutil.AssertNoError(t, err)

		if tx.ID == 0 || tx.Type != models.TransactionTypeIncome {
			t.Fatalf("unexpected transaction %+v", tx)
		}
		if tx.ContactID == nil || *tx.ContactID != contact.ID {
			t.Errorf("expected contact %d on transaction", contact.ID)
		}
		testutil.AssertBalance(t, db, asset.ID, "50.05")
	})

	t.Run("invalid_amounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		asset := testutil.CreateTestAsset(t, db, testutil.CreateTestAssetType(t, db).ID)

		for _, amount := range []string{"0", "-5", "1.005"} {
			_, err := svc.RecordIncome(ctx, IncomeInput{AssetID: asset.ID, Amount: decimal.RequireFromString(amount)})
			testutil.AssertAppError(t, err, "INVALID_AMOUNT")
		}
		testutil.AssertTransactionCount(t, db, 0)
	})

	t.Run("unknown_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.RecordIncome(ctx, IncomeInput{AssetID: 99999, Amount: money.MustParse("1")})
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
		testutil.AssertTransactionCount(t, db, 0)
	})

	t.Run("unknown_contact", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		asset := testutil.CreateTestAsset(t, db, testutil.CreateTestAssetType(t, db).ID)

		_, err := svc.RecordIncome(ctx, IncomeInput{AssetID: asset.ID, Amount: money.MustParse("1"), ContactID: uintPtr(99999)})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		testutil.AssertBalance(t, db, asset.ID, "0")
	})

	t.Run("amount_above_storage_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		asset := testutil.CreateTestAsset(t, db, testutil.CreateTestAssetType(t, db).ID)

		_, err := svc.RecordIncome(ctx, IncomeInput{AssetID: asset.ID, Amount: decimal.RequireFromString("123456789012345678.91")})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
		testutil.AssertBalance(t, db, asset.ID, "0")
		testutil.AssertTransactionCount(t, db, 0)
	})

	t.Run("balance_would_exceed_max", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		asset := testutil.CreateTestAssetWithBalance(t, db, testutil.CreateTestAssetType(t, db).ID, "9999999990.00")

		_, err := svc.RecordIncome(ctx, IncomeInput{AssetID: asset.ID, Amount: money.MustParse("10.00")})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
		testutil.AssertBalance(t, db, asset.ID, "9999999990.00")
		testutil.AssertTransactionCount(t, db, 1)

		_, err = svc.RecordIncome(ctx, IncomeInput{AssetID: asset.ID, Amount: money.MustParse("9.99")})
		testutil.AssertNoError(t, err)
		testutil.AssertBalance(t, db, asset.ID, "9999999999.99")
	})
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("debits_sheet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		asset := testutil.CreateTestAssetWithBalance(t, db, testutil.CreateTestAssetType(t, db).ID, "100")
		expense := testutil.CreateTestExpense(t, db, testutil.CreateTestExpenseType(t, db).ID)

		tx, err := svc.RecordPayment(ctx, PaymentInput{AssetID: asset.ID, Amount: money.MustParse("99.99"), ExpenseID: &expense.ID})
		testutil.AssertNoError(t, err)
		if tx.Type != models.TransactionTypePayment || *tx.ExpenseID != expense.ID {
			t.Errorf("unexpected transaction %+v", tx)
		}
		testutil.AssertBalance(t, db, asset.ID, "0.01")
	})

	t.Run("missing_expense_reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		asset := testutil.CreateTestAssetWithBalance(t, db, testutil.CreateTestAssetType(t, db).ID, "100")

		_, err := svc.RecordPayment(ctx, PaymentInput{AssetID: asset.ID, Amount: money.MustParse("1")})
		testutil.AssertAppError(t, err, "MISSING_EXPENSE_REFERENCE")
	})

	t.Run("insufficient_funds_leaves_state_unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		asset := testutil.CreateTestAssetWithBalance(t, db, testutil.CreateTestAssetType(t, db).ID, "10")
		expense := testutil.CreateTestExpense(t, db, testutil.CreateTestExpenseType(t, db).ID)

		_, err := svc.RecordPayment(ctx, PaymentInput{AssetID: asset.ID, Amount: money.MustParse("10.01"), ExpenseID: &expense.ID})
		testutil.AssertAppError(t, err, "INSUFFICIENT_FUNDS")
		testutil.AssertBalance(t, db, asset.ID, "10")
		testutil.AssertTransactionCount(t, db, 1)
	})
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)
	at := testutil.CreateTestAssetType(t, db)
	a := testutil.CreateTestAsset(t, db, at.ID)
	b := testutil.CreateTestAsset(t, db, at.ID)

	jan := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	testutil.CreateTestTransaction(t, db, &models.Transaction{Type: models.TransactionTypeIncome, Amount: money.MustParse("5"), AssetID: a.ID, CreatedAt: jan})
	testutil.CreateTestTransaction(t, db, &models.Transaction{Type: models.TransactionTypeTransfer, Amount: money.MustParse("2"), AssetID: a.ID, DestinationAssetID: &b.ID, CreatedAt: feb})
	testutil.CreateTestTransaction(t, db, &models.Transaction{Type: models.TransactionTypeIncome, Amount: money.MustParse("7"), AssetID: b.ID, CreatedAt: feb.Add(time.Hour)})

	t.Run("by_type", func(t *testing.T) {
		income, err := svc.ListByType(ctx, models.TransactionTypeIncome)
		testutil.AssertNoError(t, err)
		if len(income) != 2 {
			t.Fatalf("expected 2 income rows, got %d", len(income))
		}
		if !income[0].CreatedAt.Before(income[1].CreatedAt) {
			t.Error("expected chronological order")
		}

		_, err = svc.ListByType(ctx, models.TransactionType("Refund"))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("by_month", func(t *testing.T) {
		janRows, err := svc.ListByMonth(ctx, "2024-01")
		testutil.AssertNoError(t, err)
		if len(janRows) != 1 {
			t.Errorf("expected 1 January row, got %d", len(janRows))
		}

		febRows, err := svc.ListByMonth(ctx, "2024-02")
		testutil.AssertNoError(t, err)
		if len(febRows) != 2 {
			t.Errorf("expected 2 February rows, got %d", len(febRows))
		}

		none, err := svc.ListByMonth(ctx, "2023-12")
		testutil.AssertNoError(t, err)
		if len(none) != 0 {
			t.Errorf("expected no rows, got %d", len(none))
		}

		for _, bad := range []string{"", "2024-13", "2024/01", "Jan 2024"} {
			_, err := svc.ListByMonth(ctx, bad)
			testutil.AssertAppError(t, err, "INVALID_MONTH_FORMAT")
		}
	})

	t.Run("paginated_newest_first", func(t *testing.T) {
		page, err := svc.ListTransactions(ctx, pagination.PageRequest{Page: 1, PageSize: 2}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 3 || page.TotalPages != 2 || len(page.Data) != 2 {
			t.Fatalf("unexpected page %+v", page)
		}
		if !page.Data[0].Amount.Equal(money.MustParse("7")) {
			t.Errorf("expected newest row first, got %s", page.Data[0].Amount)
		}
	})

	t.Run("filter_by_asset_includes_destination", func(t *testing.T) {
		page, err := svc.ListTransactions(ctx, pagination.PageRequest{}, TransactionFilter{AssetID: &b.ID})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Errorf("expected 2 rows touching asset b, got %d", page.TotalItems)
		}

		transfer := models.TransactionTypeTransfer
		page, err = svc.ListTransactions(ctx, pagination.PageRequest{}, TransactionFilter{AssetID: &b.ID, Type: &transfer, Month: "2024-02"})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 combined-filter row, got %d", page.TotalItems)
		}
	})

	t.Run("asset_transactions", func(t *testing.T) {
		rows, err := svc.ListAssetTransactions(ctx, a.ID)
		testutil.AssertNoError(t, err)
		if len(rows) != 2 {
			t.Errorf("expected 2 rows for asset a, got %d", len(rows))
		}

		rows, err = svc.ListAssetTransactions(ctx, b.ID)
		testutil.AssertNoError(t, err)
		if len(rows) != 2 || rows[0].Type != models.TransactionTypeIncome || rows[1].Type != models.TransactionTypeTransfer {
			t.Errorf("expected b's income then the incoming transfer, newest first, got %+v", rows)
		}

		_, err = svc.ListAssetTransactions(ctx, 99999)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})

	t.Run("get_by_id", func(t *testing.T) {
		page, err := svc.ListTransactions(ctx, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		got, err := svc.GetTransactionByID(ctx, page.Data[0].ID)
		testutil.AssertNoError(t, err)
		if got == nil || got.ID != page.Data[0].ID {
			t.Errorf("expected transaction %d, got %+v", page.Data[0].ID, got)
		}

		missing, err := svc.GetTransactionByID(ctx, 99999)
		testutil.AssertNoError(t, err)
		if missing != nil {
			t.Error("expected nil for a missing transaction")
		}
	})
}
