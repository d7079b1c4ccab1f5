package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/models"
	"selfbank/internal/money"
	"selfbank/internal/pagination"
)

// transactionService records income and payments and serves journal queries.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// RecordIncome journals money arriving in an asset and credits its sheet.
func (s *transactionService) RecordIncome(ctx context.Context, input IncomeInput) (*models.Transaction, error) {
	if !money.IsValidAmount(input.Amount) {
		return nil, apperrors.ErrInvalidAmount
	}

	transaction := &models.Transaction{
		Type:      models.TransactionTypeIncome,
		Amount:    input.Amount,
		AssetID:   input.AssetID,
		ContactID: input.ContactID,
		Note:      input.Note,
	}
	if err := s.record(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// RecordPayment journals money leaving an asset against an expense and
// debits its sheet. A payment larger than the balance is rejected.
func (s *transactionService) RecordPayment(ctx context.Context, input PaymentInput) (*models.Transaction, error) {
	if input.ExpenseID == nil {
		return nil, apperrors.ErrMissingExpenseReference
	}
	if !money.IsValidAmount(input.Amount) {
		return nil, apperrors.ErrInvalidAmount
	}

	transaction := &models.Transaction{
		Type:      models.TransactionTypePayment,
		Amount:    input.Amount,
		AssetID:   input.AssetID,
		ExpenseID: input.ExpenseID,
		ContactID: input.ContactID,
		Note:      input.Note,
	}
	if err := s.record(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// record checks the optional references, then posts the transaction against
// the asset's locked sheet in a single storage transaction.
func (s *transactionService) record(ctx context.Context, transaction *models.Transaction) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if transaction.ExpenseID != nil {
			if err := requireParent[models.Expense](tx, *transaction.ExpenseID, "expense"); err != nil {
				return err
			}
		}
		if transaction.ContactID != nil {
			if err := requireParent[models.Contact](tx, *transaction.ContactID, "contact"); err != nil {
				return err
			}
		}

		sheets, err := lockSheets(tx, transaction.AssetID)
		if err != nil {
			return err
		}
		if sheets.find(transaction.AssetID) == nil {
			return apperrors.WithMessage(apperrors.ErrAssetNotFound, fmt.Sprintf("asset %d not found", transaction.AssetID))
		}
		return post(tx, transaction, sheets)
	})
	return asAppError(err)
}

// GetTransactionByID returns the journal row or nil when it does not exist.
func (s *transactionService) GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error) {
	return findByID[models.Transaction](s.db.WithContext(ctx), id)
}

// ListTransactions retrieves a paginated, filtered page of the journal, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	base, err := applyTransactionFilters(s.db.WithContext(ctx).Model(&models.Transaction{}), filter)
	if err != nil {
		return nil, err
	}

	result, err := pagination.Fetch[models.Transaction](base, page, "created_at DESC, id DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// ListByType returns every transaction of the given kind in journal order.
func (s *transactionService) ListByType(ctx context.Context, kind models.TransactionType) ([]models.Transaction, error) {
	q, err := applyTransactionFilters(s.db.WithContext(ctx), TransactionFilter{Type: &kind})
	if err != nil {
		return nil, err
	}
	return listAll[models.Transaction](q, "created_at ASC, id ASC")
}

// ListByMonth returns every transaction created in the calendar month
// month (YYYY-MM, UTC) in journal order.
func (s *transactionService) ListByMonth(ctx context.Context, month string) ([]models.Transaction, error) {
	start, end, err := monthRange(month)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Where("created_at >= ? AND created_at < ?", start, end)
	return listAll[models.Transaction](q, "created_at ASC, id ASC")
}

// ListAssetTransactions returns every transaction touching the asset as
// source or destination, newest first.
func (s *transactionService) ListAssetTransactions(ctx context.Context, assetID uint) ([]models.Transaction, error) {
	asset, err := findByID[models.Asset](s.db.WithContext(ctx), assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperrors.ErrAssetNotFound
	}

	q := s.db.WithContext(ctx).Where("asset_id = ? OR destination_asset_id = ?", assetID, assetID)
	return listAll[models.Transaction](q, "created_at DESC, id DESC")
}

// monthRange returns the [start, end) bounds of a YYYY-MM month in UTC.
func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(models.MonthLayout, month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidMonthFormat,
			fmt.Sprintf("invalid month %q: expected YYYY-MM", month))
	}
	return start, start.AddDate(0, 1, 0), nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) (*gorm.DB, error) {
	if f.Type != nil {
		if !f.Type.Valid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		q = q.Where("transaction_type = ?", *f.Type)
	}
	if f.AssetID != nil {
		q = q.Where("(asset_id = ? OR destination_asset_id = ?)", *f.AssetID, *f.AssetID)
	}
	if f.Month != "" {
		start, end, err := monthRange(f.Month)
		if err != nil {
			return nil, err
		}
		q = q.Where("created_at >= ? AND created_at < ?", start, end)
	}
	return q, nil
}
