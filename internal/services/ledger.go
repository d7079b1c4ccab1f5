package services

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/models"
	"selfbank/internal/money"
)

// lockedSheets holds CurrentSheet rows locked for the rest of a storage
// transaction, in ascending asset id order.
type lockedSheets []*models.CurrentSheet

func (ls lockedSheets) find(assetID uint) *models.CurrentSheet {
	for _, s := range ls {
		if s.AssetID == assetID {
			return s
		}
	}
	return nil
}

// lockSheets loads and locks the sheets of the given assets. Locks are always
// taken in ascending asset id so two transfers between the same pair of assets
// in opposite directions cannot deadlock. Missing sheets are left out of the
// result; storage errors are returned unwrapped.
func lockSheets(tx *gorm.DB, assetIDs ...uint) (lockedSheets, error) {
	ids := append([]uint(nil), assetIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	sheets := make(lockedSheets, 0, len(ids))
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			continue
		}
		var sheet models.CurrentSheet
		res := forUpdate(tx).Where("asset_id = ?", id).Limit(1).Find(&sheet)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			continue
		}
		sheets = append(sheets, &sheet)
	}
	return sheets, nil
}

// post appends txn to the journal and applies its signed amount to every
// locked sheet it touches. No sheet may go negative or above money.Max; the
// checks happen before anything is written.
func post(tx *gorm.DB, txn *models.Transaction, sheets lockedSheets) error {
	next := make([]decimal.Decimal, len(sheets))
	for i, sheet := range sheets {
		next[i] = sheet.Balance.Add(txn.SignedAmountFor(sheet.AssetID))
		if next[i].IsNegative() {
			return apperrors.ErrInsufficientFunds
		}
		if next[i].GreaterThan(money.Max) {
			return apperrors.WithMessage(apperrors.ErrInvalidAmount,
				fmt.Sprintf("asset %d balance would exceed %s", sheet.AssetID, money.Format(money.Max)))
		}
	}

	if err := tx.Create(txn).Error; err != nil {
		return err
	}

	for i, sheet := range sheets {
		if err := tx.Model(sheet).Update("balance", next[i]).Error; err != nil {
			return err
		}
		sheet.Balance = next[i]
	}
	return nil
}

// journalBalance folds every journal row touching assetID into a balance.
func journalBalance(db *gorm.DB, assetID uint) (decimal.Decimal, error) {
	var rows []models.Transaction
	if err := db.Where("asset_id = ? OR destination_asset_id = ?", assetID, assetID).
		Find(&rows).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range rows {
		total = total.Add(rows[i].SignedAmountFor(assetID))
	}
	return total, nil
}
