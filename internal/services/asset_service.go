package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/models"
	"selfbank/internal/money"
)

// OpeningBalanceNote is the note on the Income row journaling an asset's
// initial balance.
const OpeningBalanceNote = "Opening balance"

// assetService handles asset-related business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset creates an asset together with its CurrentSheet. A positive
// initial balance is journaled as an Income row so the sheet reconciles
// with the journal from the start.
func (s *assetService) CreateAsset(ctx context.Context, name string, assetTypeID uint, initialBalance decimal.Decimal) (*models.Asset, error) {
	name = strings.TrimSpace(name)
	if err := requireName("asset", 100)(name); err != nil {
		return nil, err
	}
	if !money.InRange(initialBalance) || !money.HasValidScale(initialBalance) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "initial balance must be between 0 and "+money.Format(money.Max)+" with at most two decimal places")
	}

	asset := &models.Asset{Name: name, AssetTypeID: assetTypeID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireParent[models.AssetType](tx, assetTypeID, "asset type"); err != nil {
			return err
		}
		if err := tx.Create(asset).Error; err != nil {
			return err
		}

		sheet := &models.CurrentSheet{AssetID: asset.ID, Balance: decimal.Zero}
		if err := tx.Create(sheet).Error; err != nil {
			return err
		}

		if initialBalance.IsPositive() {
			opening := &models.Transaction{
				Type:    models.TransactionTypeIncome,
				Amount:  initialBalance,
				AssetID: asset.ID,
				Note:    OpeningBalanceNote,
			}
			return post(tx, opening, lockedSheets{sheet})
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return asset, nil
}

// GetAsset returns the asset or nil when it does not exist.
func (s *assetService) GetAsset(ctx context.Context, id uint) (*models.Asset, error) {
	return findByID[models.Asset](s.db.WithContext(ctx), id)
}

// UpdateAsset applies the provided fields to an existing asset.
func (s *assetService) UpdateAsset(ctx context.Context, id uint, fields AssetUpdateFields) (*models.Asset, error) {
	var asset *models.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		asset, err = mustFind[models.Asset](forUpdate(tx), id, apperrors.WithMessage(apperrors.ErrNotFound, "asset not found"))
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if fields.Name != nil {
			name := strings.TrimSpace(*fields.Name)
			if err := requireName("asset", 100)(name); err != nil {
				return err
			}
			updates["name"] = name
		}
		if fields.AssetTypeID != nil {
			if err := requireParent[models.AssetType](tx, *fields.AssetTypeID, "asset type"); err != nil {
				return err
			}
			updates["asset_type_id"] = *fields.AssetTypeID
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(asset).Updates(updates).Error; err != nil {
			return err
		}
		asset, err = findByID[models.Asset](tx, id)
		return err
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return asset, nil
}

// DeleteAsset removes an asset and its sheet. Assets with journal history,
// including an opening balance, cannot be deleted. The sheet is locked before
// the history check so the delete queues behind any writer still posting to
// the asset and then sees its journal row.
func (s *assetService) DeleteAsset(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockSheets(tx, id); err != nil {
			return err
		}
		_, err := deleteGuarded[models.Asset](tx, id, apperrors.WithMessage(apperrors.ErrNotFound, "asset not found"), reference{
			model: &models.Transaction{},
			query: "asset_id = @id OR destination_asset_id = @id",
			what:  "transactions",
		})
		if err != nil {
			return err
		}
		return tx.Where("asset_id = ?", id).Delete(&models.CurrentSheet{}).Error
	})
	return asAppError(err)
}

// ListAssets returns all assets ordered by id.
func (s *assetService) ListAssets(ctx context.Context) ([]models.Asset, error) {
	return listAll[models.Asset](s.db.WithContext(ctx), "id ASC")
}

// GetBalance returns the asset's CurrentSheet, or nil when the asset has none.
func (s *assetService) GetBalance(ctx context.Context, assetID uint) (*models.CurrentSheet, error) {
	var sheet models.CurrentSheet
	res := s.db.WithContext(ctx).Where("asset_id = ?", assetID).Limit(1).Find(&sheet)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &sheet, nil
}

// Reconcile compares the asset's sheet with the sum of its signed journal
// amounts. Both are read in one transaction so they describe the same state.
func (s *assetService) Reconcile(ctx context.Context, assetID uint) (*Reconciliation, error) {
	var result *Reconciliation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sheets, err := lockSheets(tx, assetID)
		if err != nil {
			return err
		}
		sheet := sheets.find(assetID)
		if sheet == nil {
			return apperrors.ErrAssetNotFound
		}

		journal, err := journalBalance(tx, assetID)
		if err != nil {
			return err
		}

		result = &Reconciliation{
			AssetID:        assetID,
			SheetBalance:   sheet.Balance,
			JournalBalance: journal,
			Consistent:     sheet.Balance.Equal(journal),
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return result, nil
}
