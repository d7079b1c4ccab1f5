package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/logger"
	"selfbank/internal/models"
	"selfbank/internal/money"
)

// transferService moves funds between two assets in one storage transaction.
type transferService struct {
	db *gorm.DB
}

// NewTransferService creates a new TransferServicer.
func NewTransferService(db *gorm.DB) TransferServicer {
	return &transferService{db: db}
}

// TransferFund debits the source sheet, credits the destination sheet and
// journals a Transfer row, all or nothing. Both sheets are locked before the
// balance check, so concurrent transfers from one source cannot overdraw it.
// Storage failures are reported as TRANSFER_FAILED with the cause attached.
func (s *transferService) TransferFund(ctx context.Context, input TransferInput) (*models.Transaction, error) {
	if !money.IsValidAmount(input.Amount) {
		return nil, apperrors.ErrInvalidAmount
	}
	if input.SourceAssetID == input.DestinationAssetID {
		return nil, apperrors.ErrSameAsset
	}

	log := logger.With(
		"source_asset_id", input.SourceAssetID,
		"destination_asset_id", input.DestinationAssetID,
		"amount", money.Format(input.Amount),
	)

	dest := input.DestinationAssetID
	transfer := &models.Transaction{
		Type:               models.TransactionTypeTransfer,
		Amount:             input.Amount,
		AssetID:            input.SourceAssetID,
		DestinationAssetID: &dest,
		Note:               input.Note,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sheets, err := lockSheets(tx, input.SourceAssetID, input.DestinationAssetID)
		if err != nil {
			return err
		}
		for _, id := range []uint{input.SourceAssetID, input.DestinationAssetID} {
			if sheets.find(id) == nil {
				return apperrors.WithMessage(apperrors.ErrAssetNotFound, fmt.Sprintf("asset %d not found", id))
			}
		}
		return post(tx, transfer, sheets)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			log.Debugw("Transfer rejected", "code", appErr.Code)
			return nil, err
		}
		log.Errorw("Transfer rolled back", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrTransferFailed, err)
	}

	log.Debugw("Transfer committed", "transaction_id", transfer.ID)
	return transfer, nil
}
