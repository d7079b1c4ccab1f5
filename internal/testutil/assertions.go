package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertBalance checks the stored CurrentSheet balance of an asset.
func AssertBalance(t *testing.T, db *gorm.DB, assetID uint, expected string) {
	t.Helper()

	var sheet models.CurrentSheet
	if err := db.Where("asset_id = ?", assetID).First(&sheet).Error; err != nil {
		t.Fatalf("failed to load sheet for asset %d: %v", assetID, err)
	}

	want := decimal.RequireFromString(expected)
	if !sheet.Balance.Equal(want) {
		t.Errorf("asset %d: expected balance %s, got %s", assetID, want.StringFixed(2), sheet.Balance.StringFixed(2))
	}
}

// AssertTransactionCount checks the total number of journal rows.
func AssertTransactionCount(t *testing.T, db *gorm.DB, expected int64) {
	t.Helper()

	var count int64
	if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	if count != expected {
		t.Errorf("expected %d transactions, got %d", expected, count)
	}
}
