package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedAmountFor(t *testing.T) {
	amount := decimal.RequireFromString("12.34")
	dest := uint(2)

	income := Transaction{Type: TransactionTypeIncome, Amount: amount, AssetID: 1}
	assert.True(t, income.SignedAmountFor(1).Equal(amount))
	assert.True(t, income.SignedAmountFor(2).IsZero())

	payment := Transaction{Type: TransactionTypePayment, Amount: amount, AssetID: 1}
	assert.True(t, payment.SignedAmountFor(1).Equal(amount.Neg()))

	transfer := Transaction{Type: TransactionTypeTransfer, Amount: amount, AssetID: 1, DestinationAssetID: &dest}
	assert.True(t, transfer.SignedAmountFor(1).Equal(amount.Neg()))
	assert.True(t, transfer.SignedAmountFor(2).Equal(amount))
	assert.True(t, transfer.SignedAmountFor(3).IsZero())
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TransactionTypeIncome.Valid())
	assert.True(t, TransactionTypePayment.Valid())
	assert.True(t, TransactionTypeTransfer.Valid())
	assert.False(t, TransactionType("income").Valid())
	assert.False(t, TransactionType("").Valid())
}
