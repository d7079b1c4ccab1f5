package services

import (
	"context"

	"github.com/shopspring/decimal"

	"selfbank/internal/models"
	"selfbank/internal/pagination"
)

// Get operations across all servicers return (nil, nil) when the row does
// not exist; an error always means the lookup itself failed.

// AssetTypeServicer defines the contract for asset type business rules.
type AssetTypeServicer interface {
	CreateAssetType(ctx context.Context, name string) (*models.AssetType, error)
	GetAssetType(ctx context.Context, id uint) (*models.AssetType, error)
	UpdateAssetType(ctx context.Context, id uint, fields NameUpdateFields) (*models.AssetType, error)
	DeleteAssetType(ctx context.Context, id uint) error
	ListAssetTypes(ctx context.Context) ([]models.AssetType, error)
}

// ExpenseTypeServicer defines the contract for expense type business rules.
type ExpenseTypeServicer interface {
	CreateExpenseType(ctx context.Context, name string) (*models.ExpenseType, error)
	GetExpenseType(ctx context.Context, id uint) (*models.ExpenseType, error)
	UpdateExpenseType(ctx context.Context, id uint, fields NameUpdateFields) (*models.ExpenseType, error)
	DeleteExpenseType(ctx context.Context, id uint) error
	ListExpenseTypes(ctx context.Context) ([]models.ExpenseType, error)
}

// ContactTypeServicer defines the contract for contact type business rules.
type ContactTypeServicer interface {
	CreateContactType(ctx context.Context, name string) (*models.ContactType, error)
	GetContactType(ctx context.Context, id uint) (*models.ContactType, error)
	UpdateContactType(ctx context.Context, id uint, fields NameUpdateFields) (*models.ContactType, error)
	DeleteContactType(ctx context.Context, id uint) error
	ListContactTypes(ctx context.Context) ([]models.ContactType, error)
}

// NameUpdateFields is the partial update payload for the type catalogs.
type NameUpdateFields struct {
	Name *string
}

// AssetUpdateFields holds the optional fields for updating an asset.
type AssetUpdateFields struct {
	Name        *string
	AssetTypeID *uint
}

// Reconciliation compares an asset's materialized balance with the balance
// obtained by folding its journal.
type Reconciliation struct {
	AssetID        uint            `json:"asset_id"`
	SheetBalance   decimal.Decimal `json:"sheet_balance"`
	JournalBalance decimal.Decimal `json:"journal_balance"`
	Consistent     bool            `json:"consistent"`
}

// AssetServicer defines the contract for asset business rules and balances.
type AssetServicer interface {
	CreateAsset(ctx context.Context, name string, assetTypeID uint, initialBalance decimal.Decimal) (*models.Asset, error)
	GetAsset(ctx context.Context, id uint) (*models.Asset, error)
	UpdateAsset(ctx context.Context, id uint, fields AssetUpdateFields) (*models.Asset, error)
	DeleteAsset(ctx context.Context, id uint) error
	ListAssets(ctx context.Context) ([]models.Asset, error)
	GetBalance(ctx context.Context, assetID uint) (*models.CurrentSheet, error)
	Reconcile(ctx context.Context, assetID uint) (*Reconciliation, error)
}

// ExpenseUpdateFields holds the optional fields for updating an expense.
type ExpenseUpdateFields struct {
	Description   *string
	ExpenseTypeID *uint
}

// ExpenseServicer defines the contract for expense business rules.
type ExpenseServicer interface {
	CreateExpense(ctx context.Context, description string, expenseTypeID uint) (*models.Expense, error)
	GetExpense(ctx context.Context, id uint) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id uint, fields ExpenseUpdateFields) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id uint) error
	ListExpenses(ctx context.Context) ([]models.Expense, error)
}

// ContactInput holds the fields for creating a contact.
type ContactInput struct {
	Name          string
	BusinessName  string
	Phone         string
	Description   string
	ContactTypeID uint
}

// ContactUpdateFields holds the optional fields for updating a contact.
type ContactUpdateFields struct {
	Name          *string
	BusinessName  *string
	Phone         *string
	Description   *string
	ContactTypeID *uint
}

// ContactServicer defines the contract for contact business rules.
type ContactServicer interface {
	CreateContact(ctx context.Context, input ContactInput) (*models.Contact, error)
	GetContact(ctx context.Context, id uint) (*models.Contact, error)
	UpdateContact(ctx context.Context, id uint, fields ContactUpdateFields) (*models.Contact, error)
	DeleteContact(ctx context.Context, id uint) error
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

// IncomeInput is the payload for recording income against an asset.
type IncomeInput struct {
	AssetID   uint
	Amount    decimal.Decimal
	Note      string
	ContactID *uint
}

// PaymentInput is the payload for recording a payment from an asset.
type PaymentInput struct {
	AssetID   uint
	Amount    decimal.Decimal
	ExpenseID *uint
	Note      string
	ContactID *uint
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type    *models.TransactionType
	AssetID *uint
	Month   string
}

// TransactionServicer records income and payments and reads the journal.
type TransactionServicer interface {
	RecordIncome(ctx context.Context, input IncomeInput) (*models.Transaction, error)
	RecordPayment(ctx context.Context, input PaymentInput) (*models.Transaction, error)
	GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error)
	ListTransactions(ctx context.Context, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	ListByType(ctx context.Context, kind models.TransactionType) ([]models.Transaction, error)
	ListByMonth(ctx context.Context, month string) ([]models.Transaction, error)
	ListAssetTransactions(ctx context.Context, assetID uint) ([]models.Transaction, error)
}

// TransferInput is the payload for moving funds between two assets.
type TransferInput struct {
	SourceAssetID      uint
	DestinationAssetID uint
	Amount             decimal.Decimal
	Note               string
}

// TransferServicer moves funds between assets atomically.
type TransferServicer interface {
	TransferFund(ctx context.Context, input TransferInput) (*models.Transaction, error)
}
