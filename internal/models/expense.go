package models

// ExpenseType groups expenses, e.g. "Utilities".
type ExpenseType struct {
	Base
	Name string `gorm:"not null;index" json:"name"`
}

// Expense is a categorized spending reason referenced by payments.
type Expense struct {
	Base
	Description   string `gorm:"not null;index" json:"description"`
	ExpenseTypeID uint   `gorm:"not null;index" json:"expense_type_id"`
}
