package services

import (
	"context"

	"gorm.io/gorm"

	"selfbank/internal/models"
)

type expenseTypeService struct {
	catalog catalog[models.ExpenseType]
}

// NewExpenseTypeService creates a new ExpenseTypeServicer.
func NewExpenseTypeService(db *gorm.DB) ExpenseTypeServicer {
	return &expenseTypeService{catalog: catalog[models.ExpenseType]{
		db:    db,
		label: "expense type",
		order: "LOWER(name) ASC, id ASC",
		build: func(name string) *models.ExpenseType {
			return &models.ExpenseType{Name: name}
		},
		validate: requireName("expense type", 100),
		refs: []reference{
			{model: &models.Expense{}, query: "expense_type_id = @id", what: "expenses"},
		},
	}}
}

func (s *expenseTypeService) CreateExpenseType(ctx context.Context, name string) (*models.ExpenseType, error) {
	return s.catalog.create(ctx, name)
}

func (s *expenseTypeService) GetExpenseType(ctx context.Context, id uint) (*models.ExpenseType, error) {
	return s.catalog.get(ctx, id)
}

func (s *expenseTypeService) UpdateExpenseType(ctx context.Context, id uint, fields NameUpdateFields) (*models.ExpenseType, error) {
	return s.catalog.update(ctx, id, fields)
}

func (s *expenseTypeService) DeleteExpenseType(ctx context.Context, id uint) error {
	return s.catalog.delete(ctx, id)
}

func (s *expenseTypeService) ListExpenseTypes(ctx context.Context) ([]models.ExpenseType, error) {
	return s.catalog.list(ctx)
}
