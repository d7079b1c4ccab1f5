package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/models"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

func validateDescription(description string) error {
	if description == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "expense description is required")
	}
	if len([]rune(description)) > 255 {
		return apperrors.WithMessage(apperrors.ErrValidation, "expense description is too long")
	}
	return nil
}

// CreateExpense creates an expense under an existing expense type.
func (s *expenseService) CreateExpense(ctx context.Context, description string, expenseTypeID uint) (*models.Expense, error) {
	description = strings.TrimSpace(description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	expense := &models.Expense{Description: description, ExpenseTypeID: expenseTypeID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireParent[models.ExpenseType](tx, expenseTypeID, "expense type"); err != nil {
			return err
		}
		return tx.Create(expense).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, id uint) (*models.Expense, error) {
	return findByID[models.Expense](s.db.WithContext(ctx), id)
}

// UpdateExpense applies the provided fields to an existing expense.
func (s *expenseService) UpdateExpense(ctx context.Context, id uint, fields ExpenseUpdateFields) (*models.Expense, error) {
	var expense *models.Expense
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		expense, err = mustFind[models.Expense](forUpdate(tx), id, apperrors.WithMessage(apperrors.ErrNotFound, "expense not found"))
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if fields.Description != nil {
			description := strings.TrimSpace(*fields.Description)
			if err := validateDescription(description); err != nil {
				return err
			}
			updates["description"] = description
		}
		if fields.ExpenseTypeID != nil {
			if err := requireParent[models.ExpenseType](tx, *fields.ExpenseTypeID, "expense type"); err != nil {
				return err
			}
			updates["expense_type_id"] = *fields.ExpenseTypeID
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(expense).Updates(updates).Error; err != nil {
			return err
		}
		expense, err = findByID[models.Expense](tx, id)
		return err
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return expense, nil
}

// DeleteExpense fails with IN_USE while any payment references the expense.
func (s *expenseService) DeleteExpense(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := deleteGuarded[models.Expense](tx, id, apperrors.WithMessage(apperrors.ErrNotFound, "expense not found"), reference{
			model: &models.Transaction{},
			query: "expense_id = @id",
			what:  "transactions",
		})
		return err
	})
	return asAppError(err)
}

func (s *expenseService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return listAll[models.Expense](s.db.WithContext(ctx), "id ASC")
}
