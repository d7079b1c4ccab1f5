package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "selfbank/internal/errors"
)

// catalog implements the create/get/update/delete/list rules shared by the
// named lookup tables (asset, expense and contact types). Names are unique
// among live rows regardless of case.
type catalog[T any] struct {
	db       *gorm.DB
	label    string
	order    string
	build    func(name string) *T
	validate func(name string) error
	refs     []reference
}

func (c *catalog[T]) create(ctx context.Context, name string) (*T, error) {
	name = strings.TrimSpace(name)
	if err := c.validate(name); err != nil {
		return nil, err
	}

	row := c.build(name)
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken[T](tx, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.WithMessage(apperrors.ErrDuplicateName, c.label+" "+name+" already exists")
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return row, nil
}

func (c *catalog[T]) get(ctx context.Context, id uint) (*T, error) {
	return findByID[T](c.db.WithContext(ctx), id)
}

func (c *catalog[T]) update(ctx context.Context, id uint, fields NameUpdateFields) (*T, error) {
	var updated *T
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := mustFind[T](forUpdate(tx), id, apperrors.WithMessage(apperrors.ErrNotFound, c.label+" not found"))
		if err != nil {
			return err
		}

		if fields.Name != nil {
			name := strings.TrimSpace(*fields.Name)
			if err := c.validate(name); err != nil {
				return err
			}
			taken, err := nameTaken[T](tx, name, id)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.WithMessage(apperrors.ErrDuplicateName, c.label+" "+name+" already exists")
			}
			if err := tx.Model(row).Update("name", name).Error; err != nil {
				return err
			}
		}

		updated, err = findByID[T](tx, id)
		return err
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return updated, nil
}

func (c *catalog[T]) delete(ctx context.Context, id uint) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := deleteGuarded[T](tx, id, apperrors.WithMessage(apperrors.ErrNotFound, c.label+" not found"), c.refs...)
		return err
	})
	return asAppError(err)
}

func (c *catalog[T]) list(ctx context.Context) ([]T, error) {
	return listAll[T](c.db.WithContext(ctx), c.order)
}

// requireName rejects blank names and names longer than max characters.
func requireName(label string, max int) func(string) error {
	return func(name string) error {
		if name == "" {
			return apperrors.WithMessage(apperrors.ErrValidation, label+" name is required")
		}
		if len([]rune(name)) > max {
			return apperrors.WithMessage(apperrors.ErrValidation, label+" name is too long")
		}
		return nil
	}
}
