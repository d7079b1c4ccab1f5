package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "selfbank/internal/errors"
)

// reference describes dependent rows that block deleting a parent. The query
// uses the named parameter @id for the parent's primary key.
type reference struct {
	model interface{}
	query string
	what  string
}

// findByID loads a live row by primary key, reporting absence as (nil, nil).
func findByID[T any](db *gorm.DB, id uint) (*T, error) {
	var row T
	if err := db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}

// mustFind is findByID with absence reported as the given error.
func mustFind[T any](db *gorm.DB, id uint, absent *apperrors.AppError) (*T, error) {
	row, err := findByID[T](db, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, absent
	}
	return row, nil
}

// forUpdate and forShare take row locks on PostgreSQL. The SQLite dialect
// drops the locking clause; there a single connection serializes writers.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func forShare(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "SHARE"})
}

// requireParent checks that a referenced row exists and holds a share lock on
// it until the surrounding transaction ends, so a concurrent delete cannot
// orphan the row being written.
func requireParent[T any](tx *gorm.DB, id uint, what string) error {
	if id == 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, what+" is required")
	}
	row, err := findByID[T](forShare(tx), id)
	if err != nil {
		return err
	}
	if row == nil {
		return apperrors.WithMessage(apperrors.ErrValidation, what+" does not exist")
	}
	return nil
}

func listAll[T any](db *gorm.DB, order string) ([]T, error) {
	var rows []T
	if err := db.Order(order).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// nameTaken reports whether another live row of T uses name, ignoring case.
func nameTaken[T any](db *gorm.DB, name string, excludeID uint) (bool, error) {
	q := db.Model(new(T)).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// deleteGuarded removes row id of T unless any reference still points at it.
// The row is locked first so concurrent writers that take a share lock on it
// (see requireParent) are ordered against the delete.
func deleteGuarded[T any](tx *gorm.DB, id uint, absent *apperrors.AppError, refs ...reference) (*T, error) {
	row, err := mustFind[T](forUpdate(tx), id, absent)
	if err != nil {
		return nil, err
	}

	for _, ref := range refs {
		var count int64
		if err := tx.Model(ref.model).Where(ref.query, map[string]interface{}{"id": id}).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInUse, "still referenced by "+ref.what)
		}
	}

	if err := tx.Delete(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// asAppError passes AppErrors through and wraps anything else as internal.
func asAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(apperrors.ErrDuplicateName, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
