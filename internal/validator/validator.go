// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"selfbank/internal/models"
)

var catalogNameRegex = regexp.MustCompile(`^[A-Za-z0-9 ]{2,50}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("year_month", validateYearMonth)
		_ = v.RegisterValidation("catalog_name", validateCatalogName)
	}
}

// IsCatalogName reports whether name is 2-50 ASCII letters, digits or spaces.
func IsCatalogName(name string) bool {
	return catalogNameRegex.MatchString(name)
}

// IsYearMonth reports whether s is a calendar month formatted as YYYY-MM.
func IsYearMonth(s string) bool {
	_, err := time.Parse(models.MonthLayout, s)
	return err == nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

func validateYearMonth(fl validator.FieldLevel) bool {
	return IsYearMonth(fl.Field().String())
}

func validateCatalogName(fl validator.FieldLevel) bool {
	return IsCatalogName(fl.Field().String())
}
