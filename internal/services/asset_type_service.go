package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/models"
	"selfbank/internal/validator"
)

// assetTypeService handles asset type business rules.
type assetTypeService struct {
	catalog catalog[models.AssetType]
}

// NewAssetTypeService creates a new AssetTypeServicer.
func NewAssetTypeService(db *gorm.DB) AssetTypeServicer {
	return &assetTypeService{catalog: catalog[models.AssetType]{
		db:    db,
		label: "asset type",
		order: "LOWER(name) ASC, id ASC",
		build: func(name string) *models.AssetType {
			return &models.AssetType{Name: name}
		},
		validate: validateAssetTypeName,
		refs: []reference{
			{model: &models.Asset{}, query: "asset_type_id = @id", what: "assets"},
		},
	}}
}

// validateAssetTypeName enforces 2-50 characters of letters, digits and spaces.
func validateAssetTypeName(name string) error {
	if name == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "asset type name is required")
	}
	if !validator.IsCatalogName(name) {
		return apperrors.WithMessage(apperrors.ErrValidation, "asset type name must be 2-50 letters, digits or spaces")
	}
	return nil
}

func (s *assetTypeService) CreateAssetType(ctx context.Context, name string) (*models.AssetType, error) {
	return s.catalog.create(ctx, name)
}

func (s *assetTypeService) GetAssetType(ctx context.Context, id uint) (*models.AssetType, error) {
	return s.catalog.get(ctx, id)
}

func (s *assetTypeService) UpdateAssetType(ctx context.Context, id uint, fields NameUpdateFields) (*models.AssetType, error) {
	return s.catalog.update(ctx, id, fields)
}

// DeleteAssetType fails with IN_USE while any asset still has this type.
func (s *assetTypeService) DeleteAssetType(ctx context.Context, id uint) error {
	return s.catalog.delete(ctx, id)
}

// ListAssetTypes returns all asset types sorted by name, ignoring case.
func (s *assetTypeService) ListAssetTypes(ctx context.Context) ([]models.AssetType, error) {
	return s.catalog.list(ctx)
}
