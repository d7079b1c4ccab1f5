package services

import (
	"context"

	"gorm.io/gorm"

	"selfbank/internal/models"
)

type contactTypeService struct {
	catalog catalog[models.ContactType]
}

// NewContactTypeService creates a new ContactTypeServicer.
func NewContactTypeService(db *gorm.DB) ContactTypeServicer {
	return &contactTypeService{catalog: catalog[models.ContactType]{
		db:    db,
		label: "contact type",
		order: "LOWER(name) ASC, id ASC",
		build: func(name string) *models.ContactType {
			return &models.ContactType{Name: name}
		},
		validate: requireName("contact type", 100),
		refs: []reference{
			{model: &models.Contact{}, query: "contact_type_id = @id", what: "contacts"},
		},
	}}
}

func (s *contactTypeService) CreateContactType(ctx context.Context, name string) (*models.ContactType, error) {
	return s.catalog.create(ctx, name)
}

func (s *contactTypeService) GetContactType(ctx context.Context, id uint) (*models.ContactType, error) {
	return s.catalog.get(ctx, id)
}

func (s *contactTypeService) UpdateContactType(ctx context.Context, id uint, fields NameUpdateFields) (*models.ContactType, error) {
	return s.catalog.update(ctx, id, fields)
}

func (s *contactTypeService) DeleteContactType(ctx context.Context, id uint) error {
	return s.catalog.delete(ctx, id)
}

func (s *contactTypeService) ListContactTypes(ctx context.Context) ([]models.ContactType, error) {
	return s.catalog.list(ctx)
}
