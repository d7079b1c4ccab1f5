package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/models"
)

// contactService handles contact-related business logic.
type contactService struct {
	db *gorm.DB
}

// NewContactService creates a new ContactServicer.
func NewContactService(db *gorm.DB) ContactServicer {
	return &contactService{db: db}
}

// CreateContact creates a contact under an existing contact type. Name,
// business name and phone are required; description is optional.
func (s *contactService) CreateContact(ctx context.Context, input ContactInput) (*models.Contact, error) {
	contact := &models.Contact{
		Name:          strings.TrimSpace(input.Name),
		BusinessName:  strings.TrimSpace(input.BusinessName),
		Phone:         strings.TrimSpace(input.Phone),
		Description:   strings.TrimSpace(input.Description),
		ContactTypeID: input.ContactTypeID,
	}
	if err := validateContact(contact); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireParent[models.ContactType](tx, input.ContactTypeID, "contact type"); err != nil {
			return err
		}
		return tx.Create(contact).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return contact, nil
}

func validateContact(c *models.Contact) error {
	switch {
	case c.Name == "":
		return apperrors.WithMessage(apperrors.ErrValidation, "contact name is required")
	case c.BusinessName == "":
		return apperrors.WithMessage(apperrors.ErrValidation, "contact business name is required")
	case c.Phone == "":
		return apperrors.WithMessage(apperrors.ErrValidation, "contact phone is required")
	}
	return nil
}

func (s *contactService) GetContact(ctx context.Context, id uint) (*models.Contact, error) {
	return findByID[models.Contact](s.db.WithContext(ctx), id)
}

// UpdateContact applies the provided fields to an existing contact.
func (s *contactService) UpdateContact(ctx context.Context, id uint, fields ContactUpdateFields) (*models.Contact, error) {
	var contact *models.Contact
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		contact, err = mustFind[models.Contact](forUpdate(tx), id, apperrors.WithMessage(apperrors.ErrNotFound, "contact not found"))
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})
		next := *contact
		if fields.Name != nil {
			next.Name = strings.TrimSpace(*fields.Name)
			updates["name"] = next.Name
		}
		if fields.BusinessName != nil {
			next.BusinessName = strings.TrimSpace(*fields.BusinessName)
			updates["business_name"] = next.BusinessName
		}
		if fields.Phone != nil {
			next.Phone = strings.TrimSpace(*fields.Phone)
			updates["phone"] = next.Phone
		}
		if fields.Description != nil {
			next.Description = strings.TrimSpace(*fields.Description)
			updates["description"] = next.Description
		}
		if err := validateContact(&next); err != nil {
			return err
		}
		if fields.ContactTypeID != nil {
			if err := requireParent[models.ContactType](tx, *fields.ContactTypeID, "contact type"); err != nil {
				return err
			}
			updates["contact_type_id"] = *fields.ContactTypeID
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(contact).Updates(updates).Error; err != nil {
			return err
		}
		contact, err = findByID[models.Contact](tx, id)
		return err
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return contact, nil
}

// DeleteContact fails with IN_USE while any transaction references the contact.
func (s *contactService) DeleteContact(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := deleteGuarded[models.Contact](tx, id, apperrors.WithMessage(apperrors.ErrNotFound, "contact not found"), reference{
			model: &models.Transaction{},
			query: "contact_id = @id",
			what:  "transactions",
		})
		return err
	})
	return asAppError(err)
}

func (s *contactService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return listAll[models.Contact](s.db.WithContext(ctx), "id ASC")
}
