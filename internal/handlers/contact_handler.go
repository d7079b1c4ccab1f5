package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"selfbank/internal/services"
)

// ContactHandler handles contact requests.
type ContactHandler struct {
	contactService services.ContactServicer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.ContactServicer) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// CreateContactRequest represents the request payload for creating a contact.
type CreateContactRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	BusinessName  string `json:"business_name" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"required,max=32"`
	Description   string `json:"description" binding:"max=500"`
	ContactTypeID uint   `json:"contact_type_id" binding:"required"`
}

// UpdateContactRequest represents the request payload for updating a contact.
type UpdateContactRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	BusinessName  *string `json:"business_name" binding:"omitempty,max=100"`
	Phone         *string `json:"phone" binding:"omitempty,max=32"`
	Description   *string `json:"description" binding:"omitempty,max=500"`
	ContactTypeID *uint   `json:"contact_type_id"`
}

// CreateContact handles the creation of a contact
// @Summary     Create a contact
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Param       request body CreateContactRequest true "Contact"
// @Success     201 {object} models.Contact
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), services.ContactInput{
		Name:          req.Name,
		BusinessName:  req.BusinessName,
		Phone:         req.Phone,
		Description:   req.Description,
		ContactTypeID: req.ContactTypeID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

// ListContacts returns all contacts
// @Summary     List contacts
// @Tags        contacts
// @Produce     json
// @Success     200 {array} models.Contact
// @Router      /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	contacts, err := h.contactService.ListContacts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// GetContact returns one contact
// @Summary     Get contact by ID
// @Tags        contacts
// @Produce     json
// @Param       id path int true "Contact ID"
// @Success     200 {object} models.Contact
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /contacts/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	contact, err := h.contactService.GetContact(c.Request.Context(), id)
	respondFound(c, "contact", contact, err)
}

// UpdateContact applies a partial update to a contact
// @Summary     Update contact
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Contact ID"
// @Param       request body UpdateContactRequest true "Fields to change"
// @Success     200 {object} models.Contact
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), id, services.ContactUpdateFields{
		Name:          req.Name,
		BusinessName:  req.BusinessName,
		Phone:         req.Phone,
		Description:   req.Description,
		ContactTypeID: req.ContactTypeID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// DeleteContact deletes a contact no transaction references
// @Summary     Delete contact
// @Tags        contacts
// @Param       id path int true "Contact ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Contact in use"
// @Router      /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.contactService.DeleteContact(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
