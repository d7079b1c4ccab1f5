package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"selfbank/internal/services"
)

// ContactTypeHandler handles contact type requests.
type ContactTypeHandler struct {
	contactTypeService services.ContactTypeServicer
}

// NewContactTypeHandler creates a new ContactTypeHandler.
func NewContactTypeHandler(contactTypeService services.ContactTypeServicer) *ContactTypeHandler {
	return &ContactTypeHandler{contactTypeService: contactTypeService}
}

// ContactTypeRequest is the payload for creating or renaming a contact type.
type ContactTypeRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
}

// CreateContactType handles the creation of a contact type
// @Summary     Create a contact type
// @Tags        contact-types
// @Accept      json
// @Produce     json
// @Param       request body ContactTypeRequest true "Contact type"
// @Success     201 {object} models.ContactType
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /contact-types [post]
func (h *ContactTypeHandler) CreateContactType(c *gin.Context) {
	var req ContactTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	name := ""
	if req.Name != nil {
		name = *req.Name
	}

	contactType, err := h.contactTypeService.CreateContactType(c.Request.Context(), name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contact_type": contactType})
}

// ListContactTypes returns all contact types
// @Summary     List contact types
// @Tags        contact-types
// @Produce     json
// @Success     200 {array} models.ContactType
// @Router      /contact-types [get]
func (h *ContactTypeHandler) ListContactTypes(c *gin.Context) {
	contactTypes, err := h.contactTypeService.ListContactTypes(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact_types": contactTypes})
}

// GetContactType returns one contact type
// @Summary     Get contact type by ID
// @Tags        contact-types
// @Produce     json
// @Param       id path int true "Contact type ID"
// @Success     200 {object} models.ContactType
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /contact-types/{id} [get]
func (h *ContactTypeHandler) GetContactType(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	contactType, err := h.contactTypeService.GetContactType(c.Request.Context(), id)
	respondFound(c, "contact_type", contactType, err)
}

// UpdateContactType renames a contact type
// @Summary     Update contact type
// @Tags        contact-types
// @Accept      json
// @Produce     json
// @Param       id      path int true "Contact type ID"
// @Param       request body ContactTypeRequest true "Fields to change"
// @Success     200 {object} models.ContactType
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /contact-types/{id} [put]
func (h *ContactTypeHandler) UpdateContactType(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContactTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	contactType, err := h.contactTypeService.UpdateContactType(c.Request.Context(), id, services.NameUpdateFields{Name: req.Name})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact_type": contactType})
}

// DeleteContactType deletes an unreferenced contact type
// @Summary     Delete contact type
// @Tags        contact-types
// @Param       id path int true "Contact type ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "In use"
// @Router      /contact-types/{id} [delete]
func (h *ContactTypeHandler) DeleteContactType(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.contactTypeService.DeleteContactType(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
