package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"selfbank/internal/services"
)

// ExpenseTypeHandler handles expense type requests.
type ExpenseTypeHandler struct {
	expenseTypeService services.ExpenseTypeServicer
}

// NewExpenseTypeHandler creates a new ExpenseTypeHandler.
func NewExpenseTypeHandler(expenseTypeService services.ExpenseTypeServicer) *ExpenseTypeHandler {
	return &ExpenseTypeHandler{expenseTypeService: expenseTypeService}
}

// ExpenseTypeRequest is the payload for creating or renaming an expense type.
type ExpenseTypeRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
}

// CreateExpenseType handles the creation of an expense type
// @Summary     Create an expense type
// @Tags        expense-types
// @Accept      json
// @Produce     json
// @Param       request body ExpenseTypeRequest true "Expense type"
// @Success     201 {object} models.ExpenseType
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /expense-types [post]
func (h *ExpenseTypeHandler) CreateExpenseType(c *gin.Context) {
	var req ExpenseTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	name := ""
	if req.Name != nil {
		name = *req.Name
	}

	expenseType, err := h.expenseTypeService.CreateExpenseType(c.Request.Context(), name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense_type": expenseType})
}

// ListExpenseTypes returns all expense types
// @Summary     List expense types
// @Tags        expense-types
// @Produce     json
// @Success     200 {array} models.ExpenseType
// @Router      /expense-types [get]
func (h *ExpenseTypeHandler) ListExpenseTypes(c *gin.Context) {
	expenseTypes, err := h.expenseTypeService.ListExpenseTypes(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense_types": expenseTypes})
}

// GetExpenseType returns one expense type
// @Summary     Get expense type by ID
// @Tags        expense-types
// @Produce     json
// @Param       id path int true "Expense type ID"
// @Success     200 {object} models.ExpenseType
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expense-types/{id} [get]
func (h *ExpenseTypeHandler) GetExpenseType(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	expenseType, err := h.expenseTypeService.GetExpenseType(c.Request.Context(), id)
	respondFound(c, "expense_type", expenseType, err)
}

// UpdateExpenseType renames an expense type
// @Summary     Update expense type
// @Tags        expense-types
// @Accept      json
// @Produce     json
// @Param       id      path int true "Expense type ID"
// @Param       request body ExpenseTypeRequest true "Fields to change"
// @Success     200 {object} models.ExpenseType
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /expense-types/{id} [put]
func (h *ExpenseTypeHandler) UpdateExpenseType(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	expenseType, err := h.expenseTypeService.UpdateExpenseType(c.Request.Context(), id, services.NameUpdateFields{Name: req.Name})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense_type": expenseType})
}

// DeleteExpenseType deletes an unreferenced expense type
// @Summary     Delete expense type
// @Tags        expense-types
// @Param       id path int true "Expense type ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "In use"
// @Router      /expense-types/{id} [delete]
func (h *ExpenseTypeHandler) DeleteExpenseType(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.expenseTypeService.DeleteExpenseType(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
