package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/models"
	"selfbank/internal/pagination"
	"selfbank/internal/services"
)

// TransactionHandler handles journal requests: income, payments, transfers and listings.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	transferService    services.TransferServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, transferService services.TransferServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, transferService: transferService}
}

// RecordIncomeRequest represents the request payload for recording income.
// Amounts accept a JSON number or decimal string.
type RecordIncomeRequest struct {
	AssetID   uint            `json:"asset_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"40.00"`
	Note      string          `json:"note" binding:"max=500"`
	ContactID *uint           `json:"contact_id"`
}

// RecordPaymentRequest represents the request payload for recording a payment.
type RecordPaymentRequest struct {
	AssetID   uint            `json:"asset_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"12.50"`
	ExpenseID *uint           `json:"expense_id"`
	Note      string          `json:"note" binding:"max=500"`
	ContactID *uint           `json:"contact_id"`
}

// TransferRequest represents the request payload for moving funds between assets.
type TransferRequest struct {
	SourceAssetID      uint            `json:"source_asset_id" binding:"required"`
	DestinationAssetID uint            `json:"destination_asset_id" binding:"required"`
	Amount             decimal.Decimal `json:"amount" swaggertype:"string" example:"40.00"`
	Note               string          `json:"note" binding:"max=500"`
}

// ListTransactionsQuery holds the query parameters for the journal listing.
type ListTransactionsQuery struct {
	pagination.PageRequest
	Type    string `form:"type" binding:"omitempty,transaction_type"`
	AssetID *uint  `form:"asset_id"`
	Month   string `form:"month"`
}

type transactionTypeURI struct {
	Type string `uri:"type" binding:"required,transaction_type"`
}

type monthURI struct {
	Month string `uri:"month" binding:"required,year_month"`
}

// RecordIncome handles money arriving in an asset
// @Summary     Record income
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body RecordIncomeRequest true "Income"
// @Success     201 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input or amount"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /transactions/income [post]
func (h *TransactionHandler) RecordIncome(c *gin.Context) {
	var req RecordIncomeRequest
	if !bindJSON(c, &req) {
		return
	}

	transaction, err := h.transactionService.RecordIncome(c.Request.Context(), services.IncomeInput{
		AssetID:   req.AssetID,
		Amount:    req.Amount,
		Note:      req.Note,
		ContactID: req.ContactID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// RecordPayment handles money leaving an asset against an expense
// @Summary     Record payment
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body RecordPaymentRequest true "Payment"
// @Success     201 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input, missing expense or insufficient funds"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /transactions/payment [post]
func (h *TransactionHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	transaction, err := h.transactionService.RecordPayment(c.Request.Context(), services.PaymentInput{
		AssetID:   req.AssetID,
		Amount:    req.Amount,
		ExpenseID: req.ExpenseID,
		Note:      req.Note,
		ContactID: req.ContactID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// TransferFund handles an atomic transfer between two assets
// @Summary     Transfer funds
// @Description Debits the source and credits the destination in one transaction, or changes nothing.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransferRequest true "Transfer"
// @Success     201 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid amount, same asset or insufficient funds"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Transfer failed"
// @Router      /transactions/transfer [post]
func (h *TransactionHandler) TransferFund(c *gin.Context) {
	var req TransferRequest
	if !bindJSON(c, &req) {
		return
	}

	transaction, err := h.transferService.TransferFund(c.Request.Context(), services.TransferInput{
		SourceAssetID:      req.SourceAssetID,
		DestinationAssetID: req.DestinationAssetID,
		Amount:             req.Amount,
		Note:               req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions returns a page of the journal, newest first
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       type      query string false "Income, Payment or Transfer"
// @Param       asset_id  query int    false "Source or destination asset"
// @Param       month     query string false "YYYY-MM"
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var q ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	filter := services.TransactionFilter{AssetID: q.AssetID, Month: q.Month}
	if q.Type != "" {
		kind := models.TransactionType(q.Type)
		filter.Type = &kind
	}

	page, err := h.transactionService.ListTransactions(c.Request.Context(), q.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListByType returns all transactions of one kind
// @Summary     List transactions by type
// @Tags        transactions
// @Produce     json
// @Param       type path string true "Income, Payment or Transfer"
// @Success     200 {array} models.Transaction
// @Failure     400 {object} ErrorResponse "Unknown type"
// @Router      /transactions/type/{type} [get]
func (h *TransactionHandler) ListByType(c *gin.Context) {
	var uri transactionTypeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.ErrInvalidTransactionType)
		return
	}

	transactions, err := h.transactionService.ListByType(c.Request.Context(), models.TransactionType(uri.Type))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// ListByMonth returns all transactions created in a calendar month
// @Summary     List transactions by month
// @Tags        transactions
// @Produce     json
// @Param       month path string true "YYYY-MM"
// @Success     200 {array} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid month format"
// @Router      /transactions/month/{month} [get]
func (h *TransactionHandler) ListByMonth(c *gin.Context) {
	var uri monthURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.ErrInvalidMonthFormat)
		return
	}

	transactions, err := h.transactionService.ListByMonth(c.Request.Context(), uri.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransaction returns one journal row
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transaction, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	respondFound(c, "transaction", transaction, err)
}
