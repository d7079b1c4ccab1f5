package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/services"
)

// AssetHandler handles asset requests, including balances.
type AssetHandler struct {
	assetService       services.AssetServicer
	transactionService services.TransactionServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, transactionService services.TransactionServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService, transactionService: transactionService}
}

// CreateAssetRequest represents the request payload for creating an asset.
// InitialBalance accepts a JSON number or decimal string.
type CreateAssetRequest struct {
	Name           string           `json:"name" binding:"required,max=100"`
	AssetTypeID    uint             `json:"asset_type_id" binding:"required"`
	InitialBalance *decimal.Decimal `json:"initial_balance" swaggertype:"string" example:"100.00"`
}

// UpdateAssetRequest represents the request payload for updating an asset.
type UpdateAssetRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	AssetTypeID *uint   `json:"asset_type_id"`
}

// CreateAsset handles the creation of an asset and its balance sheet
// @Summary     Create an asset
// @Description Creates the asset with its balance sheet. A positive initial balance is journaled as income.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body CreateAssetRequest true "Asset"
// @Success     201 {object} models.Asset
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if !bindJSON(c, &req) {
		return
	}

	initial := decimal.Zero
	if req.InitialBalance != nil {
		initial = *req.InitialBalance
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), req.Name, req.AssetTypeID, initial)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// ListAssets returns all assets
// @Summary     List assets
// @Tags        assets
// @Produce     json
// @Success     200 {array} models.Asset
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	assets, err := h.assetService.ListAssets(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// GetAsset returns one asset
// @Summary     Get asset by ID
// @Tags        assets
// @Produce     json
// @Param       id path int true "Asset ID"
// @Success     200 {object} models.Asset
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	asset, err := h.assetService.GetAsset(c.Request.Context(), id)
	respondFound(c, "asset", asset, err)
}

// UpdateAsset changes an asset's name or type
// @Summary     Update asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       id      path int                true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to change"
// @Success     200 {object} models.Asset
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if !bindJSON(c, &req) {
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), id, services.AssetUpdateFields{
		Name:        req.Name,
		AssetTypeID: req.AssetTypeID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset deletes an asset with no journal history
// @Summary     Delete asset
// @Tags        assets
// @Param       id path int true "Asset ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Asset has transactions"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.assetService.DeleteAsset(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetBalance returns the asset's current sheet
// @Summary     Get asset balance
// @Tags        assets
// @Produce     json
// @Param       id path int true "Asset ID"
// @Success     200 {object} models.CurrentSheet
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id}/balance [get]
func (h *AssetHandler) GetBalance(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sheet, err := h.assetService.GetBalance(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if sheet == nil {
		respondWithError(c, apperrors.ErrAssetNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": sheet})
}

// Reconcile compares the asset's sheet with its journal
// @Summary     Reconcile asset balance
// @Tags        assets
// @Produce     json
// @Param       id path int true "Asset ID"
// @Success     200 {object} services.Reconciliation
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id}/reconciliation [get]
func (h *AssetHandler) Reconcile(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, err := h.assetService.Reconcile(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciliation": rec})
}

// ListAssetTransactions returns journal rows touching the asset
// @Summary     List asset transactions
// @Tags        assets,transactions
// @Produce     json
// @Param       id path int true "Asset ID"
// @Success     200 {array} models.Transaction
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id}/transactions [get]
func (h *AssetHandler) ListAssetTransactions(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.ListAssetTransactions(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
