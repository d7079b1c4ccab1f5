package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"selfbank/internal/services"
)

// AssetTypeHandler handles asset type requests.
type AssetTypeHandler struct {
	assetTypeService services.AssetTypeServicer
}

// NewAssetTypeHandler creates a new AssetTypeHandler.
func NewAssetTypeHandler(assetTypeService services.AssetTypeServicer) *AssetTypeHandler {
	return &AssetTypeHandler{assetTypeService: assetTypeService}
}

// CreateAssetTypeRequest represents the request payload for creating an asset type.
type CreateAssetTypeRequest struct {
	Name string `json:"name" binding:"required,catalog_name"`
}

// UpdateAssetTypeRequest represents the request payload for renaming an asset type.
type UpdateAssetTypeRequest struct {
	Name *string `json:"name" binding:"omitempty,catalog_name"`
}

// CreateAssetType handles the creation of an asset type
// @Summary     Create an asset type
// @Description Names are 2-50 letters, digits or spaces and unique ignoring case
// @Tags        asset-types
// @Accept      json
// @Produce     json
// @Param       request body CreateAssetTypeRequest true "Asset type"
// @Success     201 {object} models.AssetType
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /asset-types [post]
func (h *AssetTypeHandler) CreateAssetType(c *gin.Context) {
	var req CreateAssetTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	assetType, err := h.assetTypeService.CreateAssetType(c.Request.Context(), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset_type": assetType})
}

// ListAssetTypes returns all asset types sorted by name
// @Summary     List asset types
// @Tags        asset-types
// @Produce     json
// @Success     200 {array} models.AssetType
// @Router      /asset-types [get]
func (h *AssetTypeHandler) ListAssetTypes(c *gin.Context) {
	assetTypes, err := h.assetTypeService.ListAssetTypes(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset_types": assetTypes})
}

// GetAssetType returns one asset type
// @Summary     Get asset type by ID
// @Tags        asset-types
// @Produce     json
// @Param       id path int true "Asset type ID"
// @Success     200 {object} models.AssetType
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /asset-types/{id} [get]
func (h *AssetTypeHandler) GetAssetType(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	assetType, err := h.assetTypeService.GetAssetType(c.Request.Context(), id)
	respondFound(c, "asset_type", assetType, err)
}

// UpdateAssetType renames an asset type
// @Summary     Update asset type
// @Tags        asset-types
// @Accept      json
// @Produce     json
// @Param       id      path int                    true "Asset type ID"
// @Param       request body UpdateAssetTypeRequest true "Fields to change"
// @Success     200 {object} models.AssetType
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /asset-types/{id} [put]
func (h *AssetTypeHandler) UpdateAssetType(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	assetType, err := h.assetTypeService.UpdateAssetType(c.Request.Context(), id, services.NameUpdateFields{Name: req.Name})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset_type": assetType})
}

// DeleteAssetType deletes an asset type no asset uses
// @Summary     Delete asset type
// @Tags        asset-types
// @Param       id path int true "Asset type ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Asset type in use"
// @Router      /asset-types/{id} [delete]
func (h *AssetTypeHandler) DeleteAssetType(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.assetTypeService.DeleteAssetType(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
