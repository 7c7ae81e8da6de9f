package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/internal/app/service"
	apperrors "github.com/ikkim/catalog-console/internal/errors"
	"github.com/ikkim/catalog-console/internal/middleware"
)

// ComposerController drives the variant composer and the added variants
type ComposerController struct {
	editor         service.EditorService
	maxUploadBytes int64
}

func NewComposerController(editor service.EditorService, maxUploadBytes int64) *ComposerController {
	return &ComposerController{
		editor:         editor,
		maxUploadBytes: maxUploadBytes,
	}
}

type SelectTypeRequest struct {
	TypeID string `json:"type_id" binding:"required"`
}

type SelectValueRequest struct {
	ValueID string `json:"value_id" binding:"required"`
}

type CreateValueRequest struct {
	Kind      model.DisplayKind `json:"kind" binding:"required,oneof=color unit text"`
	ColorCode string            `json:"color_code"`
	Label     string            `json:"label"`
	Unit      string            `json:"unit"`
}

func (r CreateValueRequest) payload() model.ValuePayload {
	switch r.Kind {
	case model.DisplayColor:
		return model.ColorPayload{ColorCode: r.ColorCode}
	case model.DisplayUnit:
		return model.UnitPayload{Label: r.Label, Unit: r.Unit}
	default:
		return model.TextPayload{Label: r.Label}
	}
}

// ValueOption is one entry of the value selector
type ValueOption struct {
	model.AttributeValue
	DisplayLabel string `json:"display_label"`
	Swatch       string `json:"swatch,omitempty"`
}

func valueOption(v model.AttributeValue) ValueOption {
	return ValueOption{AttributeValue: v, DisplayLabel: v.DisplayLabel(), Swatch: v.Swatch()}
}

// ListTypes GET /api/v1/sessions/:id/types
func (ctrl *ComposerController) ListTypes(c *gin.Context) {
	types, err := ctrl.editor.ListTypes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch variant types", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"types": types,
		"count": len(types),
	})
}

// ListValues GET /api/v1/sessions/:id/types/:typeId/values
func (ctrl *ComposerController) ListValues(c *gin.Context) {
	values, err := ctrl.editor.ListValues(c.Request.Context(), c.Param("id"), c.Param("typeId"))
	if err != nil {
		respondError(c, "Failed to fetch variant values", err)
		return
	}

	options := make([]ValueOption, 0, len(values))
	for _, v := range values {
		options = append(options, valueOption(v))
	}
	c.JSON(http.StatusOK, gin.H{
		"values": options,
		"count":  len(options),
	})
}

// SelectType PUT /api/v1/sessions/:id/composer/type
func (ctrl *ComposerController) SelectType(c *gin.Context) {
	var req SelectTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	respondSession(c, "Failed to select variant type")(ctrl.editor.SelectType(c.Request.Context(), c.Param("id"), req.TypeID))
}

// SelectValue PUT /api/v1/sessions/:id/composer/value
// The value id "add-new" enters value creation.
func (ctrl *ComposerController) SelectValue(c *gin.Context) {
	var req SelectValueRequest
	if !bindJSON(c, &req) {
		return
	}
	respondSession(c, "Failed to select variant value")(ctrl.editor.SelectValue(c.Request.Context(), c.Param("id"), req.ValueID))
}

// CreateValue POST /api/v1/sessions/:id/composer/values
func (ctrl *ComposerController) CreateValue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateValueRequest
	if !bindJSON(c, &req) {
		return
	}

	value, view, err := ctrl.editor.CreateValue(c.Request.Context(), c.Param("id"), req.payload())
	if err != nil {
		respondError(c, "Failed to create variant value", err)
		return
	}

	log.Info("Variant value created", map[string]interface{}{
		"value_id": value.ID,
		"kind":     req.Kind,
	})

	c.JSON(http.StatusCreated, gin.H{
		"value":   valueOption(*value),
		"session": view,
	})
}

// CancelCreateValue DELETE /api/v1/sessions/:id/composer/values
func (ctrl *ComposerController) CancelCreateValue(c *gin.Context) {
	respondSession(c, "Failed to cancel value creation")(ctrl.editor.CancelCreateValue(c.Param("id")))
}

// Update PATCH /api/v1/sessions/:id/composer
func (ctrl *ComposerController) Update(c *gin.Context) {
	var req draft.VariantPatch
	if !bindJSON(c, &req) {
		return
	}
	respondSession(c, "Failed to update draft variant")(ctrl.editor.UpdateComposer(c.Param("id"), req))
}

// AddImages POST /api/v1/sessions/:id/composer/images
func (ctrl *ComposerController) AddImages(c *gin.Context) {
	ctrl.addImages(c, service.ImageOwner{Kind: service.OwnerComposer})
}

// RemoveImage DELETE /api/v1/sessions/:id/composer/images/:index
func (ctrl *ComposerController) RemoveImage(c *gin.Context) {
	ctrl.removeImage(c, service.ImageOwner{Kind: service.OwnerComposer})
}

// Commit adds the draft variant to the product
// POST /api/v1/sessions/:id/composer/commit
func (ctrl *ComposerController) Commit(c *gin.Context) {
	variant, view, err := ctrl.editor.CommitVariant(c.Param("id"))
	if err != nil {
		respondError(c, "Failed to add variant", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"variant": variant,
		"session": view,
		"message": "Variant added successfully!",
	})
}

// UpdateVariant PATCH /api/v1/sessions/:id/variants/:localId
func (ctrl *ComposerController) UpdateVariant(c *gin.Context) {
	var req draft.VariantPatch
	if !bindJSON(c, &req) {
		return
	}
	respondSession(c, "Failed to update variant")(ctrl.editor.UpdateVariant(c.Param("id"), c.Param("localId"), req))
}

// RemoveVariant DELETE /api/v1/sessions/:id/variants/:localId
func (ctrl *ComposerController) RemoveVariant(c *gin.Context) {
	respondSession(c, "Failed to remove variant")(ctrl.editor.RemoveVariant(c.Request.Context(), c.Param("id"), c.Param("localId")))
}

// AddVariantImages POST /api/v1/sessions/:id/variants/:localId/images
func (ctrl *ComposerController) AddVariantImages(c *gin.Context) {
	ctrl.addImages(c, service.ImageOwner{Kind: service.OwnerVariant, VariantID: c.Param("localId")})
}

// RemoveVariantImage DELETE /api/v1/sessions/:id/variants/:localId/images/:index
func (ctrl *ComposerController) RemoveVariantImage(c *gin.Context) {
	ctrl.removeImage(c, service.ImageOwner{Kind: service.OwnerVariant, VariantID: c.Param("localId")})
}

func (ctrl *ComposerController) addImages(c *gin.Context, owner service.ImageOwner) {
	uploads, ok := readUploads(c, ctrl.maxUploadBytes)
	if !ok {
		return
	}
	view, warn, err := ctrl.editor.AddImages(c.Request.Context(), c.Param("id"), owner, uploads)
	if err != nil {
		respondError(c, "Failed to add variant images", err)
		return
	}
	c.JSON(http.StatusOK, imagesResponse(view, warn))
}

func (ctrl *ComposerController) removeImage(c *gin.Context, owner service.ImageOwner) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	if owner.Kind == service.OwnerVariant && owner.VariantID == "" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid variant id")
		return
	}
	respondSession(c, "Failed to remove variant image")(ctrl.editor.RemoveImage(c.Request.Context(), c.Param("id"), owner, index))
}
