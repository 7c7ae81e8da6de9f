package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/service"
	"github.com/ikkim/catalog-console/internal/middleware"
)

type SessionController struct {
	editor         service.EditorService
	maxUploadBytes int64
}

func NewSessionController(editor service.EditorService, maxUploadBytes int64) *SessionController {
	return &SessionController{
		editor:         editor,
		maxUploadBytes: maxUploadBytes,
	}
}

type OpenSessionRequest struct {
	ProductSlug string `json:"product_slug"`
}

type VariantModeRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type ValueRequest struct {
	Value string `json:"value" binding:"required"`
}

// Open starts an editing session
// POST /api/v1/sessions
func (ctrl *SessionController) Open(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req OpenSessionRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	view, err := ctrl.editor.Open(c.Request.Context(), req.ProductSlug)
	if err != nil {
		respondError(c, "Failed to open editing session", err)
		return
	}

	log.Info("Editing session opened", map[string]interface{}{
		"session_id": view.ID,
		"mode":       view.Mode,
	})

	c.JSON(http.StatusCreated, gin.H{
		"session": view,
	})
}

// Get returns the session view
// GET /api/v1/sessions/:id
func (ctrl *SessionController) Get(c *gin.Context) {
	view, err := ctrl.editor.Get(c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch editing session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": view,
	})
}

// Discard closes the session without saving
// DELETE /api/v1/sessions/:id
func (ctrl *SessionController) Discard(c *gin.Context) {
	if err := ctrl.editor.Discard(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to discard editing session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Session discarded",
	})
}

// UpdateFields patches the draft's scalar fields
// PATCH /api/v1/sessions/:id
func (ctrl *SessionController) UpdateFields(c *gin.Context) {
	var req draft.Fields
	if !bindJSON(c, &req) {
		return
	}
	respondSession(c, "Failed to update draft fields")(ctrl.editor.UpdateFields(c.Param("id"), req))
}

// AddTag POST /api/v1/sessions/:id/tags
func (ctrl *SessionController) AddTag(c *gin.Context) {
	var req ValueRequest
	if !bindJSON(c, &req) {
		return
	}
	respondSession(c, "Failed to add tag")(ctrl.editor.AddTag(c.Param("id"), req.Value))
}

// RemoveTag DELETE /api/v1/sessions/:id/tags/:tag
func (ctrl *SessionController) RemoveTag(c *gin.Context) {
	respondSession(c, "Failed to remove tag")(ctrl.editor.RemoveTag(c.Param("id"), c.Param("tag")))
}

// AddKeyword POST /api/v1/sessions/:id/keywords
func (ctrl *SessionController) AddKeyword(c *gin.Context) {
	var req ValueRequest
	if !bindJSON(c, &req) {
		return
	}
	respondSession(c, "Failed to add keyword")(ctrl.editor.AddKeyword(c.Param("id"), req.Value))
}

// RemoveKeyword DELETE /api/v1/sessions/:id/keywords/:keyword
func (ctrl *SessionController) RemoveKeyword(c *gin.Context) {
	respondSession(c, "Failed to remove keyword")(ctrl.editor.RemoveKeyword(c.Param("id"), c.Param("keyword")))
}

// SetVariantMode toggles between simple and variant pricing
// PUT /api/v1/sessions/:id/variant-mode
func (ctrl *SessionController) SetVariantMode(c *gin.Context) {
	var req VariantModeRequest
	if !bindJSON(c, &req) {
		return
	}

	view, discarded, err := ctrl.editor.SetVariantMode(c.Request.Context(), c.Param("id"), *req.Enabled)
	if err != nil {
		respondError(c, "Failed to change variant mode", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":   view,
		"discarded": discarded,
	})
}

// AddImages stages base product images
// POST /api/v1/sessions/:id/images
func (ctrl *SessionController) AddImages(c *gin.Context) {
	uploads, ok := readUploads(c, ctrl.maxUploadBytes)
	if !ok {
		return
	}
	view, warn, err := ctrl.editor.AddImages(c.Request.Context(), c.Param("id"), service.ImageOwner{Kind: service.OwnerProduct}, uploads)
	if err != nil {
		respondError(c, "Failed to add product images", err)
		return
	}
	c.JSON(http.StatusOK, imagesResponse(view, warn))
}

// RemoveImage DELETE /api/v1/sessions/:id/images/:index
func (ctrl *SessionController) RemoveImage(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	view, err := ctrl.editor.RemoveImage(c.Request.Context(), c.Param("id"), service.ImageOwner{Kind: service.OwnerProduct}, index)
	respondSession(c, "Failed to remove product image")(view, err)
}

// Submit creates or updates the product in the catalog
// POST /api/v1/sessions/:id/submit
func (ctrl *SessionController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	result, err := ctrl.editor.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to submit product", err)
		return
	}

	log.Info("Product submitted", map[string]interface{}{
		"session_id": result.SessionID,
		"mode":       result.Mode,
		"slug":       result.Slug,
	})

	c.JSON(http.StatusOK, gin.H{
		"result":  result,
		"message": result.Message,
	})
}
