package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/internal/app/repository"
	"github.com/ikkim/catalog-console/internal/app/service"
	apperrors "github.com/ikkim/catalog-console/internal/errors"
)

// CatalogController serves dropdown data and the submission log
type CatalogController struct {
	lookups     service.LookupService
	submissions service.SubmissionService
}

func NewCatalogController(lookups service.LookupService, submissions service.SubmissionService) *CatalogController {
	return &CatalogController{
		lookups:     lookups,
		submissions: submissions,
	}
}

// Brands GET /api/v1/catalog/brands
func (ctrl *CatalogController) Brands(c *gin.Context) {
	brands, err := ctrl.lookups.Brands(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch brands", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"brands": brands,
		"count":  len(brands),
	})
}

// Subcategories GET /api/v1/catalog/subcategories
func (ctrl *CatalogController) Subcategories(c *gin.Context) {
	subs, err := ctrl.lookups.Subcategories(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch subcategories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subcategories": subs,
		"count":         len(subs),
	})
}

// ListSubmissions GET /api/v1/submissions?session_id=&slug=&status=&limit=&offset=
func (ctrl *CatalogController) ListSubmissions(c *gin.Context) {
	filter := repository.SubmissionFilter{
		SessionID:   c.Query("session_id"),
		ProductSlug: c.Query("slug"),
	}
	if status := c.Query("status"); status != "" {
		s := model.SubmissionStatus(status)
		if s != model.SubmissionSucceeded && s != model.SubmissionFailed {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid status filter")
			return
		}
		filter.Status = &s
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filter.Offset = offset
	}

	records, err := ctrl.submissions.List(filter)
	if err != nil {
		respondError(c, "Failed to fetch submissions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"submissions": records,
		"count":       len(records),
	})
}

// GetSubmission GET /api/v1/submissions/:submissionId
func (ctrl *CatalogController) GetSubmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("submissionId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid submission ID")
		return
	}
	record, err := ctrl.submissions.Get(uint(id))
	if err != nil {
		respondError(c, "Failed to fetch submission", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"submission": record,
	})
}

// SubmissionStats GET /api/v1/submissions/stats
func (ctrl *CatalogController) SubmissionStats(c *gin.Context) {
	counts, err := ctrl.submissions.Counts()
	if err != nil {
		respondError(c, "Failed to count submissions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats": counts,
	})
}
