package controller

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/service"
	apperrors "github.com/ikkim/catalog-console/internal/errors"
	"github.com/ikkim/catalog-console/internal/middleware"
)

// respondError logs and writes the reply a service error maps to
func respondError(c *gin.Context, msg string, err error) {
	log := middleware.GetLoggerFromContext(c)
	info := apperrors.ParseError(err)
	fields := map[string]interface{}{
		"status": info.Status,
		"code":   info.Code,
	}
	if info.Status >= http.StatusInternalServerError || info.Status == http.StatusBadGateway {
		log.Error(msg, err, fields)
	} else {
		fields["error"] = err.Error()
		log.Warn(msg, fields)
	}
	apperrors.RespondWithDomainError(c, err)
}

// bindJSON binds the request body or replies 400
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, map[string]string{"body": err.Error()})
		return false
	}
	return true
}

func indexParam(c *gin.Context) (int, bool) {
	raw := c.Param("index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid image index")
		return 0, false
	}
	return index, true
}

// readUploads reads the multipart "files" parts. Each file is read up to one
// byte past maxBytes so oversized files are still detected downstream.
func readUploads(c *gin.Context, maxBytes int64) ([]service.Upload, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		apperrors.BadRequest(c, apperrors.UploadNoFile, "Please select at least one image.")
		return nil, false
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		apperrors.BadRequest(c, apperrors.UploadNoFile, "Please select at least one image.")
		return nil, false
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respondError(c, "Failed to open uploaded file", fmt.Errorf("open %s: %w", fh.Filename, err))
			return nil, false
		}
		var r io.Reader = f
		if maxBytes > 0 {
			r = io.LimitReader(f, maxBytes+1)
		}
		data, err := io.ReadAll(r)
		f.Close()
		if err != nil {
			respondError(c, "Failed to read uploaded file", fmt.Errorf("read %s: %w", fh.Filename, err))
			return nil, false
		}
		uploads = append(uploads, service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, true
}

type warningResponse struct {
	Message   string `json:"message"`
	Remaining int    `json:"remaining"`
	Rejected  int    `json:"rejected"`
}

func imagesResponse(view *service.SessionView, warn *draft.QuotaWarning) gin.H {
	resp := gin.H{"session": view}
	if warn != nil {
		resp["warning"] = warningResponse{
			Message:   warn.Message(),
			Remaining: warn.Remaining,
			Rejected:  warn.Rejected,
		}
	}
	return resp
}

// respondSession replies with the session view, or with the mapped error
func respondSession(c *gin.Context, msg string) func(*service.SessionView, error) {
	return func(view *service.SessionView, err error) {
		if err != nil {
			respondError(c, msg, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"session": view,
		})
	}
}
