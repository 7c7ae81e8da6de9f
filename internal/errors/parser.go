package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/repository"
	"github.com/ikkim/catalog-console/internal/app/service"
	"github.com/ikkim/catalog-console/internal/storage"
	"github.com/ikkim/catalog-console/pkg/catalog"
)

// ErrorInfo is the reply an error maps to
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
	Field   string
}

// ParseError maps a domain error onto a status, code and operator message.
// Internal details never reach the message of a 5xx reply.
func ParseError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalServerError, Message: "Something went wrong. Please try again."}
	}

	// 1. Local validation
	var verr *draft.ValidationError
	if errors.As(err, &verr) {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    validationCode(verr),
			Message: verr.Message,
			Field:   verr.Field,
		}
	}

	// 2. Session and draft addressing
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: SessionNotFound, Message: "Editing session not found"}
	case errors.Is(err, service.ErrSubmitInProgress):
		return ErrorInfo{Status: http.StatusConflict, Code: SessionSubmitInProgress, Message: "This product is already being saved"}
	case errors.Is(err, draft.ErrVariantNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: DraftVariantNotFound, Message: "Variant not found"}
	case errors.Is(err, draft.ErrImageIndex):
		return ErrorInfo{Status: http.StatusNotFound, Code: DraftImageIndex, Message: "Image not found"}
	case errors.Is(err, service.ErrUnknownOwner):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: "Unknown image owner"}
	case errors.Is(err, service.ErrTypeNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: AttributeTypeNotFound, Message: "Variant type not found"}
	case errors.Is(err, service.ErrValueNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: AttributeValueNotFound, Message: "Variant value not found"}
	case errors.Is(err, service.ErrCreatedValueMissing):
		return ErrorInfo{Status: http.StatusBadGateway, Code: AttributeValueMissing, Message: "The new value was not returned by the catalog"}
	case errors.Is(err, storage.ErrPreviewNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: PreviewNotFound, Message: "Preview not found"}
	case errors.Is(err, repository.ErrSubmissionNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: SubmissionNotFound, Message: "Submission not found"}
	case errors.Is(err, service.ErrSubmissionLogDisabled):
		return ErrorInfo{Status: http.StatusNotFound, Code: SubmissionLogDisabled, Message: "Submission log is not enabled"}
	}

	// 3. Catalog API
	var remote *catalog.RemoteError
	if errors.As(err, &remote) {
		return parseRemoteError(remote)
	}

	return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalServerError, Message: "Something went wrong. Please try again."}
}

// RespondWithDomainError writes the reply ParseError maps err onto
func RespondWithDomainError(c *gin.Context, err error) {
	info := ParseError(err)
	c.JSON(info.Status, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
		Field:   info.Field,
	})
}

func parseRemoteError(remote *catalog.RemoteError) ErrorInfo {
	info := ErrorInfo{Status: http.StatusBadGateway, Message: remote.Message}
	switch {
	case errors.Is(remote, catalog.ErrNotFound):
		info.Status, info.Code = http.StatusNotFound, RemoteNotFound
	case errors.Is(remote, catalog.ErrNetwork):
		info.Code, info.Message = RemoteNetwork, "Could not reach the catalog. Please try again."
	case errors.Is(remote, catalog.ErrUnauthorized):
		info.Code = RemoteUnauthorized
	case errors.Is(remote, catalog.ErrInvalidRequest):
		info.Code = RemoteInvalid
	case errors.Is(remote, catalog.ErrConflict):
		info.Code = RemoteConflict
	case errors.Is(remote, catalog.ErrMalformedResponse):
		info.Code, info.Message = RemoteMalformed, "The catalog sent an unexpected response."
	default:
		info.Code = RemoteServer
	}
	if info.Message == "" {
		info.Message = "The catalog rejected the request."
	}
	return info
}

func validationCode(verr *draft.ValidationError) string {
	switch verr.Field {
	case "variant_mode":
		return ValidationVariantMode
	case "images", "files":
		return ValidationImages
	case "price", "offerPrice":
		return ValidationPrice
	case "stock":
		return ValidationStock
	case "payload", "color_code", "unit", "label":
		return ValidationValuePayload
	case "name", "category", "type", "value":
		return ValidationRequired
	case "tags", "keywords":
		return ValidationTags
	default:
		return ValidationInvalidInput
	}
}
