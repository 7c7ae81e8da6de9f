package errors

// Error codes returned in ErrorResponse.Error.
// Format: CATEGORY_SPECIFIC_DETAIL. The console front end maps on these.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"
	ValidationVariantMode  = "VALIDATION_VARIANT_MODE"
	ValidationImages       = "VALIDATION_IMAGES"
	ValidationPrice        = "VALIDATION_PRICE"
	ValidationStock        = "VALIDATION_STOCK"
	ValidationTags         = "VALIDATION_TAGS"
	ValidationValuePayload = "VALIDATION_VALUE_PAYLOAD"

	// ==================== Session (SESSION_) ====================
	SessionNotFound         = "SESSION_NOT_FOUND"
	SessionSubmitInProgress = "SESSION_SUBMIT_IN_PROGRESS"

	// ==================== Draft (DRAFT_) ====================
	DraftVariantNotFound = "DRAFT_VARIANT_NOT_FOUND"
	DraftImageIndex      = "DRAFT_IMAGE_INDEX"

	// ==================== Attributes (ATTRIBUTE_) ====================
	AttributeTypeNotFound  = "ATTRIBUTE_TYPE_NOT_FOUND"
	AttributeValueNotFound = "ATTRIBUTE_VALUE_NOT_FOUND"
	AttributeValueMissing  = "ATTRIBUTE_VALUE_MISSING"

	// ==================== Catalog API (REMOTE_) ====================
	RemoteNetwork      = "REMOTE_NETWORK"
	RemoteUnauthorized = "REMOTE_UNAUTHORIZED"
	RemoteInvalid      = "REMOTE_INVALID_REQUEST"
	RemoteNotFound     = "REMOTE_NOT_FOUND"
	RemoteConflict     = "REMOTE_CONFLICT"
	RemoteServer       = "REMOTE_SERVER"
	RemoteMalformed    = "REMOTE_MALFORMED_RESPONSE"

	// ==================== Uploads (UPLOAD_) ====================
	UploadNoFile      = "UPLOAD_NO_FILE"
	UploadFileTooBig  = "UPLOAD_FILE_TOO_BIG"
	UploadInvalidType = "UPLOAD_INVALID_TYPE"
	UploadFailed      = "UPLOAD_FAILED"
	PreviewNotFound   = "PREVIEW_NOT_FOUND"

	// ==================== Submission log (SUBMISSION_) ====================
	SubmissionNotFound    = "SUBMISSION_NOT_FOUND"
	SubmissionLogDisabled = "SUBMISSION_LOG_DISABLED"

	// ==================== Server (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalDatabase    = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API_ERROR"
)
