package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/service"
	"github.com/ikkim/catalog-console/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        &draft.ValidationError{Field: "price", Message: "Price is required!"},
			wantStatus: http.StatusBadRequest,
			wantCode:   ValidationPrice,
			wantMsg:    "Price is required!",
		},
		{
			name:       "wrapped validation",
			err:        fmt.Errorf("hydrate: %w", &draft.ValidationError{Field: "stock", Message: "stock must be a whole number"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   ValidationStock,
			wantMsg:    "stock must be a whole number",
		},
		{
			name:       "unknown session",
			err:        service.ErrSessionNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   SessionNotFound,
		},
		{
			name:       "submit in flight",
			err:        service.ErrSubmitInProgress,
			wantStatus: http.StatusConflict,
			wantCode:   SessionSubmitInProgress,
		},
		{
			name:       "variant not found",
			err:        draft.ErrVariantNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   DraftVariantNotFound,
		},
		{
			name:       "catalog 404",
			err:        &catalog.RemoteError{Op: "get product", Status: 404, Message: "Product not found", Err: catalog.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   RemoteNotFound,
			wantMsg:    "Product not found",
		},
		{
			name:       "catalog conflict",
			err:        &catalog.RemoteError{Op: "create product", Status: 409, Message: "slug taken", Err: catalog.ErrConflict},
			wantStatus: http.StatusBadGateway,
			wantCode:   RemoteConflict,
			wantMsg:    "slug taken",
		},
		{
			name:       "catalog unreachable",
			err:        &catalog.RemoteError{Op: "list types", Message: "dial tcp: connection refused", Err: catalog.ErrNetwork},
			wantStatus: http.StatusBadGateway,
			wantCode:   RemoteNetwork,
			wantMsg:    "Could not reach the catalog. Please try again.",
		},
		{
			name:       "catalog server error",
			err:        &catalog.RemoteError{Op: "list types", Status: 500, Err: catalog.ErrServer},
			wantStatus: http.StatusBadGateway,
			wantCode:   RemoteServer,
			wantMsg:    "The catalog rejected the request.",
		},
		{
			name:       "unexpected",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err)
			assert.Equal(t, tt.wantStatus, info.Status)
			assert.Equal(t, tt.wantCode, info.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, info.Message)
			}
			assert.NotEmpty(t, info.Message)
		})
	}
}

func TestRespondWithDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithDomainError(c, &draft.ValidationError{Field: "name", Message: "Product name is required!"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrorResponse{Error: ValidationRequired, Message: "Product name is required!", Field: "name"}, resp)
}
