//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockGenerationService := new(MockCryptoKeyGenerationService)
	mockDownloadService := new(MockCryptoKeyDownloadService)
	mockMetadataService := new(MockCryptoKeyMetadataService)

	r := gin.New()

	mockGenerationService.On("Generate", mock.Anything, mock.Anything).Return(nil, nil)
	mockMetadataService.On("List", mock.Anything, mock.Anything).Return(nil, nil)

	SetupRoutes(r, mockGenerationService, mockDownloadService, mockMetadataService,
		new(MockFileEncryptionService), new(MockFileDecryptionService), 1024)

	// Verify routes are registered by testing they respond (even with errors)
	tests := []struct {
		method string
		url    string
	}{
		{"GET", BasePath + "/health"},
		{"POST", BasePath + "/keys"},
		{"GET", BasePath + "/keys"},
		{"POST", BasePath + "/files/encrypt"},
		{"POST", BasePath + "/files/decrypt"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Just verify route exists (status != 404)
			assert.NotEqual(t, http.StatusNotFound, w.Code, "Route should be registered")
		})
	}
}

func TestSetupRoutes_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, new(MockCryptoKeyGenerationService), new(MockCryptoKeyDownloadService), new(MockCryptoKeyMetadataService),
		new(MockFileEncryptionService), new(MockFileDecryptionService), 1024)

	req, _ := http.NewRequest("GET", BasePath+"/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
