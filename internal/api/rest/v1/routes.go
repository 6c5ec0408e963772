package v1

import (
	"net/http"

	"github.com/Photic23/rsa-oaep/internal/domain/files"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	cryptoKeyGenerationService keys.CryptoKeyGenerationService,
	cryptoKeyDownloadService keys.CryptoKeyDownloadService,
	cryptoKeyMetadataService keys.CryptoKeyMetadataService,
	fileEncryptionService files.FileEncryptionService,
	fileDecryptionService files.FileDecryptionService,
	maxUploadSize int64) {

	v1 := r.Group(BasePath) // lookup in version file

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	})

	// Keys Routes
	keyHandler := NewKeyHandler(cryptoKeyGenerationService, cryptoKeyDownloadService, cryptoKeyMetadataService)
	v1.POST("/keys", keyHandler.GenerateKeys)
	v1.GET("/keys", keyHandler.ListMetadata)
	v1.GET("/keys/:id", keyHandler.GetMetadataByID)
	v1.GET("/keys/:id/file", keyHandler.DownloadByID)
	v1.DELETE("/keys/:id", keyHandler.DeleteByID)

	// Files Routes
	fileHandler := NewFileHandler(fileEncryptionService, fileDecryptionService, maxUploadSize)
	v1.POST("/files/encrypt", fileHandler.Encrypt)
	v1.POST("/files/decrypt", fileHandler.Decrypt)
}
