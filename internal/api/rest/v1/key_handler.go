package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Photic23/rsa-oaep/internal/domain/keys"

	"github.com/gin-gonic/gin"
)

// KeyHandler defines the interface for handling key-related operations
type KeyHandler interface {
	GenerateKeys(ctx *gin.Context)
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// keyHandler struct holds the services
type keyHandler struct {
	cryptoKeyGenerationService keys.CryptoKeyGenerationService
	cryptoKeyDownloadService   keys.CryptoKeyDownloadService
	cryptoKeyMetadataService   keys.CryptoKeyMetadataService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(cryptoKeyGenerationService keys.CryptoKeyGenerationService, cryptoKeyDownloadService keys.CryptoKeyDownloadService, cryptoKeyMetadataService keys.CryptoKeyMetadataService) KeyHandler {
	return &keyHandler{
		cryptoKeyGenerationService: cryptoKeyGenerationService,
		cryptoKeyDownloadService:   cryptoKeyDownloadService,
		cryptoKeyMetadataService:   cryptoKeyMetadataService,
	}
}

// GenerateKeys handles the POST request to generate and register an RSA key pair
// @Summary Generate an RSA-OAEP key pair
// @Description Generate a key pair of the requested modulus size and store both key files.
// @Tags Key
// @Accept json
// @Produce json
// @Param requestBody body GenerateKeyRequest false "Key size"
// @Success 201 {array} CryptoKeyMetaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /keys [post]
func (handler *keyHandler) GenerateKeys(ctx *gin.Context) {
	var request GenerateKeyRequest

	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid key data: %v", err))
			return
		}
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	cryptoKeyMetas, err := handler.cryptoKeyGenerationService.Generate(ctx.Request.Context(), request.KeySize)
	if err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("error generating keys: %v", err))
		return
	}

	ctx.JSON(http.StatusCreated, newCryptoKeyMetaListResponse(cryptoKeyMetas))
}

// ListMetadata handles the GET request to list cryptographic key metadata with optional query parameters
// @Summary List cryptographic key metadata based on query parameters
// @Description Fetch a list of key metadata filtered by algorithm, type, key pair and creation date, with pagination and sorting options.
// @Tags Key
// @Accept json
// @Produce json
// @Param algorithm query string false "Cryptographic Algorithm"
// @Param type query string false "Key Type"
// @Param keyPairId query string false "Key Pair ID"
// @Param dateTimeCreated query string false "Key Creation Date (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} CryptoKeyMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [get]
func (handler *keyHandler) ListMetadata(ctx *gin.Context) {
	query := keys.NewCryptoKeyQuery()

	query.Algorithm = ctx.Query("algorithm")
	query.Type = ctx.Query("type")
	query.KeyPairID = ctx.Query("keyPairId")
	query.SortBy = ctx.Query("sortBy")
	query.SortOrder = ctx.Query("sortOrder")

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid dateTimeCreated: %v", err))
			return
		}
		query.DateTimeCreated = parsedTime
	}

	var err error
	if query.Limit, err = intQuery(ctx, "limit"); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	if query.Offset, err = intQuery(ctx, "offset"); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := query.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	cryptoKeyMetas, err := handler.cryptoKeyMetadataService.List(ctx.Request.Context(), query)
	if err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("list query failed: %v", err))
		return
	}

	ctx.JSON(http.StatusOK, newCryptoKeyMetaListResponse(cryptoKeyMetas))
}

// GetMetadataByID handles the GET request to retrieve crypto key metadata by ID
// @Summary Retrieve crypto key metadata by ID
// @Tags Key
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} CryptoKeyMetaResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [get]
func (handler *keyHandler) GetMetadataByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	cryptoKeyMeta, err := handler.cryptoKeyMetadataService.GetByID(ctx.Request.Context(), keyID)
	if err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("key with id %s not found", keyID))
		return
	}

	ctx.JSON(http.StatusOK, newCryptoKeyMetaResponse(cryptoKeyMeta))
}

// DownloadByID handles GET request to download a public key file by ID
// @Summary Download a public key file by ID
// @Description Download the hexadecimal key file of a public key. Private keys are never served.
// @Tags Key
// @Produce text/plain
// @Param id path string true "Key ID"
// @Success 200 {file} file "Key file content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id}/file [get]
func (handler *keyHandler) DownloadByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	keyMeta, err := handler.cryptoKeyMetadataService.GetByID(ctx.Request.Context(), keyID)
	if err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("key with id %s not found", keyID))
		return
	}

	if !keyMeta.IsPublic() {
		abortWithError(ctx, http.StatusForbidden, "download forbidden for private keys")
		return
	}

	content, err := handler.cryptoKeyDownloadService.DownloadByID(ctx.Request.Context(), keyID)
	if err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("could not download key with id %s: %v", keyID, err))
		return
	}

	filename := fmt.Sprintf("%s-public-key.txt", keyID)
	ctx.Header("Content-Disposition", attachment(filename))
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", content)
}

// DeleteByID handles the DELETE request to delete a key by ID
// @Summary Delete a cryptographic key by ID
// @Description Delete a key file and its metadata by ID.
// @Tags Key
// @Param id path string true "Key ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [delete]
func (handler *keyHandler) DeleteByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	if err := handler.cryptoKeyMetadataService.DeleteByID(ctx.Request.Context(), keyID); err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("error deleting key with id %s: %v", keyID, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func intQuery(ctx *gin.Context, name string) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return value, nil
}
