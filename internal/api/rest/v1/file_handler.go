package v1

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Photic23/rsa-oaep/internal/domain/files"

	"github.com/gin-gonic/gin"
)

// FileHandler defines the interface for encrypting and decrypting uploaded files
type FileHandler interface {
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
}

type fileHandler struct {
	fileEncryptionService files.FileEncryptionService
	fileDecryptionService files.FileDecryptionService
	maxUploadSize         int64
}

// NewFileHandler creates a new FileHandler. Uploads larger than maxUploadSize bytes are rejected.
func NewFileHandler(fileEncryptionService files.FileEncryptionService, fileDecryptionService files.FileDecryptionService, maxUploadSize int64) FileHandler {
	return &fileHandler{
		fileEncryptionService: fileEncryptionService,
		fileDecryptionService: fileDecryptionService,
		maxUploadSize:         maxUploadSize,
	}
}

// Encrypt handles the POST request to encrypt an uploaded file
// @Summary Encrypt a file with a registered public key
// @Description Frame the uploaded file into RSA-OAEP blocks and return the container.
// @Tags File
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "Plaintext file"
// @Param key_id formData string true "Public key ID"
// @Success 200 {file} file "Encrypted container"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /files/encrypt [post]
func (handler *fileHandler) Encrypt(ctx *gin.Context) {
	upload, keyID, ok := handler.readUpload(ctx)
	if !ok {
		return
	}

	var container bytes.Buffer
	if _, err := handler.fileEncryptionService.Encrypt(ctx.Request.Context(), bytes.NewReader(upload.content), &container, upload.name, keyID); err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("encryption failed: %v", err))
		return
	}

	ctx.Header("Content-Disposition", attachment(upload.name+".enc"))
	ctx.Data(http.StatusOK, "application/octet-stream", container.Bytes())
}

// Decrypt handles the POST request to decrypt an uploaded container
// @Summary Decrypt a container with a registered private key
// @Description Restore the plaintext of an uploaded container. The returned file name carries the recorded extension.
// @Tags File
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "Encrypted container"
// @Param key_id formData string true "Private key ID"
// @Success 200 {file} file "Plaintext"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /files/decrypt [post]
func (handler *fileHandler) Decrypt(ctx *gin.Context) {
	upload, keyID, ok := handler.readUpload(ctx)
	if !ok {
		return
	}

	// plaintext is only sent once every block decoded
	var plaintext bytes.Buffer
	ext, err := handler.fileDecryptionService.Decrypt(ctx.Request.Context(), bytes.NewReader(upload.content), &plaintext, keyID)
	if err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("decryption failed: %v", err))
		return
	}

	ctx.Header("Content-Disposition", attachment("decrypted"+ext))
	ctx.Data(http.StatusOK, "application/octet-stream", plaintext.Bytes())
}

type uploadedFile struct {
	name    string
	content []byte
}

func (handler *fileHandler) readUpload(ctx *gin.Context) (*uploadedFile, string, bool) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, handler.maxUploadSize+1<<20)

	keyID := strings.TrimSpace(ctx.PostForm("key_id"))
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid form data: %v", err))
		return nil, "", false
	}
	if keyID == "" {
		abortWithError(ctx, http.StatusBadRequest, "key_id is required")
		return nil, "", false
	}
	if fileHeader.Size > handler.maxUploadSize {
		abortWithError(ctx, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", handler.maxUploadSize))
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("failed to open uploaded file: %v", err))
		return nil, "", false
	}
	defer file.Close()

	var content bytes.Buffer
	if _, err := content.ReadFrom(file); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("failed to read uploaded file: %v", err))
		return nil, "", false
	}

	return &uploadedFile{name: filepath.Base(fileHeader.Filename), content: content.Bytes()}, keyID, true
}

// attachment builds a Content-Disposition value for name, quoting or encoding it as needed.
func attachment(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}
