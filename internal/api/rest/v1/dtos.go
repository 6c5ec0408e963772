package v1

import (
	"fmt"
	"time"

	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// GenerateKeyRequest is the body of a key pair generation. A missing key size selects the configured default.
type GenerateKeyRequest struct {
	KeySize uint32 `json:"key_size" validate:"omitempty,rsaKeySize"`
}

// Validate for validating GenerateKeyRequest struct
func (r *GenerateKeyRequest) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("rsaKeySize", validators.RSAKeySizeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("key_size must be one of 1024, 2048, 3072 or 4096: %w", err)
	}
	return nil
}

// CryptoKeyMetaResponse represents the response structure for cryptographic key metadata
type CryptoKeyMetaResponse struct {
	ID              string    `json:"id"`
	KeyPairID       string    `json:"key_pair_id"`
	Algorithm       string    `json:"algorithm"`
	KeySize         uint32    `json:"key_size"`
	Type            string    `json:"type"`
	Fingerprint     string    `json:"fingerprint"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

func newCryptoKeyMetaResponse(meta *keys.CryptoKeyMeta) CryptoKeyMetaResponse {
	return CryptoKeyMetaResponse{
		ID:              meta.ID,
		KeyPairID:       meta.KeyPairID,
		Algorithm:       meta.Algorithm,
		KeySize:         meta.KeySize,
		Type:            meta.Type,
		Fingerprint:     meta.Fingerprint,
		DateTimeCreated: meta.DateTimeCreated,
	}
}

func newCryptoKeyMetaListResponse(metas []*keys.CryptoKeyMeta) []CryptoKeyMetaResponse {
	listResponse := []CryptoKeyMetaResponse{}
	for _, meta := range metas {
		listResponse = append(listResponse, newCryptoKeyMetaResponse(meta))
	}
	return listResponse
}

// ErrorResponse represents an error message
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse represents an informational message
type InfoResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports the liveness of the service
type HealthResponse struct {
	Status string `json:"status"`
}
