package config

import (
	"fmt"

	"github.com/Photic23/rsa-oaep/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// CryptoSettings holds the parameters of key generation and file framing
type CryptoSettings struct {
	DefaultKeySize        int    `mapstructure:"default_key_size" validate:"rsaKeySize"`
	Label                 string `mapstructure:"label"`
	ExportPrimes          bool   `mapstructure:"export_primes"`
	MaxGenerationAttempts int    `mapstructure:"max_generation_attempts" validate:"min=1,max=10"`
}

// Validate checks that all fields in CryptoSettings are valid
func (s *CryptoSettings) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("rsaKeySize", validators.RSAKeySizeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for CryptoSettings: %w", err)
	}
	return nil
}

// LabelBytes returns the OAEP label as bytes.
func (s *CryptoSettings) LabelBytes() []byte {
	return []byte(s.Label)
}
