package keys

import (
	"errors"
	"fmt"
	"time"

	"github.com/Photic23/rsa-oaep/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// Key type constants
const (
	KeyTypePublic  = "public"
	KeyTypePrivate = "private"
)

// CryptoKeyMeta entity describes one half of a generated key pair
type CryptoKeyMeta struct {
	ID              string    `validate:"required,uuid4"`
	KeyPairID       string    `validate:"required,uuid4"`
	Algorithm       string    `validate:"required,oneof=RSA-OAEP"`
	KeySize         uint32    `validate:"keySizeValidation"`
	Type            string    `validate:"required,oneof=public private"`
	Fingerprint     string    `validate:"required,len=64,hexadecimal"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating CryptoKeyMeta struct
func (k *CryptoKeyMeta) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("keySizeValidation", validators.KeySizeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	return formatValidationError(validate.Struct(k))
}

// IsPublic reports whether the key is the encryption half of its pair.
func (k *CryptoKeyMeta) IsPublic() bool {
	return k.Type == KeyTypePublic
}

func formatValidationError(err error) error {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: %v", messages)
	}
	return fmt.Errorf("validation error: %w", err)
}
