package keys

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// CryptoKeyQuery holds the filters, sorting and paging of a key metadata listing
type CryptoKeyQuery struct {
	Algorithm       string `validate:"omitempty,oneof=RSA-OAEP"`
	Type            string `validate:"omitempty,oneof=public private"`
	KeyPairID       string `validate:"omitempty,uuid4"`
	DateTimeCreated time.Time

	Limit  int `validate:"omitempty,gt=0"`
	Offset int `validate:"omitempty,gte=0"`

	SortBy    string `validate:"omitempty,oneof=id key_pair_id type key_size date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewCryptoKeyQuery creates a CryptoKeyQuery with no filters
func NewCryptoKeyQuery() *CryptoKeyQuery {
	return &CryptoKeyQuery{}
}

// Validate for validating CryptoKeyQuery struct
func (q *CryptoKeyQuery) Validate() error {
	return formatValidationError(validator.New().Struct(q))
}
