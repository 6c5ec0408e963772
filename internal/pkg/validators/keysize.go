package validators

import (
	"reflect"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/go-playground/validator/v10"
)

// RSAKeySizeValidation accepts the modulus sizes supported by key generation (1024, 2048, 3072, 4096).
func RSAKeySizeValidation(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cryptoalg.IsSupportedKeySize(int(field.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cryptoalg.IsSupportedKeySize(int(field.Uint()))
	default:
		return false
	}
}

// KeySizeValidation validates the key size based on the sibling Algorithm field.
func KeySizeValidation(fl validator.FieldLevel) bool {
	algorithm := fl.Parent().FieldByName("Algorithm").String()

	switch algorithm {
	case cryptoalg.AlgorithmRSAOAEP:
		return RSAKeySizeValidation(fl)
	default:
		return false
	}
}
