package cryptography

import (
	"fmt"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
)

// ioError tags err as an I/O failure while keeping the underlying error reachable.
func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", cryptoalg.ErrIOFailure, op, err)
}
