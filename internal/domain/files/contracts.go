// Package files defines the application contracts for encrypting and decrypting files with registered keys.
package files

import (
	"context"
	"io"
)

// FileEncryptionService encrypts plaintext streams into the container format.
type FileEncryptionService interface {
	// Encrypt frames r into w using the public key registered under keyID. fileName supplies the
	// extension stored in the container header. It returns the number of blocks written.
	Encrypt(ctx context.Context, r io.Reader, w io.Writer, fileName, keyID string) (int, error)
}

// FileDecryptionService restores plaintext from containers.
type FileDecryptionService interface {
	// Decrypt writes the plaintext of the container in r to w using the private key registered under
	// keyID and returns the recovered extension.
	Decrypt(ctx context.Context, r io.Reader, w io.Writer, keyID string) (string, error)
}
