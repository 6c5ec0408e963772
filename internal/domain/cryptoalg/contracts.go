package cryptoalg

import "io"

// KeyEngine generates RSA key pairs and moves them in and out of key files.
type KeyEngine interface {
	// GenerateKeyPair derives a key pair whose primes are bits/2 long each.
	// Fails with ErrGenerationFailure for unsupported sizes or when e has no inverse modulo phi.
	GenerateKeyPair(bits int) (*KeyPair, error)

	// SaveKey writes the record as lowercase hexadecimal fields separated by newlines.
	SaveKey(record *KeyRecord, path string) error

	// LoadKey reads a key file written by SaveKey. kind states which exponent the file is expected to hold.
	LoadKey(path string, kind KeyKind) (*KeyRecord, error)
}

// OAEPProcessor pads and encrypts single message blocks, and reverses the transform.
type OAEPProcessor interface {
	// Encode pads message with OAEP under label and encrypts it to exactly publicKey.Size() bytes.
	Encode(message []byte, publicKey *PublicKey, label []byte) ([]byte, error)

	// Decode decrypts a block produced by Encode and strips the padding.
	Decode(block []byte, privateKey *PrivateKey, label []byte) ([]byte, error)
}

// FileProcessor frames whole files into sequences of OAEP blocks.
type FileProcessor interface {
	// EncryptFile encrypts inputPath into the container format at outputPath.
	EncryptFile(inputPath, outputPath, publicKeyPath string) error

	// DecryptFile restores the plaintext of a container. The returned path carries the recovered extension.
	DecryptFile(inputPath, outputPath, privateKeyPath string) (string, error)

	// EncryptStream writes the container for r to w. It returns the number of blocks written.
	EncryptStream(r io.Reader, w io.Writer, extension string, publicKey *PublicKey) (int, error)

	// DecryptStream writes the plaintext of the container in r to w and returns the recovered extension
	// and the number of blocks read.
	DecryptStream(r io.Reader, w io.Writer, privateKey *PrivateKey) (string, int, error)
}
