package cryptoalg

// PublicExponent is the fixed RSA public exponent e.
const PublicExponent = 65537

// HashSize is the output length in bytes of the hash function driving OAEP and MGF1.
const HashSize = 32

// MillerRabinRounds is the number of witness rounds used when testing prime candidates.
const MillerRabinRounds = 40

// OAEPOverhead is the number of bytes OAEP adds on top of the message (two hash lengths plus two marker bytes).
const OAEPOverhead = 2*HashSize + 2

// Container layout
const (
	// ExtensionFieldSize is the fixed width of the space-padded extension field in the container header.
	ExtensionFieldSize = 10
	// HeaderSize is the length byte plus the extension field.
	HeaderSize = 1 + ExtensionFieldSize
	// LengthPrefixSize is the size of the big-endian length prefix preceding each ciphertext block.
	LengthPrefixSize = 4
)

// DefaultKeySize is the modulus size used when none is requested.
const DefaultKeySize = 2048

// SupportedKeySizes lists the modulus sizes accepted by key generation.
var SupportedKeySizes = []int{1024, 2048, 3072, 4096}

// IsSupportedKeySize reports whether bits is one of SupportedKeySizes.
func IsSupportedKeySize(bits int) bool {
	for _, s := range SupportedKeySizes {
		if s == bits {
			return true
		}
	}
	return false
}

// Algorithm name recorded in key metadata.
const AlgorithmRSAOAEP = "RSA-OAEP"
