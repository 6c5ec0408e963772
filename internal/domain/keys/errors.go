package keys

import "errors"

// ErrCryptoKeyNotFound is returned when no key metadata exists for an ID.
var ErrCryptoKeyNotFound = errors.New("cryptographic key not found")

// ErrKeyTypeMismatch is returned when a key of the wrong type is used for an operation.
var ErrKeyTypeMismatch = errors.New("key type does not match operation")
