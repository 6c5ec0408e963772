package cryptoalg

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure returned by the engine matches exactly one of these with errors.Is.
var (
	ErrMaskTooLong             = errors.New("mask too long")
	ErrNoInverse               = errors.New("no modular inverse")
	ErrInvalidKeyFormat        = errors.New("invalid key format")
	ErrMessageTooLong          = errors.New("message too long")
	ErrInvalidCiphertextLength = errors.New("invalid ciphertext length")
	ErrInvalidPadding          = errors.New("invalid padding")
	ErrInvalidLabelHash        = errors.New("invalid label hash")
	ErrTruncatedBlock          = errors.New("truncated block")
	ErrGenerationFailure       = errors.New("key generation failure")
	ErrIOFailure               = errors.New("i/o failure")
	ErrInvalidContainerHeader  = errors.New("invalid container header")
)

// LengthError reports a size violation together with the offending and permitted sizes.
type LengthError struct {
	Err    error
	Field  string
	Limit  int
	Actual int
	AtMost bool
}

func (e *LengthError) Error() string {
	if e.AtMost {
		return fmt.Sprintf("%v: %s is %d bytes, at most %d allowed", e.Err, e.Field, e.Actual, e.Limit)
	}
	return fmt.Sprintf("%v: %s is %d bytes, expected %d", e.Err, e.Field, e.Actual, e.Limit)
}

func (e *LengthError) Unwrap() error {
	return e.Err
}

// KeyFormatError describes why a key file could not be parsed. Line is 1-based, 0 refers to the whole file.
type KeyFormatError struct {
	Line   int
	Reason string
}

func (e *KeyFormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%v: %s", ErrInvalidKeyFormat, e.Reason)
	}
	return fmt.Sprintf("%v: line %d: %s", ErrInvalidKeyFormat, e.Line, e.Reason)
}

func (e *KeyFormatError) Unwrap() error {
	return ErrInvalidKeyFormat
}
