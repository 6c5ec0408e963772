package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
)

// GenerateKeyPair derives a key pair through keyEngine, retrying while the sampled primes leave e without
// an inverse modulo phi. At most maxAttempts attempts are made (at least one). onAttempt, when set, is
// called before every attempt. Any other engine failure is returned immediately.
func GenerateKeyPair(ctx context.Context, keyEngine cryptoalg.KeyEngine, bits, maxAttempts int, log logger.Logger, onAttempt func(attempt int)) (*cryptoalg.KeyPair, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if onAttempt != nil {
			onAttempt(attempt)
		}

		keyPair, err := keyEngine.GenerateKeyPair(bits)
		if err == nil {
			return keyPair, nil
		}
		if !errors.Is(err, cryptoalg.ErrNoInverse) {
			return nil, err
		}

		lastErr = err
		log.Warn("Key generation attempt ", attempt, " failed: ", err)
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", maxAttempts, lastErr)
}
