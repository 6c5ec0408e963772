package v1

import (
	"errors"
	"net/http"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/gin-gonic/gin"
)

// unprocessable lists the failures caused by the submitted content rather than by the service
var unprocessable = []error{
	keys.ErrKeyTypeMismatch,
	cryptoalg.ErrMessageTooLong,
	cryptoalg.ErrInvalidCiphertextLength,
	cryptoalg.ErrInvalidPadding,
	cryptoalg.ErrInvalidLabelHash,
	cryptoalg.ErrTruncatedBlock,
	cryptoalg.ErrInvalidContainerHeader,
	cryptoalg.ErrInvalidKeyFormat,
	cryptoalg.ErrGenerationFailure,
}

func statusForError(err error) int {
	if errors.Is(err, keys.ErrCryptoKeyNotFound) {
		return http.StatusNotFound
	}
	for _, target := range unprocessable {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

func abortWithError(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}
