package apperror

import (
	"errors"

	"github.com/rocketscienceinc/quixo-backend/internal/quixo"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrInvalidRequest = errors.New("invalid request")
)

const (
	KindNotFound       = "not_found"
	KindInvalidRequest = "invalid_request"
	KindInternal       = "internal"
)

// KindOf - returns the kind reported to clients for err.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrMatchNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	}

	if kind := quixo.KindOf(err); kind != "" {
		return kind
	}

	return KindInternal
}
