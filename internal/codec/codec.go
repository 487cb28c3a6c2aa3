// Package codec wraps the YAML, TOML and JSON libraries behind one set of
// size-limited, error-prefixed functions so callers never import them directly.
package codec

import (
	"errors"
	"fmt"
)

// MaxInputSize limits config input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

// MaxDocumentSize limits block input (JSON, YAML, Markdown) (default 32MB).
var MaxDocumentSize = 32 << 20

var (
	ErrNilData        = errors.New("codec: nil or empty data")
	ErrNilDestination = errors.New("codec: nil destination pointer")
	ErrInputTooLarge  = errors.New("codec: input exceeds maximum size")
	ErrUnknownFields  = errors.New("codec: unknown fields")
	ErrTrailingData   = errors.New("codec: trailing data after JSON value")
)

func validateInput(data []byte, v any, limit int) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), limit)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// CheckDocumentSize reports ErrInputTooLarge when data exceeds MaxDocumentSize.
func CheckDocumentSize(data []byte) error {
	if len(data) > MaxDocumentSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxDocumentSize)
	}
	return nil
}
