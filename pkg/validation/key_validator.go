package validation

import (
	apperrors "github.com/Pinank23/CODECRAFT-CS-02/internal/errors"
)

// Key range accepted by every transform.
const (
	MinKey = 1
	MaxKey = 255
)

// ValidateKey checks that a key lies in [1,255]. Callers validate before
// invoking the engine; the engine re-checks defensively.
func ValidateKey(key int) error {
	if key < MinKey || key > MaxKey {
		return apperrors.NewInvalidKeyError(key)
	}
	return nil
}

// KeyStrength maps a valid key to a 1..10 indicator for display purposes.
// Invalid keys score 0.
func KeyStrength(key int) int {
	if key < MinKey || key > MaxKey {
		return 0
	}
	strength := key/25 + 1
	if strength > 10 {
		strength = 10
	}
	return strength
}
