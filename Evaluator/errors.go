package Evaluator

import (
	"errors"
	"fmt"
)

// ErrProviderNotConfigured is returned before any network call when the
// Groq credential is absent. The message is shown to the user as-is.
var ErrProviderNotConfigured = errors.New("Groq API key missing. Add GROQ_API_KEY to .env")

// ErrUnlockPending marks the paid-but-still-locked state: the payment row
// exists but the visibility flag could not be flipped. The unlock can be
// retried; the reconciler also repairs it.
var ErrUnlockPending = errors.New("payment received, unlock pending. Please retry")

// ProviderError wraps a failure of the completion provider.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("Groq request failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StorageError wraps a persistence failure.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("DB Error → %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
