package ai

import (
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// UnavailableError marks a transient failure from the generation backend
// (overload, 5xx, network). These are the only errors worth retrying.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("generation service unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// OverloadedError is what callers see after retries are exhausted or the
// failure is permanent. The original cause is kept for logging but the
// Error() text is safe to return to the frontend.
type OverloadedError struct {
	Err error
}

func (e *OverloadedError) Error() string {
	return "El servicio de IA está temporalmente sobrecargado. Intente de nuevo más tarde."
}

func (e *OverloadedError) Unwrap() error { return e.Err }

// mapError classifies a genai failure into the typed taxonomy instead of
// sniffing "503"/"UNAVAILABLE" out of message text.
func mapError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code >= 500 || apiErr.Code == 429 {
			return &UnavailableError{Err: err}
		}
		// 4xx other than rate limiting is a permanent failure.
		return err
	}
	// Network-level failures are treated as transient.
	return &UnavailableError{Err: err}
}

// isTransient reports whether a retry could help.
func isTransient(err error) bool {
	var unavail *UnavailableError
	return errors.As(err, &unavail)
}
