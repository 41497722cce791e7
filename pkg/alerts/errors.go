package alerts

import "errors"

var (
	// ErrNoRenderer is returned by Render and RenderAll when the manager has no renderer.
	ErrNoRenderer = errors.New("alerts.no_renderer")

	// ErrStoreUnavailable wraps backend failures reported by Store implementations.
	ErrStoreUnavailable = errors.New("alerts.store_unavailable")

	// ErrInvalidPayload indicates a stored alert list could not be decoded.
	ErrInvalidPayload = errors.New("alerts.invalid_payload")
)
