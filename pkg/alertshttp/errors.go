package alertshttp

import "errors"

var (
	ErrNoScope          = errors.New("alertshttp.no_scope")
	ErrNoManager        = errors.New("alertshttp.no_manager")
	ErrInvalidRequest   = errors.New("alertshttp.invalid_request")
	ErrAlertNotFound    = errors.New("alertshttp.alert_not_found")
	ErrStreamNotEnabled = errors.New("alertshttp.stream_not_enabled")
)
