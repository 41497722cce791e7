package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("email.failed_to_send")
	ErrInvalidConfig     = errors.New("email.invalid_config")
	ErrInvalidParams     = errors.New("email.invalid_params")
)
