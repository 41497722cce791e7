package relay

import "errors"

var (
	// ErrNoRecipient is returned by the email relay when a scope has no address.
	ErrNoRecipient = errors.New("relay.no_recipient")

	// ErrPublishFailed wraps message bus publish failures.
	ErrPublishFailed = errors.New("relay.publish_failed")
)
