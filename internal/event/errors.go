package event

import "errors"

var (
	// ErrInvalidTopic reports an empty topic or one with empty segments.
	ErrInvalidTopic = errors.New("event: invalid topic")

	// ErrNilHandler reports a subscription without a handler.
	ErrNilHandler = errors.New("event: nil handler")

	// ErrSubscriptionNotFound reports an unknown or already removed
	// subscription.
	ErrSubscriptionNotFound = errors.New("event: subscription not found")
)
