package pubsub

import (
	"fmt"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
)

var (
	// ErrUnknownTopic is returned when subscribing for a topic that is never
	// published.
	ErrUnknownTopic = fmt.Errorf("%w: unknown topic", domain.ErrValidation)
	// ErrInvalidEndpoint ...
	ErrInvalidEndpoint = fmt.Errorf("%w: webhook endpoint must be a valid URI", domain.ErrValidation)
	// ErrSubscriptionNotFound ...
	ErrSubscriptionNotFound = fmt.Errorf("%w: webhook not found", domain.ErrNotFound)
	// ErrDisabled is returned by the no-op service when managing webhooks.
	ErrDisabled = fmt.Errorf("%w: webhooks are disabled", domain.ErrState)
)
