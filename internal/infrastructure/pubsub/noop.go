package pubsub

import "github.com/colosseum-network/colosseumd/internal/core/ports"

type noopService struct{}

// NewNoopService returns a PubSub that drops every published message and
// rejects subscriptions.
func NewNoopService() ports.PubSub {
	return noopService{}
}

func (noopService) Subscribe(_, _, _ string) (string, error) {
	return "", ErrDisabled
}

func (noopService) Unsubscribe(_ string) error {
	return ErrDisabled
}

func (noopService) ListSubscriptionsForTopic(_ string) []ports.Subscription {
	return nil
}

func (noopService) Publish(_, _ string) error {
	return nil
}

func (noopService) Close() {}
