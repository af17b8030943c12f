package ports

const (
	AnyTopic                   = "*"
	UnspecifiedTopic           = ""
	TopicParticipantRegistered = "PARTICIPANT_REGISTERED"
	TopicTradeExecuted         = "TRADE_EXECUTED"
	TopicPriceUpdated          = "PRICE_UPDATED"
)

type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// PubSub defines the methods of a pubsub service notifying competition
// events to external subscribers.
type PubSub interface {
	// Subscribe adds a new subscription for the requested topic.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id.
	Unsubscribe(id string) error
	// ListSubscriptionsForTopic returns all the subscriptions for a topic,
	// including those for AnyTopic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish publishes a message for a certain topic. All clients subscribed
	// for such topic will receive the message.
	Publish(topic string, message string) error
	// Close releases the resources of the service.
	Close()
}
