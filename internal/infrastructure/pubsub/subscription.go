package pubsub

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/google/uuid"
)

type Subscription struct {
	ID       string `json:"id"`
	Event    string `json:"event" badgerhold:"index"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

type subscriptions []Subscription

func (s subscriptions) toPortable() []ports.Subscription {
	subs := make([]ports.Subscription, 0, len(s))
	for i := range s {
		sub := s[i]
		subs = append(subs, &sub)
	}
	return subs
}

func NewSubscription(event, endpoint, secret string) (*Subscription, error) {
	if _, ok := knownTopics[event]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, event)
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, ErrInvalidEndpoint
	}
	id := uuid.New().String()
	return &Subscription{id, event, endpoint, secret}, nil
}

func (h *Subscription) Topic() string {
	return h.Event
}

func (h *Subscription) Id() string {
	return h.ID
}

func (h *Subscription) NotifyAt() string {
	return h.Endpoint
}

func (h *Subscription) IsSecured() bool {
	return len(h.Secret) > 0
}

func (h *Subscription) Serialize() []byte {
	b, _ := json.Marshal(*h)
	return b
}
