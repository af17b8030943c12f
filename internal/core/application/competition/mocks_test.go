package competition_test

import (
	"sync"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// **** Clock ****

type mockClock struct {
	lock *sync.RWMutex
	now  time.Time
}

func newMockClock(now time.Time) *mockClock {
	return &mockClock{&sync.RWMutex{}, now}
}

func (c *mockClock) Now() time.Time {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.now
}

func (c *mockClock) set(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = now
}

// **** PubSub ****

type mockPubSub struct {
	mock.Mock
}

func (m *mockPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	args := m.Called(topic, endpoint, secret)
	return args.String(0), args.Error(1)
}

func (m *mockPubSub) Unsubscribe(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockPubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	args := m.Called(topic)

	var res []ports.Subscription
	if a := args.Get(0); a != nil {
		res = a.([]ports.Subscription)
	}
	return res
}

func (m *mockPubSub) Publish(topic string, message string) error {
	args := m.Called(topic, message)
	return args.Error(0)
}

func (m *mockPubSub) Close() {
	m.Called()
}
