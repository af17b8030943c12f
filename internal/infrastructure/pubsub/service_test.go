package pubsub_test

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/pubsub"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

var testMessage = `{"owner":"alice","from_asset":"fusd","to_asset":"btc","from_amount":"100","to_amount":"0.002"}`

func TestPubSubService(t *testing.T) {
	secret := randomSecret()
	server, received := newTestWebServer(t, secret)

	pubsubSvc, err := pubsub.NewService("", nil, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(pubsubSvc.Close)

	testSubs := []struct {
		topic    string
		endpoint string
		secret   string
	}{
		{ports.TopicTradeExecuted, server.URL + "/trades", secret},
		{ports.TopicTradeExecuted, server.URL + "/trades", ""},
		{ports.TopicParticipantRegistered, server.URL + "/registrations", ""},
		{ports.AnyTopic, server.URL + "/all", secret},
	}
	for _, sub := range testSubs {
		subID, err := pubsubSvc.Subscribe(sub.topic, sub.endpoint, sub.secret)
		require.NoError(t, err)
		require.NotEmpty(t, subID)
	}

	subs := pubsubSvc.ListSubscriptionsForTopic(ports.TopicTradeExecuted)
	require.Len(t, subs, 3)
	subs = pubsubSvc.ListSubscriptionsForTopic(ports.AnyTopic)
	require.Len(t, subs, 1)
	require.True(t, subs[0].IsSecured())
	subs = pubsubSvc.ListSubscriptionsForTopic(ports.UnspecifiedTopic)
	require.Len(t, subs, len(testSubs))

	err = pubsubSvc.Publish(ports.TopicTradeExecuted, testMessage)
	require.NoError(t, err)
	require.Equal(t, 2, received.count("/trades"))
	require.Equal(t, 1, received.count("/all"))
	require.Zero(t, received.count("/registrations"))

	// Checks that it's all ok if there are no hooks to invoke but the any one.
	err = pubsubSvc.Publish(ports.TopicPriceUpdated, testMessage)
	require.NoError(t, err)
	require.Equal(t, 2, received.count("/all"))

	for _, s := range pubsubSvc.ListSubscriptionsForTopic(ports.UnspecifiedTopic) {
		err := pubsubSvc.Unsubscribe(s.Id())
		require.NoError(t, err)
	}
	require.Empty(t, pubsubSvc.ListSubscriptionsForTopic(ports.UnspecifiedTopic))

	err = pubsubSvc.Unsubscribe("unknown")
	require.ErrorIs(t, err, pubsub.ErrSubscriptionNotFound)
}

func TestFailingSubscribe(t *testing.T) {
	pubsubSvc, err := pubsub.NewService("", nil, time.Second)
	require.NoError(t, err)
	t.Cleanup(pubsubSvc.Close)

	_, err = pubsubSvc.Subscribe("UNKNOWN", "http://localhost:8080", "")
	require.ErrorIs(t, err, pubsub.ErrUnknownTopic)

	_, err = pubsubSvc.Subscribe(ports.TopicTradeExecuted, "not an url", "")
	require.ErrorIs(t, err, pubsub.ErrInvalidEndpoint)
}

func TestNoopService(t *testing.T) {
	svc := pubsub.NewNoopService()
	t.Cleanup(svc.Close)

	_, err := svc.Subscribe(ports.TopicTradeExecuted, "http://127.0.0.1/hook", "")
	require.ErrorIs(t, err, pubsub.ErrDisabled)

	err = svc.Unsubscribe("id")
	require.ErrorIs(t, err, pubsub.ErrDisabled)

	require.Empty(t, svc.ListSubscriptionsForTopic(ports.AnyTopic))
	require.NoError(t, svc.Publish(ports.TopicTradeExecuted, testMessage))
}

type requestCounter struct {
	lock   sync.Mutex
	counts map[string]int
}

func (c *requestCounter) inc(path string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.counts[path]++
}

func (c *requestCounter) count(path string) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.counts[path]
}

// newTestWebServer returns a server that rejects requests with an invalid
// bearer token, if any.
func newTestWebServer(t *testing.T, secret string) (*httptest.Server, *requestCounter) {
	counter := &requestCounter{counts: map[string]int{}}

	handleFn := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Bad method", http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Content-Type") == "" {
			http.Error(w, "Missing Content-Type header", http.StatusUnsupportedMediaType)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			tokenStr := strings.TrimPrefix(auth, "Bearer ")
			_, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
		}

		defer r.Body.Close()
		payload, _ := io.ReadAll(r.Body)
		if string(payload) != testMessage {
			http.Error(w, "Unexpected payload", http.StatusBadRequest)
			return
		}

		counter.inc(r.URL.Path)
		fmt.Fprintf(w, "Done")
	}

	server := httptest.NewServer(http.HandlerFunc(handleFn))
	t.Cleanup(server.Close)
	return server, counter
}

func randomSecret() string {
	b := make([]byte, 32)
	//nolint
	rand.Read(b)
	return hex.EncodeToString(b)
}
