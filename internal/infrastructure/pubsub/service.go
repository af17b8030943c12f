package pubsub

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/colosseum-network/colosseumd/pkg/circuitbreaker"
	"github.com/dgraph-io/badger/v3"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
)

var knownTopics = map[string]struct{}{
	ports.AnyTopic:                   {},
	ports.TopicParticipantRegistered: {},
	ports.TopicTradeExecuted:         {},
	ports.TopicPriceUpdated:          {},
}

type service struct {
	store      *store
	httpClient *client
	cb         *gobreaker.CircuitBreaker
}

// NewService returns a webhook based PubSub. Every published message is
// POSTed to the endpoints subscribed for its topic or for AnyTopic. Requests
// for secured subscriptions carry a bearer JWT signed with the subscription
// secret.
func NewService(
	datadir string, logger badger.Logger, requestTimeout time.Duration,
) (ports.PubSub, error) {
	store, err := newStore(datadir, logger)
	if err != nil {
		return nil, err
	}

	return &service{
		store:      store,
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhooks"),
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	if err := ws.store.add(sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) Unsubscribe(id string) error {
	return ws.store.remove(id)
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	subs, err := ws.listSubscriptionsForTopic(topic)
	if err != nil {
		log.WithError(err).Warn("failed to list webhooks")
		return nil
	}
	return subs.toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	subs, err := ws.listSubscriptionsForTopic(topic)
	if err != nil {
		return err
	}

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, message) })
	}
	return eg.Wait()
}

func (ws *service) Close() {
	ws.store.close()
}

func (ws *service) listSubscriptionsForTopic(topic string) (subscriptions, error) {
	subs, err := ws.store.getForTopic(topic)
	if err != nil {
		return nil, err
	}
	if topic != ports.AnyTopic && topic != ports.UnspecifiedTopic {
		subsForAnyTopic, err := ws.store.getForTopic(ports.AnyTopic)
		if err != nil {
			return nil, err
		}
		subs = append(subs, subsForAnyTopic...)
	}

	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
	return subs, nil
}

func (ws *service) doRequest(sub Subscription, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if sub.IsSecured() {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
				Subject:  sub.Event,
				IssuedAt: time.Now().Unix(),
			})
			tokenString, err := token.SignedString([]byte(sub.Secret))
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(sub.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("webhook %s replied with status %d: %s", sub.ID, status, resp)
		}
		return nil, nil
	})

	return err
}
