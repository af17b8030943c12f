package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/colosseum-network/colosseumd/pkg/stats"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// Service is the price registry. It keeps the latest price of every ordered
// asset pair, either set by the operator or read from an external price
// feeder.
type Service struct {
	repoManager ports.RepoManager
	clock       ports.Clock
	pubsub      ports.PubSub
	metrics     *stats.Metrics

	feeder    ports.PriceFeeder
	feederWg  *sync.WaitGroup
	feedLimit int
}

// NewService returns a new price registry. The pubsub service and metrics are
// optional.
func NewService(
	repoManager ports.RepoManager, clock ports.Clock,
	pubsub ports.PubSub, metrics *stats.Metrics,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if clock == nil {
		return nil, fmt.Errorf("missing clock")
	}

	return &Service{
		repoManager: repoManager,
		clock:       clock,
		pubsub:      pubsub,
		metrics:     metrics,
		feederWg:    &sync.WaitGroup{},
	}, nil
}

// SetPrice overwrites the price of the ordered pair (base, quote), stamped
// with the current time.
func (s *Service) SetPrice(
	ctx context.Context, baseAsset, quoteAsset string, value decimal.Decimal,
) (*domain.Price, error) {
	price, err := domain.NewPrice(baseAsset, quoteAsset, value, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.PriceRepository().UpsertPrice(ctx, *price); err != nil {
		return nil, err
	}

	log.Debugf("price of %s set to %s", price.Key(), price.Value)
	s.metrics.PriceUpdated(price.Key())
	go s.publishPriceUpdate(*price)

	return price, nil
}

// GetPrice returns the price of the exact ordered pair (base, quote). The
// reversed pair is never considered.
func (s *Service) GetPrice(
	ctx context.Context, baseAsset, quoteAsset string,
) (*domain.Price, error) {
	return s.repoManager.PriceRepository().GetPrice(ctx, baseAsset, quoteAsset)
}

// ListPrices returns all the stored prices sorted by pair.
func (s *Service) ListPrices(ctx context.Context) ([]domain.Price, error) {
	return s.repoManager.PriceRepository().GetAllPrices(ctx)
}

// StartFeed subscribes the feeder to the given markets and keeps updating the
// price of every market with the feeds received, at most feedsPerSecond
// times per second.
func (s *Service) StartFeed(
	feeder ports.PriceFeeder, markets []ports.Market, feedsPerSecond int,
) error {
	if s.feeder != nil {
		return fmt.Errorf("price feeder already started")
	}
	if len(markets) <= 0 {
		return fmt.Errorf("missing markets to feed")
	}
	if feedsPerSecond <= 0 {
		return fmt.Errorf("feeds per second must be greater than zero")
	}

	if err := feeder.SubscribeMarkets(markets); err != nil {
		return err
	}

	s.feeder = feeder
	s.feedLimit = feedsPerSecond

	s.feederWg.Add(2)
	go func() {
		defer s.feederWg.Done()
		if err := feeder.Start(); err != nil {
			log.WithError(err).Warn("price feeder stopped unexpectedly")
		}
	}()
	go func() {
		defer s.feederWg.Done()
		s.listenPriceFeeds(feeder.FeedChan())
	}()

	log.Infof("price feeder started for %d markets", len(markets))
	return nil
}

// StopFeed stops the price feeder, if started, and waits for the pending
// feeds to be processed.
func (s *Service) StopFeed() {
	if s.feeder == nil {
		return
	}
	s.feeder.Stop()
	s.feederWg.Wait()
	s.feeder = nil
	log.Info("price feeder stopped")
}

func (s *Service) listenPriceFeeds(feedChan chan ports.PriceFeed) {
	log.Debug("reading price feed chan started")

	limiter := ratelimit.New(s.feedLimit)
	for priceFeed := range feedChan {
		limiter.Take()

		mkt := priceFeed.GetMarket()
		if _, err := s.SetPrice(
			context.Background(),
			mkt.GetBaseAsset(), mkt.GetQuoteAsset(), priceFeed.GetPrice(),
		); err != nil {
			log.WithError(err).Warnf(
				"cannot update price for market %s", mkt.GetTicker(),
			)
		}
	}

	log.Debug("reading price feed chan stopped")
}

func (s *Service) publishPriceUpdate(price domain.Price) {
	if s.pubsub == nil {
		return
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"base_asset":  price.BaseAsset,
		"quote_asset": price.QuoteAsset,
		"price":       price.Value.String(),
		"observed_at": price.ObservedAt.Unix(),
	})
	if err := s.pubsub.Publish(ports.TopicPriceUpdated, string(payload)); err != nil {
		log.WithError(err).Warn("failed to publish price update")
	}
}
