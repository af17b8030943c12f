package competition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/application/swap"
	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/colosseum-network/colosseumd/pkg/stats"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Service is the competition orchestrator. It binds verified identities to
// their vaults, enforces the registration and trading windows and routes
// trades through the swap engine.
type Service struct {
	repoManager   ports.RepoManager
	swap          *swap.Service
	verifier      ports.IdentityVerifier
	issuer        ports.Issuer
	clock         ports.Clock
	pubsub        ports.PubSub
	metrics       *stats.Metrics
	requiredClass string

	locks *keyedMutex
}

// NewService returns a new orchestrator. The pubsub service and metrics are
// optional.
func NewService(
	repoManager ports.RepoManager, swapSvc *swap.Service,
	verifier ports.IdentityVerifier, issuer ports.Issuer, clock ports.Clock,
	pubsub ports.PubSub, metrics *stats.Metrics, requiredClass string,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if swapSvc == nil {
		return nil, fmt.Errorf("missing swap service")
	}
	if verifier == nil {
		return nil, fmt.Errorf("missing identity verifier")
	}
	if issuer == nil {
		return nil, fmt.Errorf("missing issuer")
	}
	if clock == nil {
		return nil, fmt.Errorf("missing clock")
	}
	if requiredClass == "" {
		return nil, fmt.Errorf("missing required credential class")
	}

	return &Service{
		repoManager:   repoManager,
		swap:          swapSvc,
		verifier:      verifier,
		issuer:        issuer,
		clock:         clock,
		pubsub:        pubsub,
		metrics:       metrics,
		requiredClass: requiredClass,
		locks:         newKeyedMutex(),
	}, nil
}

// Init stores the given competition unless one already exists, in which case
// the stored one is kept and returned. The stable asset is added to the swap
// allow-list.
func (s *Service) Init(
	ctx context.Context, competition domain.Competition,
) (*domain.Competition, error) {
	if competition.StableAsset != s.swap.ReferenceAsset() {
		return nil, fmt.Errorf(
			"%w: stable asset %s must be the reference asset %s",
			domain.ErrValidation, competition.StableAsset, s.swap.ReferenceAsset(),
		)
	}

	c, err := s.repoManager.CompetitionRepository().InitCompetition(
		ctx, competition,
	)
	if err != nil {
		return nil, err
	}
	if err := s.swap.AddAllowedAsset(ctx, c.StableAsset); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"start": c.Start.Format(time.RFC3339),
		"end":   c.End.Format(time.RFC3339),
	}).Info("competition initialized")
	return c, nil
}

// Register creates the vault of the identity proven by the credential, seeded
// with the initial grant of stable asset.
func (s *Service) Register(
	ctx context.Context, credential domain.Credential,
) (*domain.Vault, error) {
	competition, err := s.getCompetition(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := competition.CanRegister(now); err != nil {
		return nil, err
	}

	identity, err := s.verifier.Verify(ctx, credential, s.requiredClass)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	if _, err := s.repoManager.VaultRepository().GetVault(
		ctx, identity,
	); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrVaultNotFound) {
		return nil, err
	}

	stable := competition.StableAsset
	grant, err := s.issuer.Mint(ctx, stable, competition.InitialGrant)
	if err != nil {
		return nil, fmt.Errorf("failed to mint initial grant: %w", err)
	}

	vault, err := domain.NewVault(identity, stable, grant, now)
	if err == nil {
		err = s.repoManager.VaultRepository().AddVault(ctx, vault)
	}
	if err != nil {
		if berr := s.issuer.Burn(ctx, stable, grant); berr != nil {
			log.WithError(berr).Errorf(
				"failed to burn back initial grant of %s", identity,
			)
		}
		return nil, err
	}

	log.Debugf("participant %s registered", identity)
	s.metrics.ParticipantRegistered()
	go s.publish(ports.TopicParticipantRegistered, map[string]interface{}{
		"owner":         identity,
		"asset":         stable,
		"amount":        grant.String(),
		"registered_at": vault.CreatedAt.Unix(),
	})

	return vault, nil
}

// Trade converts amount of fromAsset held in the vault of the identity proven
// by the credential into toAsset. On failure the vault and the circulating
// supply are left untouched.
func (s *Service) Trade(
	ctx context.Context, credential domain.Credential,
	fromAsset, toAsset string, amount decimal.Decimal,
) (*domain.Trade, error) {
	trade, err := s.trade(ctx, credential, fromAsset, toAsset, amount)
	if err != nil {
		s.metrics.TradeFailed(errorCategory(err))
		return nil, err
	}

	s.metrics.TradeExecuted(fromAsset, toAsset)
	go s.publish(ports.TopicTradeExecuted, map[string]interface{}{
		"id":          trade.ID,
		"owner":       trade.Owner,
		"from_asset":  trade.FromAsset,
		"to_asset":    trade.ToAsset,
		"from_amount": trade.FromAmount.String(),
		"to_amount":   trade.ToAmount.String(),
		"rate":        trade.Rate.String(),
		"executed_at": trade.ExecutedAt.Unix(),
	})
	return trade, nil
}

func (s *Service) trade(
	ctx context.Context, credential domain.Credential,
	fromAsset, toAsset string, amount decimal.Decimal,
) (*domain.Trade, error) {
	competition, err := s.getCompetition(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := competition.CanTrade(now); err != nil {
		return nil, err
	}

	identity, err := s.verifier.Verify(ctx, credential, s.requiredClass)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	var result *swap.Result
	if err := s.repoManager.VaultRepository().UpdateVault(
		ctx, identity, func(v *domain.Vault) (*domain.Vault, error) {
			withdrawn, err := v.Withdraw(fromAsset, amount)
			if err != nil {
				return nil, err
			}
			res, err := s.swap.Trade(ctx, withdrawn, fromAsset, toAsset)
			if err != nil {
				return nil, err
			}
			result = res
			if err := v.Deposit(toAsset, res.AmountOut); err != nil {
				return nil, err
			}
			return v, nil
		},
	); err != nil {
		if result != nil {
			if rerr := s.swap.Revert(ctx, *result); rerr != nil {
				log.WithError(rerr).Errorf(
					"failed to revert swap of %s %s to %s for %s",
					result.AmountIn, fromAsset, toAsset, identity,
				)
			}
		}
		return nil, err
	}

	trade := domain.NewTrade(
		identity, fromAsset, toAsset,
		result.AmountIn, result.AmountOut, result.Rate, now,
	)
	if err := s.repoManager.TradeRepository().AddTrade(ctx, trade); err != nil {
		log.WithError(err).Warnf("failed to store trade %s", trade.ID)
	}

	log.Debugf(
		"%s traded %s %s for %s %s",
		identity, trade.FromAmount, fromAsset, trade.ToAmount, toAsset,
	)
	return trade, nil
}

// SetCompetitionStartTime replaces the trading start bound. Ordering against
// the other bounds is not checked.
func (s *Service) SetCompetitionStartTime(ctx context.Context, t time.Time) error {
	return s.updateCompetition(ctx, func(c *domain.Competition) {
		c.ChangeStart(t)
	})
}

// SetCompetitionEndTime replaces the trading end bound. Ordering against the
// other bounds is not checked.
func (s *Service) SetCompetitionEndTime(ctx context.Context, t time.Time) error {
	return s.updateCompetition(ctx, func(c *domain.Competition) {
		c.ChangeEnd(t)
	})
}

func (s *Service) GetCompetitionStartTime(ctx context.Context) (time.Time, error) {
	c, err := s.getCompetition(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return c.Start, nil
}

func (s *Service) GetCompetitionEndTime(ctx context.Context) (time.Time, error) {
	c, err := s.getCompetition(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return c.End, nil
}

// GetCompetition returns the competition window and the phase at the current
// instant.
func (s *Service) GetCompetition(ctx context.Context) (*Info, error) {
	c, err := s.getCompetition(ctx)
	if err != nil {
		return nil, err
	}
	now := domain.TruncateTime(s.clock.Now())
	return &Info{
		Competition: *c,
		Phase:       c.PhaseAt(now),
		Now:         now,
	}, nil
}

// GetVault returns the vault of the identity proven by the credential.
func (s *Service) GetVault(
	ctx context.Context, credential domain.Credential,
) (*domain.Vault, error) {
	identity, err := s.verifier.Verify(ctx, credential, s.requiredClass)
	if err != nil {
		return nil, err
	}
	return s.repoManager.VaultRepository().GetVault(ctx, identity)
}

// ListTrades returns the trades of the identity proven by the credential,
// sorted by execution time.
func (s *Service) ListTrades(
	ctx context.Context, credential domain.Credential,
) ([]domain.Trade, error) {
	identity, err := s.verifier.Verify(ctx, credential, s.requiredClass)
	if err != nil {
		return nil, err
	}
	if _, err := s.repoManager.VaultRepository().GetVault(
		ctx, identity,
	); err != nil {
		return nil, err
	}
	return s.repoManager.TradeRepository().GetTradesByOwner(ctx, identity)
}

// Leaderboard returns all participants ranked by the value of their vault in
// stable asset at current prices. Assets without a price are valued zero.
func (s *Service) Leaderboard(ctx context.Context) ([]Standing, error) {
	vaults, err := s.repoManager.VaultRepository().GetAllVaults(ctx)
	if err != nil {
		return nil, err
	}

	prices := map[string]decimal.Decimal{}
	priceOf := func(asset string) (decimal.Decimal, error) {
		if p, ok := prices[asset]; ok {
			return p, nil
		}
		p, err := s.swap.PriceOf(ctx, asset)
		if err != nil {
			if !errors.Is(err, domain.ErrPriceNotFound) {
				return decimal.Zero, err
			}
			p = decimal.Zero
		}
		prices[asset] = p
		return p, nil
	}

	standings := make([]Standing, 0, len(vaults))
	for _, v := range vaults {
		total := decimal.Zero
		for _, asset := range v.Assets() {
			price, err := priceOf(asset)
			if err != nil {
				return nil, err
			}
			total = total.Add(v.Balance(asset).Mul(price))
		}
		standings = append(standings, Standing{Owner: v.Owner, Total: total})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if cmp := standings[i].Total.Cmp(standings[j].Total); cmp != 0 {
			return cmp > 0
		}
		return standings[i].Owner < standings[j].Owner
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings, nil
}

func (s *Service) getCompetition(ctx context.Context) (*domain.Competition, error) {
	return s.repoManager.CompetitionRepository().GetCompetition(ctx)
}

func (s *Service) updateCompetition(
	ctx context.Context, update func(c *domain.Competition),
) error {
	if err := s.repoManager.CompetitionRepository().UpdateCompetition(
		ctx, func(c *domain.Competition) (*domain.Competition, error) {
			update(c)
			return c, nil
		},
	); err != nil {
		return err
	}

	c, _ := s.getCompetition(ctx)
	if c != nil {
		log.WithFields(log.Fields{
			"start": c.Start.Format(time.RFC3339),
			"end":   c.End.Format(time.RFC3339),
		}).Info("competition window updated")
	}
	return nil
}

func (s *Service) publish(topic string, event map[string]interface{}) {
	if s.pubsub == nil {
		return
	}

	payload, _ := json.Marshal(event)
	if err := s.pubsub.Publish(topic, string(payload)); err != nil {
		log.WithError(err).Warnf("failed to publish %s event", topic)
	}
}

func errorCategory(err error) string {
	for _, c := range []struct {
		err  error
		name string
	}{
		{domain.ErrValidation, "validation"},
		{domain.ErrNotFound, "not_found"},
		{domain.ErrState, "state"},
		{domain.ErrInsufficientBalance, "insufficient_balance"},
		{domain.ErrCredential, "credential"},
		{domain.ErrArithmetic, "arithmetic"},
	} {
		if errors.Is(err, c.err) {
			return c.name
		}
	}
	return "internal"
}
