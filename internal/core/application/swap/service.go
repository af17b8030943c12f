package swap

import (
	"context"
	"errors"
	"fmt"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/colosseum-network/colosseumd/pkg/mathutil"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// PriceSource returns the latest price of an ordered asset pair.
type PriceSource interface {
	GetPrice(ctx context.Context, baseAsset, quoteAsset string) (*domain.Price, error)
}

// Result is the outcome of a conversion.
type Result struct {
	AssetIn   string
	AssetOut  string
	AmountIn  decimal.Decimal
	AmountOut decimal.Decimal
	// PriceIn and PriceOut are valued in the reference asset.
	PriceIn  decimal.Decimal
	PriceOut decimal.Decimal
	// Rate is PriceIn / PriceOut.
	Rate decimal.Decimal
}

// Service is the swap engine. It converts amounts of allow-listed assets at
// the prices of the price source, and keeps the circulating supply consistent
// by burning the input and minting the output through the issuer.
// All prices are quoted against the reference asset, whose own price is 1.
type Service struct {
	repoManager    ports.RepoManager
	prices         PriceSource
	issuer         ports.Issuer
	referenceAsset string
}

func NewService(
	repoManager ports.RepoManager, prices PriceSource, issuer ports.Issuer,
	referenceAsset string,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if prices == nil {
		return nil, fmt.Errorf("missing price source")
	}
	if issuer == nil {
		return nil, fmt.Errorf("missing issuer")
	}
	if referenceAsset == "" {
		return nil, fmt.Errorf("missing reference asset")
	}

	return &Service{repoManager, prices, issuer, referenceAsset}, nil
}

// ReferenceAsset returns the asset every price is quoted against.
func (s *Service) ReferenceAsset() string {
	return s.referenceAsset
}

// RegisterAsset declares the precision of an asset. Registering an existing
// asset with the same properties is a no-op. Precision can be changed only as
// long as the asset is not allow-listed.
func (s *Service) RegisterAsset(
	ctx context.Context, assetID, ticker string, precision uint,
) (*domain.Asset, error) {
	asset, err := domain.NewAsset(assetID, ticker, precision)
	if err != nil {
		return nil, err
	}

	var registered *domain.Asset
	if err := s.repoManager.AssetRepository().UpdateAsset(
		ctx, assetID, func(a *domain.Asset) (*domain.Asset, error) {
			if a == nil {
				registered = asset
				return asset, nil
			}
			if a.Ticker == asset.Ticker && a.Precision == asset.Precision {
				registered = a
				return nil, nil
			}
			if a.IsAllowed() {
				return nil, fmt.Errorf(
					"%w: %s is allow-listed", domain.ErrAssetAlreadyExists, assetID,
				)
			}
			a.Ticker, a.Precision = asset.Ticker, asset.Precision
			registered = a
			return a, nil
		},
	); err != nil {
		return nil, err
	}

	log.Debugf("asset %s registered with precision %d", assetID, precision)
	return registered, nil
}

// AddAllowedAsset adds the asset to the allow-list of swap sources. It's
// idempotent. Unknown assets are registered with the default precision.
func (s *Service) AddAllowedAsset(ctx context.Context, assetID string) error {
	if err := s.repoManager.AssetRepository().UpdateAsset(
		ctx, assetID, func(a *domain.Asset) (*domain.Asset, error) {
			if a == nil {
				asset, err := domain.NewAsset(
					assetID, "", domain.DefaultAssetPrecision,
				)
				if err != nil {
					return nil, err
				}
				a = asset
			}
			a.Allow()
			return a, nil
		},
	); err != nil {
		return err
	}

	log.Debugf("asset %s added to allow-list", assetID)
	return nil
}

// GetAsset returns the asset with the given id.
func (s *Service) GetAsset(ctx context.Context, assetID string) (*domain.Asset, error) {
	return s.repoManager.AssetRepository().GetAsset(ctx, assetID)
}

// ListAssets returns all registered assets, either allowed or not.
func (s *Service) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	return s.repoManager.AssetRepository().GetAllAssets(ctx)
}

// Quote returns the result of converting amount of assetIn to assetOut at
// current prices without executing it.
func (s *Service) Quote(
	ctx context.Context, amount decimal.Decimal, assetIn, assetOut string,
) (*Result, error) {
	return s.convert(ctx, amount, assetIn, assetOut)
}

// Trade converts amount of assetIn to assetOut: the input is burned and the
// output is minted. In case of failure nothing is burned nor minted.
func (s *Service) Trade(
	ctx context.Context, amount decimal.Decimal, assetIn, assetOut string,
) (*Result, error) {
	result, err := s.convert(ctx, amount, assetIn, assetOut)
	if err != nil {
		return nil, err
	}

	if err := s.issuer.Burn(ctx, assetIn, result.AmountIn); err != nil {
		return nil, fmt.Errorf("failed to burn input: %w", err)
	}

	minted, err := s.issuer.Mint(ctx, assetOut, result.AmountOut)
	if err != nil {
		if _, cerr := s.issuer.Mint(ctx, assetIn, result.AmountIn); cerr != nil {
			log.WithError(cerr).Errorf(
				"failed to restore burned %s of asset %s", result.AmountIn, assetIn,
			)
		}
		return nil, fmt.Errorf("failed to mint output: %w", err)
	}

	result.AmountOut = minted
	return result, nil
}

// Revert reverses a previously executed trade by burning its output and
// minting back its input.
func (s *Service) Revert(ctx context.Context, result Result) error {
	if err := s.issuer.Burn(ctx, result.AssetOut, result.AmountOut); err != nil {
		return fmt.Errorf("failed to burn output: %w", err)
	}
	if _, err := s.issuer.Mint(ctx, result.AssetIn, result.AmountIn); err != nil {
		if _, cerr := s.issuer.Mint(ctx, result.AssetOut, result.AmountOut); cerr != nil {
			log.WithError(cerr).Errorf(
				"failed to restore burned %s of asset %s",
				result.AmountOut, result.AssetOut,
			)
		}
		return fmt.Errorf("failed to mint input: %w", err)
	}
	return nil
}

// PriceOf returns the price of the asset in the reference asset.
func (s *Service) PriceOf(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if assetID == s.referenceAsset {
		return decimal.NewFromInt(1), nil
	}

	price, err := s.prices.GetPrice(ctx, assetID, s.referenceAsset)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Value, nil
}

func (s *Service) convert(
	ctx context.Context, amount decimal.Decimal, assetIn, assetOut string,
) (*Result, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrSwapInvalidAmount
	}
	if !domain.IsValidAmount(amount) {
		return nil, domain.ErrAmountOutOfRange
	}
	if assetIn == assetOut {
		return nil, domain.ErrSwapSameAsset
	}

	in, err := s.repoManager.AssetRepository().GetAsset(ctx, assetIn)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotAllowed, assetIn)
		}
		return nil, err
	}
	if !in.IsAllowed() {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotAllowed, assetIn)
	}
	if !mathutil.HasPrecision(amount, in.Precision) {
		return nil, fmt.Errorf(
			"%w: %s supports %d fractional digits",
			domain.ErrSwapAmountPrecision, assetIn, in.Precision,
		)
	}

	outPrecision := uint(domain.DefaultAssetPrecision)
	out, err := s.repoManager.AssetRepository().GetAsset(ctx, assetOut)
	if err != nil {
		if !errors.Is(err, domain.ErrAssetNotFound) {
			return nil, err
		}
	} else {
		outPrecision = out.Precision
	}

	priceIn, err := s.PriceOf(ctx, assetIn)
	if err != nil {
		return nil, fmt.Errorf("%w for %s/%s", err, assetIn, s.referenceAsset)
	}
	priceOut, err := s.PriceOf(ctx, assetOut)
	if err != nil {
		return nil, fmt.Errorf("%w for %s/%s", err, assetOut, s.referenceAsset)
	}
	if priceOut.IsZero() {
		return nil, fmt.Errorf("%w: price of %s is zero", domain.ErrDivisionByZero, assetOut)
	}

	amountOut, err := mathutil.ConvertAmount(amount, priceIn, priceOut, outPrecision)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrArithmetic, err)
	}
	if !amountOut.IsPositive() {
		return nil, fmt.Errorf(
			"%w: %s %s to %s", domain.ErrAmountTooLow, amount, assetIn, assetOut,
		)
	}

	rate, err := mathutil.Rate(priceIn, priceOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrArithmetic, err)
	}

	return &Result{
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		AmountIn:  amount,
		AmountOut: amountOut,
		PriceIn:   priceIn,
		PriceOut:  priceOut,
		Rate:      rate,
	}, nil
}
