package grpchandler

import (
	"errors"
	"fmt"
	"time"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// maxAmountLength bounds the length of decimal strings before parsing.
const maxAmountLength = 64

var (
	errMissingCredential = errors.New("missing credential")
	errMissingAsset      = errors.New("missing asset")
	errMissingAmount     = errors.New("missing amount")
	errMissingTime       = errors.New("missing time")
)

// statusError maps the category of a service error to a gRPC status.
func statusError(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, domain.ErrValidation):
		code = codes.InvalidArgument
	case errors.Is(err, domain.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrState),
		errors.Is(err, domain.ErrInsufficientBalance):
		code = codes.FailedPrecondition
	case errors.Is(err, domain.ErrCredential):
		code = codes.Unauthenticated
	case errors.Is(err, domain.ErrArithmetic):
		code = codes.OutOfRange
	}
	return status.Error(code, err.Error())
}

func invalidArgument(err error) error {
	return status.Error(codes.InvalidArgument, err.Error())
}

func parseAsset(asset string) (string, error) {
	if asset == "" {
		return "", errMissingAsset
	}
	return asset, nil
}

func parseAmount(amount string) (decimal.Decimal, error) {
	if amount == "" {
		return decimal.Zero, errMissingAmount
	}
	if len(amount) > maxAmountLength {
		return decimal.Zero, domain.ErrAmountOutOfRange
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", amount)
	}
	if !domain.IsValidAmount(d) {
		return decimal.Zero, domain.ErrAmountOutOfRange
	}
	return d, nil
}

func parseTime(t int64) (time.Time, error) {
	if t <= 0 {
		return time.Time{}, errMissingTime
	}
	return time.Unix(t, 0).UTC(), nil
}

func parseCredential(c *pb.Credential) (domain.Credential, error) {
	if c == nil || c.Value == "" {
		return domain.Credential{}, errMissingCredential
	}

	var credentialType domain.CredentialType
	switch c.Type {
	case domain.CredentialTypeToken.String():
		credentialType = domain.CredentialTypeToken
	case domain.CredentialTypeBadge.String():
		credentialType = domain.CredentialTypeBadge
	default:
		return domain.Credential{}, fmt.Errorf("unknown credential type %q", c.Type)
	}

	return domain.Credential{
		Type:  credentialType,
		Class: c.Class,
		Value: c.Value,
	}, nil
}

func unixOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}
