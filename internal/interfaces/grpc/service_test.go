package grpcinterface_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/colosseum-network/colosseumd/internal/core/application/competition"
	"github.com/colosseum-network/colosseumd/internal/core/application/oracle"
	"github.com/colosseum-network/colosseumd/internal/core/application/swap"
	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/clock"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/identity"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/issuer"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/pubsub"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/storage/db/inmemory"
	grpcinterface "github.com/colosseum-network/colosseumd/internal/interfaces/grpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	operatorAddress = "127.0.0.1:19945"
	traderAddress   = "127.0.0.1:19946"
)

func TestService(t *testing.T) {
	datadir := t.TempDir()
	opts := newTestServiceOpts(t, datadir)

	svc, err := grpcinterface.NewService(opts)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(datadir, "tls", grpcinterface.OperatorTLSKeyFile))
	require.FileExists(t, filepath.Join(datadir, "tls", grpcinterface.OperatorTLSCertFile))

	err = svc.Start()
	require.NoError(t, err)
	t.Cleanup(svc.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	creds, err := credentials.NewClientTLSFromFile(
		filepath.Join(datadir, "tls", grpcinterface.OperatorTLSCertFile), "",
	)
	require.NoError(t, err)
	operatorConn, err := grpc.DialContext(
		ctx, operatorAddress, grpc.WithTransportCredentials(creds), grpc.WithBlock(),
	)
	require.NoError(t, err)
	defer operatorConn.Close()

	traderConn, err := grpc.DialContext(
		ctx, traderAddress,
		grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock(),
	)
	require.NoError(t, err)
	defer traderConn.Close()

	operator := pb.NewOperatorClient(operatorConn)
	_, err = operator.SetPrice(ctx, &pb.SetPriceRequest{
		BaseAsset: "btc", QuoteAsset: "fusd", Price: "30000",
	})
	require.NoError(t, err)

	trader := pb.NewTraderClient(traderConn)
	reply, err := trader.GetPrice(ctx, &pb.GetPriceRequest{
		BaseAsset: "btc", QuoteAsset: "fusd",
	})
	require.NoError(t, err)
	require.Equal(t, "30000", reply.Price.Price)

	// Admin RPCs are not exposed on the trader interface.
	_, err = pb.NewOperatorClient(traderConn).SetPrice(ctx, &pb.SetPriceRequest{
		BaseAsset: "btc", QuoteAsset: "fusd", Price: "1",
	})
	require.Error(t, err)
}

func TestFailingNewService(t *testing.T) {
	datadir := t.TempDir()

	tests := []struct {
		name   string
		modify func(o *grpcinterface.ServiceOpts)
	}{
		{"invalid_operator_address", func(o *grpcinterface.ServiceOpts) {
			o.OperatorAddress = "localhost"
		}},
		{"reserved_trader_port", func(o *grpcinterface.ServiceOpts) {
			o.TraderAddress = ":80"
		}},
		{"same_addresses", func(o *grpcinterface.ServiceOpts) {
			o.TraderAddress = o.OperatorAddress
		}},
		{"trader_tls_key_without_cert", func(o *grpcinterface.ServiceOpts) {
			o.TraderTLSKey = filepath.Join(datadir, "key.pem")
		}},
		{"missing_competition_service", func(o *grpcinterface.ServiceOpts) {
			o.CompetitionSvc = nil
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			opts := newTestServiceOpts(t, datadir)
			tt.modify(&opts)
			svc, err := grpcinterface.NewService(opts)
			require.Error(t, err)
			require.Nil(t, svc)
		})
	}
}

func newTestServiceOpts(t *testing.T, datadir string) grpcinterface.ServiceOpts {
	repoManager := inmemory.NewRepoManager()
	t.Cleanup(repoManager.Close)
	systemClock := clock.NewSystemClock()
	pubsubSvc := pubsub.NewNoopService()

	oracleSvc, err := oracle.NewService(repoManager, systemClock, pubsubSvc, nil)
	require.NoError(t, err)
	ledger, err := issuer.NewLedger(decimal.Zero)
	require.NoError(t, err)
	verifier, err := identity.NewVerifier([]byte("secret"))
	require.NoError(t, err)
	swapSvc, err := swap.NewService(repoManager, oracleSvc, ledger, "fusd")
	require.NoError(t, err)
	competitionSvc, err := competition.NewService(
		repoManager, swapSvc, verifier, ledger, systemClock, pubsubSvc, nil, "contestant",
	)
	require.NoError(t, err)

	now := systemClock.Now()
	c, err := domain.NewCompetition(
		nil, nil, now.Add(time.Hour), now.Add(2*time.Hour),
		"fusd", decimal.NewFromInt(10000),
	)
	require.NoError(t, err)
	_, err = competitionSvc.Init(context.Background(), *c)
	require.NoError(t, err)

	return grpcinterface.ServiceOpts{
		Datadir:         datadir,
		TLSLocation:     "tls",
		OperatorAddress: operatorAddress,
		OperatorTLS:     true,
		TraderAddress:   traderAddress,
		OracleSvc:       oracleSvc,
		SwapSvc:         swapSvc,
		CompetitionSvc:  competitionSvc,
		PubSubSvc:       pubsubSvc,
	}
}
