package grpchandler

import (
	"context"
	"time"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/colosseum-network/colosseumd/internal/core/application/competition"
	"github.com/colosseum-network/colosseumd/internal/core/application/oracle"
	"github.com/colosseum-network/colosseumd/internal/core/application/swap"
	"github.com/shopspring/decimal"
)

type traderHandler struct {
	oracleSvc      *oracle.Service
	swapSvc        *swap.Service
	competitionSvc *competition.Service
}

// NewTraderHandler is a constructor function returning a TraderServer.
func NewTraderHandler(
	oracleSvc *oracle.Service, swapSvc *swap.Service,
	competitionSvc *competition.Service,
) pb.TraderServer {
	return &traderHandler{
		oracleSvc:      oracleSvc,
		swapSvc:        swapSvc,
		competitionSvc: competitionSvc,
	}
}

func (t traderHandler) GetCompetition(
	ctx context.Context, req *pb.GetCompetitionRequest,
) (*pb.GetCompetitionReply, error) {
	return getCompetition(ctx, t.competitionSvc)
}

func (t traderHandler) GetCompetitionStartTime(
	ctx context.Context, req *pb.GetCompetitionTimeRequest,
) (*pb.GetCompetitionTimeReply, error) {
	return getCompetitionTime(ctx, t.competitionSvc.GetCompetitionStartTime)
}

func (t traderHandler) GetCompetitionEndTime(
	ctx context.Context, req *pb.GetCompetitionTimeRequest,
) (*pb.GetCompetitionTimeReply, error) {
	return getCompetitionTime(ctx, t.competitionSvc.GetCompetitionEndTime)
}

func (t traderHandler) GetPrice(
	ctx context.Context, req *pb.GetPriceRequest,
) (*pb.GetPriceReply, error) {
	baseAsset, err := parseAsset(req.BaseAsset)
	if err != nil {
		return nil, invalidArgument(err)
	}
	quoteAsset, err := parseAsset(req.QuoteAsset)
	if err != nil {
		return nil, invalidArgument(err)
	}

	p, err := t.oracleSvc.GetPrice(ctx, baseAsset, quoteAsset)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.GetPriceReply{Price: price(*p).toProto()}, nil
}

func (t traderHandler) ListAssets(
	ctx context.Context, req *pb.ListAssetsRequest,
) (*pb.ListAssetsReply, error) {
	return listAssets(ctx, t.swapSvc)
}

func (t traderHandler) Register(
	ctx context.Context, req *pb.RegisterRequest,
) (*pb.RegisterReply, error) {
	credential, err := parseCredential(req.Credential)
	if err != nil {
		return nil, invalidArgument(err)
	}

	v, err := t.competitionSvc.Register(ctx, credential)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.RegisterReply{Balances: vault{v}.toProto()}, nil
}

func (t traderHandler) Quote(
	ctx context.Context, req *pb.QuoteRequest,
) (*pb.QuoteReply, error) {
	fromAsset, toAsset, amount, err := parseSwap(
		req.FromAsset, req.ToAsset, req.Amount,
	)
	if err != nil {
		return nil, invalidArgument(err)
	}

	result, err := t.swapSvc.Quote(ctx, amount, fromAsset, toAsset)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.QuoteReply{
		Amount: result.AmountOut.String(),
		Rate:   result.Rate.String(),
	}, nil
}

func (t traderHandler) Trade(
	ctx context.Context, req *pb.TradeRequest,
) (*pb.TradeReply, error) {
	credential, err := parseCredential(req.Credential)
	if err != nil {
		return nil, invalidArgument(err)
	}
	fromAsset, toAsset, amount, err := parseSwap(
		req.FromAsset, req.ToAsset, req.Amount,
	)
	if err != nil {
		return nil, invalidArgument(err)
	}

	tr, err := t.competitionSvc.Trade(ctx, credential, fromAsset, toAsset, amount)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.TradeReply{Trade: trade(*tr).toProto()}, nil
}

func (t traderHandler) GetBalance(
	ctx context.Context, req *pb.GetBalanceRequest,
) (*pb.GetBalanceReply, error) {
	credential, err := parseCredential(req.Credential)
	if err != nil {
		return nil, invalidArgument(err)
	}

	v, err := t.competitionSvc.GetVault(ctx, credential)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.GetBalanceReply{Balances: vault{v}.toProto()}, nil
}

func (t traderHandler) ListTrades(
	ctx context.Context, req *pb.ListTradesRequest,
) (*pb.ListTradesReply, error) {
	credential, err := parseCredential(req.Credential)
	if err != nil {
		return nil, invalidArgument(err)
	}

	list, err := t.competitionSvc.ListTrades(ctx, credential)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.ListTradesReply{Trades: trades(list).toProto()}, nil
}

func (t traderHandler) Leaderboard(
	ctx context.Context, req *pb.LeaderboardRequest,
) (*pb.LeaderboardReply, error) {
	return leaderboard(ctx, t.competitionSvc)
}

func getCompetitionTime(
	ctx context.Context, get func(context.Context) (time.Time, error),
) (*pb.GetCompetitionTimeReply, error) {
	t, err := get(ctx)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.GetCompetitionTimeReply{Time: t.Unix()}, nil
}

func parseSwap(from, to, amount string) (string, string, decimal.Decimal, error) {
	fromAsset, err := parseAsset(from)
	if err != nil {
		return "", "", decimal.Zero, err
	}
	toAsset, err := parseAsset(to)
	if err != nil {
		return "", "", decimal.Zero, err
	}
	d, err := parseAmount(amount)
	if err != nil {
		return "", "", decimal.Zero, err
	}
	return fromAsset, toAsset, d, nil
}
