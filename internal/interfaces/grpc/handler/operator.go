package grpchandler

import (
	"context"
	"time"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/colosseum-network/colosseumd/internal/core/application/competition"
	"github.com/colosseum-network/colosseumd/internal/core/application/oracle"
	"github.com/colosseum-network/colosseumd/internal/core/application/swap"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
)

type operatorHandler struct {
	oracleSvc      *oracle.Service
	swapSvc        *swap.Service
	competitionSvc *competition.Service
	pubsubSvc      ports.PubSub
}

// NewOperatorHandler is a constructor function returning an OperatorServer.
func NewOperatorHandler(
	oracleSvc *oracle.Service, swapSvc *swap.Service,
	competitionSvc *competition.Service, pubsubSvc ports.PubSub,
) pb.OperatorServer {
	return newOperatorHandler(oracleSvc, swapSvc, competitionSvc, pubsubSvc)
}

func newOperatorHandler(
	oracleSvc *oracle.Service, swapSvc *swap.Service,
	competitionSvc *competition.Service, pubsubSvc ports.PubSub,
) *operatorHandler {
	return &operatorHandler{
		oracleSvc:      oracleSvc,
		swapSvc:        swapSvc,
		competitionSvc: competitionSvc,
		pubsubSvc:      pubsubSvc,
	}
}

func (o operatorHandler) SetPrice(
	ctx context.Context, req *pb.SetPriceRequest,
) (*pb.SetPriceReply, error) {
	return o.setPrice(ctx, req)
}

func (o operatorHandler) ListPrices(
	ctx context.Context, req *pb.ListPricesRequest,
) (*pb.ListPricesReply, error) {
	return o.listPrices(ctx, req)
}

func (o operatorHandler) RegisterAsset(
	ctx context.Context, req *pb.RegisterAssetRequest,
) (*pb.RegisterAssetReply, error) {
	return o.registerAsset(ctx, req)
}

func (o operatorHandler) AddAllowedAsset(
	ctx context.Context, req *pb.AddAllowedAssetRequest,
) (*pb.AddAllowedAssetReply, error) {
	return o.addAllowedAsset(ctx, req)
}

func (o operatorHandler) ListAssets(
	ctx context.Context, req *pb.ListAssetsRequest,
) (*pb.ListAssetsReply, error) {
	return listAssets(ctx, o.swapSvc)
}

func (o operatorHandler) SetCompetitionStartTime(
	ctx context.Context, req *pb.SetCompetitionTimeRequest,
) (*pb.SetCompetitionTimeReply, error) {
	return o.setCompetitionTime(ctx, req, o.competitionSvc.SetCompetitionStartTime)
}

func (o operatorHandler) SetCompetitionEndTime(
	ctx context.Context, req *pb.SetCompetitionTimeRequest,
) (*pb.SetCompetitionTimeReply, error) {
	return o.setCompetitionTime(ctx, req, o.competitionSvc.SetCompetitionEndTime)
}

func (o operatorHandler) GetCompetition(
	ctx context.Context, req *pb.GetCompetitionRequest,
) (*pb.GetCompetitionReply, error) {
	return getCompetition(ctx, o.competitionSvc)
}

func (o operatorHandler) Leaderboard(
	ctx context.Context, req *pb.LeaderboardRequest,
) (*pb.LeaderboardReply, error) {
	return leaderboard(ctx, o.competitionSvc)
}

func (o operatorHandler) setPrice(
	ctx context.Context, req *pb.SetPriceRequest,
) (*pb.SetPriceReply, error) {
	baseAsset, err := parseAsset(req.BaseAsset)
	if err != nil {
		return nil, invalidArgument(err)
	}
	quoteAsset, err := parseAsset(req.QuoteAsset)
	if err != nil {
		return nil, invalidArgument(err)
	}
	value, err := parseAmount(req.Price)
	if err != nil {
		return nil, invalidArgument(err)
	}

	p, err := o.oracleSvc.SetPrice(ctx, baseAsset, quoteAsset, value)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.SetPriceReply{Price: price(*p).toProto()}, nil
}

func (o operatorHandler) listPrices(
	ctx context.Context, _ *pb.ListPricesRequest,
) (*pb.ListPricesReply, error) {
	list, err := o.oracleSvc.ListPrices(ctx)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.ListPricesReply{Prices: prices(list).toProto()}, nil
}

func (o operatorHandler) registerAsset(
	ctx context.Context, req *pb.RegisterAssetRequest,
) (*pb.RegisterAssetReply, error) {
	assetID, err := parseAsset(req.ID)
	if err != nil {
		return nil, invalidArgument(err)
	}

	a, err := o.swapSvc.RegisterAsset(
		ctx, assetID, req.Ticker, uint(req.Precision),
	)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.RegisterAssetReply{Asset: asset(*a).toProto()}, nil
}

func (o operatorHandler) addAllowedAsset(
	ctx context.Context, req *pb.AddAllowedAssetRequest,
) (*pb.AddAllowedAssetReply, error) {
	assetID, err := parseAsset(req.AssetID)
	if err != nil {
		return nil, invalidArgument(err)
	}

	if err := o.swapSvc.AddAllowedAsset(ctx, assetID); err != nil {
		return nil, statusError(err)
	}
	return &pb.AddAllowedAssetReply{}, nil
}

func (o operatorHandler) setCompetitionTime(
	ctx context.Context, req *pb.SetCompetitionTimeRequest,
	set func(context.Context, time.Time) error,
) (*pb.SetCompetitionTimeReply, error) {
	t, err := parseTime(req.Time)
	if err != nil {
		return nil, invalidArgument(err)
	}

	if err := set(ctx, t); err != nil {
		return nil, statusError(err)
	}

	info, err := o.competitionSvc.GetCompetition(ctx)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.SetCompetitionTimeReply{
		Competition: competitionInfo{info}.toProto(),
	}, nil
}

func listAssets(
	ctx context.Context, swapSvc *swap.Service,
) (*pb.ListAssetsReply, error) {
	list, err := swapSvc.ListAssets(ctx)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.ListAssetsReply{Assets: assets(list).toProto()}, nil
}

func getCompetition(
	ctx context.Context, competitionSvc *competition.Service,
) (*pb.GetCompetitionReply, error) {
	info, err := competitionSvc.GetCompetition(ctx)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.GetCompetitionReply{
		Competition: competitionInfo{info}.toProto(),
	}, nil
}

func leaderboard(
	ctx context.Context, competitionSvc *competition.Service,
) (*pb.LeaderboardReply, error) {
	list, err := competitionSvc.Leaderboard(ctx)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.LeaderboardReply{Standings: standings(list).toProto()}, nil
}
