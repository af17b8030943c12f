package colosseumv1

import (
	"context"

	"google.golang.org/grpc"
)

const TraderServiceName = "colosseum.v1.TraderService"

// TraderServer is the public interface of the daemon used by participants.
type TraderServer interface {
	GetCompetition(context.Context, *GetCompetitionRequest) (*GetCompetitionReply, error)
	GetCompetitionStartTime(context.Context, *GetCompetitionTimeRequest) (*GetCompetitionTimeReply, error)
	GetCompetitionEndTime(context.Context, *GetCompetitionTimeRequest) (*GetCompetitionTimeReply, error)
	GetPrice(context.Context, *GetPriceRequest) (*GetPriceReply, error)
	ListAssets(context.Context, *ListAssetsRequest) (*ListAssetsReply, error)
	Register(context.Context, *RegisterRequest) (*RegisterReply, error)
	Quote(context.Context, *QuoteRequest) (*QuoteReply, error)
	Trade(context.Context, *TradeRequest) (*TradeReply, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceReply, error)
	ListTrades(context.Context, *ListTradesRequest) (*ListTradesReply, error)
	Leaderboard(context.Context, *LeaderboardRequest) (*LeaderboardReply, error)
}

func RegisterTraderServer(s grpc.ServiceRegistrar, srv TraderServer) {
	s.RegisterService(&TraderServiceDesc, srv)
}

func trader(srv interface{}) TraderServer {
	return srv.(TraderServer)
}

var TraderServiceDesc = grpc.ServiceDesc{
	ServiceName: TraderServiceName,
	HandlerType: (*TraderServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(TraderServiceName, "GetCompetition",
			func(srv interface{}, ctx context.Context, req *GetCompetitionRequest) (*GetCompetitionReply, error) {
				return trader(srv).GetCompetition(ctx, req)
			}),
		unaryMethod(TraderServiceName, "GetCompetitionStartTime",
			func(srv interface{}, ctx context.Context, req *GetCompetitionTimeRequest) (*GetCompetitionTimeReply, error) {
				return trader(srv).GetCompetitionStartTime(ctx, req)
			}),
		unaryMethod(TraderServiceName, "GetCompetitionEndTime",
			func(srv interface{}, ctx context.Context, req *GetCompetitionTimeRequest) (*GetCompetitionTimeReply, error) {
				return trader(srv).GetCompetitionEndTime(ctx, req)
			}),
		unaryMethod(TraderServiceName, "GetPrice",
			func(srv interface{}, ctx context.Context, req *GetPriceRequest) (*GetPriceReply, error) {
				return trader(srv).GetPrice(ctx, req)
			}),
		unaryMethod(TraderServiceName, "ListAssets",
			func(srv interface{}, ctx context.Context, req *ListAssetsRequest) (*ListAssetsReply, error) {
				return trader(srv).ListAssets(ctx, req)
			}),
		unaryMethod(TraderServiceName, "Register",
			func(srv interface{}, ctx context.Context, req *RegisterRequest) (*RegisterReply, error) {
				return trader(srv).Register(ctx, req)
			}),
		unaryMethod(TraderServiceName, "Quote",
			func(srv interface{}, ctx context.Context, req *QuoteRequest) (*QuoteReply, error) {
				return trader(srv).Quote(ctx, req)
			}),
		unaryMethod(TraderServiceName, "Trade",
			func(srv interface{}, ctx context.Context, req *TradeRequest) (*TradeReply, error) {
				return trader(srv).Trade(ctx, req)
			}),
		unaryMethod(TraderServiceName, "GetBalance",
			func(srv interface{}, ctx context.Context, req *GetBalanceRequest) (*GetBalanceReply, error) {
				return trader(srv).GetBalance(ctx, req)
			}),
		unaryMethod(TraderServiceName, "ListTrades",
			func(srv interface{}, ctx context.Context, req *ListTradesRequest) (*ListTradesReply, error) {
				return trader(srv).ListTrades(ctx, req)
			}),
		unaryMethod(TraderServiceName, "Leaderboard",
			func(srv interface{}, ctx context.Context, req *LeaderboardRequest) (*LeaderboardReply, error) {
				return trader(srv).Leaderboard(ctx, req)
			}),
	},
	Streams: []grpc.StreamDesc{},
}

// TraderClient is the client API for the trader interface.
type TraderClient struct {
	cc grpc.ClientConnInterface
}

func NewTraderClient(cc grpc.ClientConnInterface) *TraderClient {
	return &TraderClient{cc}
}

func (c *TraderClient) GetCompetition(ctx context.Context, in *GetCompetitionRequest, opts ...grpc.CallOption) (*GetCompetitionReply, error) {
	out := new(GetCompetitionReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "GetCompetition", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TraderClient) GetCompetitionStartTime(ctx context.Context, in *GetCompetitionTimeRequest, opts ...grpc.CallOption) (*GetCompetitionTimeReply, error) {
	out := new(GetCompetitionTimeReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "GetCompetitionStartTime", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TraderClient) GetCompetitionEndTime(ctx context.Context, in *GetCompetitionTimeRequest, opts ...grpc.CallOption) (*GetCompetitionTimeReply, error) {
	out := new(GetCompetitionTimeReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "GetCompetitionEndTime", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TraderClient) GetPrice(ctx context.Context, in *GetPriceRequest, opts ...grpc.CallOption) (*GetPriceReply, error) {
	out := new(GetPriceReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "GetPrice", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TraderClient) ListAssets(ctx context.Context, in *ListAssetsRequest, opts ...grpc.CallOption) (*ListAssetsReply, error) {
	out := new(ListAssetsReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "ListAssets", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TraderClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterReply, error) {
	out := new(RegisterReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "Register", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TraderClient) Quote(ctx context.Context, in *QuoteRequest, opts ...grpc.CallOption) (*QuoteReply, error) {
	out := new(QuoteReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "Quote", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TraderClient) Trade(ctx context.Context, in *TradeRequest, opts ...grpc.CallOption) (*TradeReply, error) {
	out := new(TradeReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "Trade", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TraderClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceReply, error) {
	out := new(GetBalanceReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "GetBalance", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TraderClient) ListTrades(ctx context.Context, in *ListTradesRequest, opts ...grpc.CallOption) (*ListTradesReply, error) {
	out := new(ListTradesReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "ListTrades", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TraderClient) Leaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardReply, error) {
	out := new(LeaderboardReply)
	if err := invoke(ctx, c.cc, TraderServiceName, "Leaderboard", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
