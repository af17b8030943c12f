package colosseumv1

import (
	"context"

	"google.golang.org/grpc"
)

const OperatorServiceName = "colosseum.v1.OperatorService"

// OperatorServer is the admin interface of the daemon.
type OperatorServer interface {
	SetPrice(context.Context, *SetPriceRequest) (*SetPriceReply, error)
	ListPrices(context.Context, *ListPricesRequest) (*ListPricesReply, error)
	RegisterAsset(context.Context, *RegisterAssetRequest) (*RegisterAssetReply, error)
	AddAllowedAsset(context.Context, *AddAllowedAssetRequest) (*AddAllowedAssetReply, error)
	ListAssets(context.Context, *ListAssetsRequest) (*ListAssetsReply, error)
	SetCompetitionStartTime(context.Context, *SetCompetitionTimeRequest) (*SetCompetitionTimeReply, error)
	SetCompetitionEndTime(context.Context, *SetCompetitionTimeRequest) (*SetCompetitionTimeReply, error)
	GetCompetition(context.Context, *GetCompetitionRequest) (*GetCompetitionReply, error)
	Leaderboard(context.Context, *LeaderboardRequest) (*LeaderboardReply, error)
	AddWebhook(context.Context, *AddWebhookRequest) (*AddWebhookReply, error)
	RemoveWebhook(context.Context, *RemoveWebhookRequest) (*RemoveWebhookReply, error)
	ListWebhooks(context.Context, *ListWebhooksRequest) (*ListWebhooksReply, error)
}

func RegisterOperatorServer(s grpc.ServiceRegistrar, srv OperatorServer) {
	s.RegisterService(&OperatorServiceDesc, srv)
}

func operator(srv interface{}) OperatorServer {
	return srv.(OperatorServer)
}

var OperatorServiceDesc = grpc.ServiceDesc{
	ServiceName: OperatorServiceName,
	HandlerType: (*OperatorServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(OperatorServiceName, "SetPrice",
			func(srv interface{}, ctx context.Context, req *SetPriceRequest) (*SetPriceReply, error) {
				return operator(srv).SetPrice(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "ListPrices",
			func(srv interface{}, ctx context.Context, req *ListPricesRequest) (*ListPricesReply, error) {
				return operator(srv).ListPrices(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "RegisterAsset",
			func(srv interface{}, ctx context.Context, req *RegisterAssetRequest) (*RegisterAssetReply, error) {
				return operator(srv).RegisterAsset(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "AddAllowedAsset",
			func(srv interface{}, ctx context.Context, req *AddAllowedAssetRequest) (*AddAllowedAssetReply, error) {
				return operator(srv).AddAllowedAsset(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "ListAssets",
			func(srv interface{}, ctx context.Context, req *ListAssetsRequest) (*ListAssetsReply, error) {
				return operator(srv).ListAssets(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "SetCompetitionStartTime",
			func(srv interface{}, ctx context.Context, req *SetCompetitionTimeRequest) (*SetCompetitionTimeReply, error) {
				return operator(srv).SetCompetitionStartTime(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "SetCompetitionEndTime",
			func(srv interface{}, ctx context.Context, req *SetCompetitionTimeRequest) (*SetCompetitionTimeReply, error) {
				return operator(srv).SetCompetitionEndTime(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "GetCompetition",
			func(srv interface{}, ctx context.Context, req *GetCompetitionRequest) (*GetCompetitionReply, error) {
				return operator(srv).GetCompetition(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "Leaderboard",
			func(srv interface{}, ctx context.Context, req *LeaderboardRequest) (*LeaderboardReply, error) {
				return operator(srv).Leaderboard(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "AddWebhook",
			func(srv interface{}, ctx context.Context, req *AddWebhookRequest) (*AddWebhookReply, error) {
				return operator(srv).AddWebhook(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "RemoveWebhook",
			func(srv interface{}, ctx context.Context, req *RemoveWebhookRequest) (*RemoveWebhookReply, error) {
				return operator(srv).RemoveWebhook(ctx, req)
			}),
		unaryMethod(OperatorServiceName, "ListWebhooks",
			func(srv interface{}, ctx context.Context, req *ListWebhooksRequest) (*ListWebhooksReply, error) {
				return operator(srv).ListWebhooks(ctx, req)
			}),
	},
	Streams: []grpc.StreamDesc{},
}

// OperatorClient is the client API for the operator interface.
type OperatorClient struct {
	cc grpc.ClientConnInterface
}

func NewOperatorClient(cc grpc.ClientConnInterface) *OperatorClient {
	return &OperatorClient{cc}
}

func (c *OperatorClient) SetPrice(ctx context.Context, in *SetPriceRequest, opts ...grpc.CallOption) (*SetPriceReply, error) {
	out := new(SetPriceReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "SetPrice", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) ListPrices(ctx context.Context, in *ListPricesRequest, opts ...grpc.CallOption) (*ListPricesReply, error) {
	out := new(ListPricesReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "ListPrices", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) RegisterAsset(ctx context.Context, in *RegisterAssetRequest, opts ...grpc.CallOption) (*RegisterAssetReply, error) {
	out := new(RegisterAssetReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "RegisterAsset", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) AddAllowedAsset(ctx context.Context, in *AddAllowedAssetRequest, opts ...grpc.CallOption) (*AddAllowedAssetReply, error) {
	out := new(AddAllowedAssetReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "AddAllowedAsset", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) ListAssets(ctx context.Context, in *ListAssetsRequest, opts ...grpc.CallOption) (*ListAssetsReply, error) {
	out := new(ListAssetsReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "ListAssets", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) SetCompetitionStartTime(ctx context.Context, in *SetCompetitionTimeRequest, opts ...grpc.CallOption) (*SetCompetitionTimeReply, error) {
	out := new(SetCompetitionTimeReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "SetCompetitionStartTime", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) SetCompetitionEndTime(ctx context.Context, in *SetCompetitionTimeRequest, opts ...grpc.CallOption) (*SetCompetitionTimeReply, error) {
	out := new(SetCompetitionTimeReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "SetCompetitionEndTime", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) GetCompetition(ctx context.Context, in *GetCompetitionRequest, opts ...grpc.CallOption) (*GetCompetitionReply, error) {
	out := new(GetCompetitionReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "GetCompetition", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) Leaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardReply, error) {
	out := new(LeaderboardReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "Leaderboard", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) AddWebhook(ctx context.Context, in *AddWebhookRequest, opts ...grpc.CallOption) (*AddWebhookReply, error) {
	out := new(AddWebhookReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "AddWebhook", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) RemoveWebhook(ctx context.Context, in *RemoveWebhookRequest, opts ...grpc.CallOption) (*RemoveWebhookReply, error) {
	out := new(RemoveWebhookReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "RemoveWebhook", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorClient) ListWebhooks(ctx context.Context, in *ListWebhooksRequest, opts ...grpc.CallOption) (*ListWebhooksReply, error) {
	out := new(ListWebhooksReply)
	if err := invoke(ctx, c.cc, OperatorServiceName, "ListWebhooks", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
