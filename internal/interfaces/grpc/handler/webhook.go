package grpchandler

import (
	"context"
	"errors"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
)

var errMissingWebhookID = errors.New("missing webhook id")

func (o operatorHandler) AddWebhook(
	ctx context.Context, req *pb.AddWebhookRequest,
) (*pb.AddWebhookReply, error) {
	return o.addWebhook(ctx, req)
}

func (o operatorHandler) RemoveWebhook(
	ctx context.Context, req *pb.RemoveWebhookRequest,
) (*pb.RemoveWebhookReply, error) {
	return o.removeWebhook(ctx, req)
}

func (o operatorHandler) ListWebhooks(
	ctx context.Context, req *pb.ListWebhooksRequest,
) (*pb.ListWebhooksReply, error) {
	return o.listWebhooks(ctx, req)
}

func (o operatorHandler) addWebhook(
	_ context.Context, req *pb.AddWebhookRequest,
) (*pb.AddWebhookReply, error) {
	hookID, err := o.pubsubSvc.Subscribe(
		req.Event, req.Endpoint, req.Secret,
	)
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.AddWebhookReply{ID: hookID}, nil
}

func (o operatorHandler) removeWebhook(
	_ context.Context, req *pb.RemoveWebhookRequest,
) (*pb.RemoveWebhookReply, error) {
	if req.ID == "" {
		return nil, invalidArgument(errMissingWebhookID)
	}
	if err := o.pubsubSvc.Unsubscribe(req.ID); err != nil {
		return nil, statusError(err)
	}
	return &pb.RemoveWebhookReply{}, nil
}

func (o operatorHandler) listWebhooks(
	_ context.Context, req *pb.ListWebhooksRequest,
) (*pb.ListWebhooksReply, error) {
	// An empty event lists the webhooks of every topic.
	hooks := o.pubsubSvc.ListSubscriptionsForTopic(req.Event)
	return &pb.ListWebhooksReply{Webhooks: webhooks(hooks).toProto()}, nil
}
