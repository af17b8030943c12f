package grpchandler

import (
	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/colosseum-network/colosseumd/internal/core/application/competition"
	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
)

type price domain.Price

func (p price) toProto() *pb.Price {
	return &pb.Price{
		BaseAsset:  p.BaseAsset,
		QuoteAsset: p.QuoteAsset,
		Price:      p.Value.String(),
		ObservedAt: p.ObservedAt.Unix(),
	}
}

type prices []domain.Price

func (p prices) toProto() []*pb.Price {
	list := make([]*pb.Price, 0, len(p))
	for _, v := range p {
		list = append(list, price(v).toProto())
	}
	return list
}

type asset domain.Asset

func (a asset) toProto() *pb.Asset {
	return &pb.Asset{
		ID:        a.ID,
		Ticker:    a.Ticker,
		Precision: uint32(a.Precision),
		Allowed:   a.Allowed,
	}
}

type assets []domain.Asset

func (a assets) toProto() []*pb.Asset {
	list := make([]*pb.Asset, 0, len(a))
	for _, v := range a {
		list = append(list, asset(v).toProto())
	}
	return list
}

type vault struct {
	*domain.Vault
}

func (v vault) toProto() []*pb.Balance {
	assets := v.Assets()
	list := make([]*pb.Balance, 0, len(assets))
	for _, a := range assets {
		list = append(list, &pb.Balance{
			Asset:  a,
			Amount: v.Balance(a).String(),
		})
	}
	return list
}

type trade domain.Trade

func (t trade) toProto() *pb.Trade {
	return &pb.Trade{
		ID:         t.ID,
		FromAsset:  t.FromAsset,
		ToAsset:    t.ToAsset,
		FromAmount: t.FromAmount.String(),
		ToAmount:   t.ToAmount.String(),
		Rate:       t.Rate.String(),
		ExecutedAt: t.ExecutedAt.Unix(),
	}
}

type trades []domain.Trade

func (t trades) toProto() []*pb.Trade {
	list := make([]*pb.Trade, 0, len(t))
	for _, v := range t {
		list = append(list, trade(v).toProto())
	}
	return list
}

type competitionInfo struct {
	*competition.Info
}

func (i competitionInfo) toProto() *pb.Competition {
	return &pb.Competition{
		RegistrationStart: unixOrZero(i.RegistrationStart),
		RegistrationEnd:   unixOrZero(i.RegistrationEnd),
		Start:             i.Start.Unix(),
		End:               i.End.Unix(),
		StableAsset:       i.StableAsset,
		InitialGrant:      i.InitialGrant.String(),
		Phase:             i.Phase.String(),
		Now:               i.Now.Unix(),
	}
}

type standings []competition.Standing

func (s standings) toProto() []*pb.Standing {
	list := make([]*pb.Standing, 0, len(s))
	for _, v := range s {
		list = append(list, &pb.Standing{
			Rank:  int32(v.Rank),
			Owner: v.Owner,
			Total: v.Total.String(),
		})
	}
	return list
}

type webhooks []ports.Subscription

func (w webhooks) toProto() []*pb.Webhook {
	list := make([]*pb.Webhook, 0, len(w))
	for _, v := range w {
		list = append(list, &pb.Webhook{
			ID:        v.Id(),
			Event:     v.Topic(),
			Endpoint:  v.NotifyAt(),
			IsSecured: v.IsSecured(),
		})
	}
	return list
}
