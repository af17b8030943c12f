package interceptor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var info = &grpc.UnaryServerInfo{FullMethod: "/colosseum.v1.TraderService/Trade"}

func TestUnaryChain(t *testing.T) {
	res, err := unaryChain()(context.Background(), "req", info,
		func(_ context.Context, req interface{}) (interface{}, error) {
			return req, nil
		},
	)
	require.NoError(t, err)
	require.Equal(t, "req", res)

	_, err = unaryChain()(context.Background(), "req", info,
		func(context.Context, interface{}) (interface{}, error) {
			return nil, status.Error(codes.NotFound, "vault not found")
		},
	)
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestUnaryChainRecovery(t *testing.T) {
	_, err := unaryChain()(context.Background(), "req", info,
		func(context.Context, interface{}) (interface{}, error) {
			panic("boom")
		},
	)
	require.Equal(t, codes.Internal, status.Code(err))
}
