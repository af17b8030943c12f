package interceptor

import (
	"context"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func unaryLogger(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	log.Debug(info.FullMethod)
	res, err := handler(ctx, req)
	if err != nil {
		logError(info.FullMethod, err)
	}
	return res, err
}

func streamLogger(
	srv interface{},
	stream grpc.ServerStream,
	info *grpc.StreamServerInfo,
	handler grpc.StreamHandler,
) error {
	log.Debug(info.FullMethod)
	err := handler(srv, stream)
	if err != nil {
		logError(info.FullMethod, err)
	}
	return err
}

func logError(method string, err error) {
	entry := log.WithError(err).WithField("method", method)
	if status.Code(err) == codes.Internal {
		entry.Warn("request failed")
		return
	}
	entry.Debug("request rejected")
}

func recoveryHandler(p interface{}) error {
	log.Errorf("recovered from panic: %v", p)
	return status.Error(codes.Internal, "internal error")
}
