package colosseumv1

import (
	"context"

	"google.golang.org/grpc"
)

func unaryMethod[Req, Res any](
	serviceName, methodName string,
	call func(srv interface{}, ctx context.Context, req *Req) (*Res, error),
) grpc.MethodDesc {
	fullMethod := "/" + serviceName + "/" + methodName
	return grpc.MethodDesc{
		MethodName: methodName,
		Handler: func(
			srv interface{}, ctx context.Context, dec func(interface{}) error,
			interceptor grpc.UnaryServerInterceptor,
		) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func invoke(
	ctx context.Context, cc grpc.ClientConnInterface,
	serviceName, methodName string, in, out interface{}, opts []grpc.CallOption,
) error {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	return cc.Invoke(ctx, "/"+serviceName+"/"+methodName, in, out, opts...)
}
