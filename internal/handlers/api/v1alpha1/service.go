// Package v1alpha1 handles the decision API grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// DecisionServiceName is the fully qualified gRPC service name
const DecisionServiceName = "showdownplayer.api.v1alpha1.DecisionService"

// Full method names
const (
	DecisionServiceDecideFullMethodName      = "/" + DecisionServiceName + "/Decide"
	DecisionServiceReportErrorFullMethodName = "/" + DecisionServiceName + "/ReportError"
	DecisionServiceGetOptionsFullMethodName  = "/" + DecisionServiceName + "/GetOptions"
	DecisionServiceEndBattleFullMethodName   = "/" + DecisionServiceName + "/EndBattle"
)

// DecisionServiceServer is the server API for DecisionService.
// Every RPC takes and returns a google.protobuf.Struct.
type DecisionServiceServer interface {
	Decide(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReportError(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetOptions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type structMethod func(DecisionServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call structMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DecisionServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DecisionServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DecisionServiceDesc is the grpc.ServiceDesc for DecisionService
var DecisionServiceDesc = grpc.ServiceDesc{
	ServiceName: DecisionServiceName,
	HandlerType: (*DecisionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Decide",
			Handler:    unaryHandler(DecisionServiceDecideFullMethodName, DecisionServiceServer.Decide),
		},
		{
			MethodName: "ReportError",
			Handler:    unaryHandler(DecisionServiceReportErrorFullMethodName, DecisionServiceServer.ReportError),
		},
		{
			MethodName: "GetOptions",
			Handler:    unaryHandler(DecisionServiceGetOptionsFullMethodName, DecisionServiceServer.GetOptions),
		},
		{
			MethodName: "EndBattle",
			Handler:    unaryHandler(DecisionServiceEndBattleFullMethodName, DecisionServiceServer.EndBattle),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "showdownplayer/api/v1alpha1/decision.proto",
}

// RegisterDecisionServiceServer registers srv on s
func RegisterDecisionServiceServer(s grpc.ServiceRegistrar, srv DecisionServiceServer) {
	s.RegisterService(&DecisionServiceDesc, srv)
}

// DecisionServiceClient is the client API for DecisionService
type DecisionServiceClient interface {
	Decide(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ReportError(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetOptions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	EndBattle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type decisionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDecisionServiceClient creates a client over an existing connection
func NewDecisionServiceClient(cc grpc.ClientConnInterface) DecisionServiceClient {
	return &decisionServiceClient{cc: cc}
}

func (c *decisionServiceClient) invoke(
	ctx context.Context,
	method string,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *decisionServiceClient) Decide(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DecisionServiceDecideFullMethodName, in, opts...)
}

func (c *decisionServiceClient) ReportError(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DecisionServiceReportErrorFullMethodName, in, opts...)
}

func (c *decisionServiceClient) GetOptions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DecisionServiceGetOptionsFullMethodName, in, opts...)
}

func (c *decisionServiceClient) EndBattle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DecisionServiceEndBattleFullMethodName, in, opts...)
}
