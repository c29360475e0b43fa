// Package getverv1 declares the getver.v1.VersionService gRPC contract.
//
// The service speaks well-known protobuf types only, so no generated code is
// needed: requests are google.protobuf.Struct values and replies are
// google.protobuf.StringValue.
package getverv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "getver.v1.VersionService"
	// GetVersionMethod is the full method name of the GetVersion RPC.
	GetVersionMethod = "/" + ServiceName + "/GetVersion"

	// FieldPackage is the request field naming the module to resolve.
	FieldPackage = "package"
	// FieldReferencePath is the request field with the checkout search start.
	FieldReferencePath = "reference_path"
	// FieldIncludeHead is the request field toggling checkout augmentation.
	FieldIncludeHead = "include_head"
)

// VersionServiceServer is the server API for VersionService.
type VersionServiceServer interface {
	GetVersion(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error)
}

// NewGetVersionRequest builds a GetVersion request.
func NewGetVersionRequest(packageName, referencePath string, includeHead bool) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldPackage:       structpb.NewStringValue(packageName),
			FieldReferencePath: structpb.NewStringValue(referencePath),
			FieldIncludeHead:   structpb.NewBoolValue(includeHead),
		},
	}
}

// RegisterVersionServiceServer registers srv on the gRPC service registrar.
func RegisterVersionServiceServer(registrar grpc.ServiceRegistrar, srv VersionServiceServer) {
	registrar.RegisterService(&VersionServiceDesc, srv)
}

// VersionServiceDesc is the grpc.ServiceDesc for VersionService.
//
//nolint:gochecknoglobals // grpc requires an addressable descriptor.
var VersionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VersionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetVersion",
			Handler:    getVersionHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "getver/v1/version.proto",
}

// getVersionHandler decodes the request and dispatches it through the interceptor chain.
func getVersionHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature is fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	server, _ := srv.(VersionServiceServer)
	if interceptor == nil {
		return server.GetVersion(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetVersionMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		request, _ := req.(*structpb.Struct)
		return server.GetVersion(ctx, request)
	}

	return interceptor(ctx, in, info, handler)
}

// VersionServiceClient is the client API for VersionService.
type VersionServiceClient interface {
	GetVersion(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

// versionServiceClient invokes VersionService over a client connection.
type versionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewVersionServiceClient wraps a connection in a VersionService client.
//
//nolint:ireturn // Mirrors the shape of generated gRPC clients.
func NewVersionServiceClient(cc grpc.ClientConnInterface) VersionServiceClient {
	return &versionServiceClient{cc: cc}
}

// GetVersion calls the GetVersion RPC.
func (c *versionServiceClient) GetVersion(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GetVersionMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
