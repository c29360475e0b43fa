package getver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/getver"
	pb "github.com/oshokin/getver/internal/pb/getver/v1"
)

// Resolver abstracts the version resolution the transport layer depends on.
type Resolver interface {
	Resolve(ctx context.Context, packageName string, opts ...getver.ResolveOption) string
}

// Server implements the VersionService gRPC API.
type Server struct {
	// resolver answers version queries.
	resolver Resolver
	// defaultPackage is resolved when a request names no package.
	defaultPackage string
}

// NewServer wires the provided resolver into a gRPC handler.
func NewServer(resolver Resolver, defaultPackage string) *Server {
	return &Server{
		resolver:       resolver,
		defaultPackage: defaultPackage,
	}
}

// GetVersion resolves the requested package. Resolution outcomes, including
// the not-found sentinels, are returned as values rather than RPC errors.
func (s *Server) GetVersion(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	packageName, err := stringField(req, pb.FieldPackage)
	if err != nil {
		return nil, err
	}

	if packageName == "" {
		packageName = s.defaultPackage
	}

	if packageName == "" {
		return nil, status.Error(codes.InvalidArgument, "package is required")
	}

	referencePath, err := stringField(req, pb.FieldReferencePath)
	if err != nil {
		return nil, err
	}

	includeHead, err := boolField(req, pb.FieldIncludeHead)
	if err != nil {
		return nil, err
	}

	version := s.resolver.Resolve(ctx, packageName,
		getver.WithReferencePath(referencePath),
		getver.WithHead(includeHead),
	)

	return wrapperspb.String(version), nil
}

// stringField returns a string field, treating absent and null values as empty.
func stringField(req *structpb.Struct, name string) (string, error) {
	value, ok := req.GetFields()[name]
	if !ok || value == nil {
		return "", nil
	}

	switch kind := value.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", name)
	}
}

// boolField returns a boolean field, treating absent and null values as false.
func boolField(req *structpb.Struct, name string) (bool, error) {
	value, ok := req.GetFields()[name]
	if !ok || value == nil {
		return false, nil
	}

	switch kind := value.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return kind.BoolValue, nil
	case *structpb.Value_NullValue:
		return false, nil
	default:
		return false, status.Errorf(codes.InvalidArgument, "%s must be a boolean", name)
	}
}
