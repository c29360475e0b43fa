//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/oshokin/getver/internal/config"
	pb "github.com/oshokin/getver/internal/pb/getver/v1"
)

// Client wraps the gRPC VersionService client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the version server.
	conn *grpc.ClientConn
	// api is the VersionService client interface.
	api pb.VersionServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errNotConnected is returned when a call is made on a client without a connection.
	errNotConnected = errors.New("client is not connected")
	// errUnknownLogLevel is returned for a log level zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Dial establishes a gRPC connection to the version server.
// Note: this uses insecure transport credentials; the service only reveals
// version strings, deploy on a trusted network anyway.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	// Use the non-context NewClient API recommended by grpc-go
	// (DialContext is deprecated as of grpc-go v1.60+).
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial version server: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         pb.NewVersionServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// GetVersion asks the server to resolve packageName.
func (c *Client) GetVersion(ctx context.Context, packageName, referencePath string, includeHead bool) (string, error) {
	if c == nil || c.api == nil {
		return "", errNotConnected
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.GetVersion(callCtx, pb.NewGetVersionRequest(packageName, referencePath, includeHead))
	if err != nil {
		return "", fmt.Errorf("get version: %w", err)
	}

	return response.GetValue(), nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
