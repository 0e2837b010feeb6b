// Package client provides CLI commands calling the UI gRPC service
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/debnet/fallout/internal/errors"
	uiv1 "github.com/debnet/fallout/internal/handlers/ui/v1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

func init() {
	for _, cmd := range []*cobra.Command{SearchCmd, BindingsCmd, SimulateCmd, RollCmd, PanelCmd} {
		cmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
		cmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	}
}

// createUIClient creates a UI service client
func createUIClient() (uiv1.UIServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return uiv1.NewUIServiceClient(conn), cleanup, nil
}

type call func(uiv1.UIServiceClient, context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error)

// invoke sends req through fn and returns the response fields
func invoke(fn call, req map[string]any) (map[string]any, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	client, cleanup, err := createUIClient()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := fn(client, ctx, in)
	if err != nil {
		return nil, errors.FromGRPCError(err)
	}
	return resp.AsMap(), nil
}
