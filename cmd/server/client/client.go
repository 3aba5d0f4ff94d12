// Package client provides commands that exercise the sandbox gRPC service
package client

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/handlers/sandbox/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the sandbox service",
	Long:  `Client commands drive a running sandbox server by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 90*time.Second, "Request timeout")

	ClientCmd.AddCommand(advanceTurnCmd)
	ClientCmd.AddCommand(whisperCmd)
	ClientCmd.AddCommand(stateCmd)
}

// createSandboxClient creates a sandbox service client
func createSandboxClient() (v1alpha1.SandboxServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewSandboxServiceClient(conn), cleanup, nil
}

// printJSON writes a response as indented JSON
func printJSON(m proto.Message) error {
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// rpcError turns a gRPC status into "<what>: CODE: message (k=v, ...)"
func rpcError(what string, err error) error {
	converted := errors.FromGRPCError(err)
	msg := fmt.Sprintf("%s: %s: %s", what, errors.GetCode(converted), errors.GetMessage(converted))

	meta := errors.GetMeta(converted)
	if len(meta) == 0 {
		return fmt.Errorf("%s", msg)
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return fmt.Errorf("%s (%s)", msg, strings.Join(pairs, ", "))
}
