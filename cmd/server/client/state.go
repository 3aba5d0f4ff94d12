package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
)

var stateLogs int

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print a snapshot of the world",
	Args:  cobra.NoArgs,
	RunE:  getState,
}

func init() {
	stateCmd.Flags().IntVar(&stateLogs, "logs", 20, "Number of recent log entries")
}

func getState(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createSandboxClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{"log_limit": stateLogs})
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.GetState(ctx, req)
	if err != nil {
		return rpcError("failed to get state", err)
	}

	return printJSON(resp)
}
