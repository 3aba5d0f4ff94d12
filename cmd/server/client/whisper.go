package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
)

var whisperCmd = &cobra.Command{
	Use:   "whisper [npc-id] [message...]",
	Short: "Plant a message in an NPC's mind",
	Long: `Whisper stores the message as a top-importance memory. Example:

  whisper npc_ada Go to the lake, there is food there`,
	Args: cobra.MinimumNArgs(2),
	RunE: whisperToNPC,
}

func whisperToNPC(_ *cobra.Command, args []string) error {
	npcID := args[0]
	message := strings.Join(args[1:], " ")

	client, cleanup, err := createSandboxClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{"npc_id": npcID, "message": message})
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if _, err := client.Whisper(ctx, req); err != nil {
		return rpcError("failed to whisper", err)
	}

	fmt.Printf("Whispered to %s.\n", npcID)
	return nil
}
