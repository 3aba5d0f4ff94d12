package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
)

var advanceTurnCmd = &cobra.Command{
	Use:   "advance-turn",
	Short: "Advance the world by one turn",
	Args:  cobra.NoArgs,
	RunE:  advanceTurn,
}

func advanceTurn(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createSandboxClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.AdvanceTurn(ctx, &emptypb.Empty{})
	if err != nil {
		return rpcError("failed to advance turn", err)
	}

	fields := resp.GetFields()
	if fields["game_over"].GetBoolValue() {
		fmt.Println("Game Over: nobody is left alive.")
		return nil
	}

	fmt.Printf("Turn %d\n", int(fields["turn"].GetNumberValue()))
	fmt.Printf("===========\n")
	for _, v := range fields["outcomes"].GetListValue().GetValues() {
		o := v.GetStructValue().GetFields()
		fmt.Printf("\n%s [%s] at %s\n", o["name"].GetStringValue(), o["action_type"].GetStringValue(), o["location"].GetStringValue())
		fmt.Printf("  %s\n", o["description"].GetStringValue())
		if speech := o["speech"].GetStringValue(); speech != "" {
			fmt.Printf("  says: %q\n", speech)
		}
		if o["died"].GetBoolValue() {
			fmt.Printf("  ☠ died\n")
		}
	}
	if added := int(fields["construction_added"].GetNumberValue()); added > 0 {
		fmt.Printf("\nConstruction +%d\n", added)
	}
	if summary := fields["summary"].GetStringValue(); summary != "" {
		fmt.Printf("\n%s\n", summary)
	}

	return nil
}
