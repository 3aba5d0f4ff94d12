// Package main is the entry point for the agent sandbox server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/agent-sandbox/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "agent-sandbox",
	Short: "Agent Sandbox server",
	Long:  `Agent Sandbox runs a survival world whose NPCs are driven by language models, served over gRPC and HTTP.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
