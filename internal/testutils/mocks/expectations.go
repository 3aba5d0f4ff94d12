// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/agent-sandbox/internal/clients/llm"
	llmmock "github.com/KirkDiggler/agent-sandbox/internal/clients/llm/mock"
	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/npc"
	npcmock "github.com/KirkDiggler/agent-sandbox/internal/repositories/npc/mock"
)

// ExpectNPCGet sets up a mock expectation for getting an NPC from repository
func ExpectNPCGet(
	ctx context.Context, mockRepo *npcmock.MockRepository,
	npcID string, result *entities.NPC, err error,
) *gomock.Call {
	var out *npc.GetOutput
	if result != nil {
		out = &npc.GetOutput{NPC: result}
	}
	return mockRepo.EXPECT().
		Get(ctx, npc.GetInput{ID: npcID}).
		Return(out, err)
}

// ExpectCompletion sets up the gateway to answer one call on a tier
func ExpectCompletion(mockClient *llmmock.MockClient, tier llm.Tier, text string) *gomock.Call {
	return mockClient.EXPECT().
		Complete(gomock.Any(), gomock.Cond(func(x any) bool {
			in, ok := x.(*llm.CompleteInput)
			return ok && in.Tier == tier
		})).
		Return(&llm.CompleteOutput{Text: text, Degraded: text == ""}, nil)
}
