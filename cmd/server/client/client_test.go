package client

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/agent-sandbox/internal/errors"
)

func TestRPCErrorIncludesCodeAndMeta(t *testing.T) {
	grpcErr := errors.ToGRPCError(errors.NotFound("npc not found").WithMeta("npc_id", "npc_ada"))

	err := rpcError("failed to whisper", grpcErr)

	assert.EqualError(t, err, "failed to whisper: NOT_FOUND: npc not found (npc_id=npc_ada)")
}

func TestRPCErrorWithoutMeta(t *testing.T) {
	grpcErr := errors.ToGRPCError(errors.Aborted("a turn is already in progress"))

	err := rpcError("failed to advance turn", grpcErr)

	assert.EqualError(t, err, "failed to advance turn: ABORTED: a turn is already in progress")
}

func TestRPCErrorPlainError(t *testing.T) {
	err := rpcError("failed to get state", fmt.Errorf("connection refused"))

	assert.Contains(t, err.Error(), "failed to get state: ")
	assert.Contains(t, err.Error(), "connection refused")
}
