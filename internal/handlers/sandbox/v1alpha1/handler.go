// Package v1alpha1 serves the sandbox gRPC service
package v1alpha1

import (
	"context"
	"encoding/json"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/handlers/views"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/state"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/turn"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/whisper"
)

// HandlerConfig holds dependencies for the sandbox handler
type HandlerConfig struct {
	TurnService    turn.Service
	WhisperService whisper.Service
	StateService   state.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.TurnService == nil {
		vb.RequiredField("TurnService")
	}
	if c.WhisperService == nil {
		vb.RequiredField("WhisperService")
	}
	if c.StateService == nil {
		vb.RequiredField("StateService")
	}
	return vb.Build()
}

// Handler implements SandboxServiceServer
type Handler struct {
	turnService    turn.Service
	whisperService whisper.Service
	stateService   state.Service
}

var _ SandboxServiceServer = (*Handler)(nil)

// NewHandler creates a new sandbox handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		turnService:    cfg.TurnService,
		whisperService: cfg.WhisperService,
		stateService:   cfg.StateService,
	}, nil
}

// AdvanceTurn runs one turn
func (h *Handler) AdvanceTurn(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.turnService.AdvanceTurn(ctx, &turn.AdvanceTurnInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(views.NewTurnResponse(out))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// Whisper expects {"npc_id": string, "message": string}
func (h *Handler) Whisper(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	fields := req.GetFields()

	_, err := h.whisperService.Whisper(ctx, &whisper.WhisperInput{
		NPCID:   fields["npc_id"].GetStringValue(),
		Message: fields["message"].GetStringValue(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &emptypb.Empty{}, nil
}

// GetState accepts an optional {"log_limit": number}
func (h *Handler) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit := int(req.GetFields()["log_limit"].GetNumberValue())

	out, err := h.stateService.GetState(ctx, &state.GetStateInput{LogLimit: limit})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(views.NewStateResponse(out))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// toStruct round-trips v through JSON so the struct matches the HTTP body
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal response")
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build response struct")
	}
	return s, nil
}
