// Package web serves the JSON API used by the browser dashboard
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/handlers/views"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/state"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/turn"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/whisper"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 64 << 10

// HandlerConfig holds dependencies for the web handler
type HandlerConfig struct {
	TurnService    turn.Service
	WhisperService whisper.Service
	StateService   state.Service
	// CORSOrigins lists allowed origins; "*" allows any
	CORSOrigins []string
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

// Handler serves the HTTP API
type Handler struct {
	turnService    turn.Service
	whisperService whisper.Service
	stateService   state.Service
	corsOrigins    []string
}

// NewHandler creates a new web handler
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
		corsOrigins:    cfg.CORSOrigins,
	}, nil
}

// Routes returns the API with middleware applied
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/game-tick", h.gameTick)
	mux.HandleFunc("POST /api/whisper", h.whisper)
	mux.HandleFunc("GET /api/state", h.state)
	mux.HandleFunc("GET /healthz", h.healthz)

	return recoverPanics(logRequests(cors(h.corsOrigins, mux)))
}

func (h *Handler) gameTick(w http.ResponseWriter, r *http.Request) {
	out, err := h.turnService.AdvanceTurn(r.Context(), &turn.AdvanceTurnInput{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views.NewTurnResponse(out))
}

func (h *Handler) whisper(w http.ResponseWriter, r *http.Request) {
	var req views.WhisperRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, errors.InvalidArgument("request body must be a JSON object"))
		return
	}

	out, err := h.whisperService.Whisper(r.Context(), &whisper.WhisperInput{
		NPCID:   req.NPCID,
		Message: req.Message,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views.NewWhisperResponse(out))
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("logs"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, errors.InvalidArgumentf("logs must be an integer, got %q", raw))
			return
		}
		limit = n
	}

	out, err := h.stateService.GetState(r.Context(), &state.GetStateInput{LogLimit: limit})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views.NewStateResponse(out))
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, views.ErrorResponse{
		Error: errors.GetMessage(err),
		Code:  code.String(),
	})
}
