package turn

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plantpal/backend/internal/model/plant"
	"github.com/plantpal/backend/internal/policy"
	convservice "github.com/plantpal/backend/internal/service/conversation"
	turnservice "github.com/plantpal/backend/internal/service/turn"
	"github.com/plantpal/backend/pkg/utils"
)

// Handler serves the conversation turn and transcript routes.
type Handler struct {
	turns *turnservice.Service
	convs *convservice.Service
	guard *policy.Guard
}

// New creates the turn handler.
func New(turns *turnservice.Service, convs *convservice.Service, guard *policy.Guard) *Handler {
	return &Handler{turns: turns, convs: convs, guard: guard}
}

// RegisterRoutes attaches the turn routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/process", h.handleProcess)
	r.Post("/history", h.handleHistory)
}

type processRequest struct {
	SecretToken string              `json:"secret_token"`
	OwnerID     string              `json:"owner_id"`
	DeviceID    string              `json:"device_id"`
	UserInput   string              `json:"user_input"`
	SensorData  plant.SensorReading `json:"sensor_data"`
}

type processResponse struct {
	Reply       string  `json:"reply"`
	AudioBase64 *string `json:"audio_base64"`
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	var payload processRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.guard.Authorize(payload.SecretToken) {
		utils.RespondError(w, http.StatusForbidden, "invalid secret token")
		return
	}

	result, err := h.turns.HandleTurn(r.Context(), payload.OwnerID, payload.DeviceID, payload.UserInput, payload.SensorData)
	if err != nil {
		switch {
		case errors.Is(err, turnservice.ErrValidation), errors.Is(err, turnservice.ErrNotConfigured):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, turnservice.ErrUpstream):
			utils.RespondError(w, http.StatusServiceUnavailable, "assistant is temporarily unavailable")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "turn processing failed")
		}
		return
	}

	response := processResponse{Reply: result.Reply}
	if len(result.Audio) > 0 {
		encoded := base64.StdEncoding.EncodeToString(result.Audio)
		response.AudioBase64 = &encoded
	}

	utils.RespondJSON(w, http.StatusOK, response)
}

type historyRequest struct {
	SecretToken string `json:"secret_token"`
	OwnerID     string `json:"owner_id"`
	DeviceID    string `json:"device_id"`
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	var payload historyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.guard.Authorize(payload.SecretToken) {
		utils.RespondError(w, http.StatusForbidden, "invalid secret token")
		return
	}

	if payload.OwnerID == "" || payload.DeviceID == "" {
		utils.RespondError(w, http.StatusBadRequest, "owner_id and device_id are required")
		return
	}

	messages, err := h.convs.Transcript(plant.NewKey(payload.OwnerID, payload.DeviceID))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "no conversation for this identity")
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}
