package plantconfig

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plantpal/backend/internal/model/plant"
	"github.com/plantpal/backend/internal/policy"
	"github.com/plantpal/backend/pkg/utils"
)

// Handler serves plant persona configuration.
type Handler struct {
	profiles plant.Store
	guard    *policy.Guard
}

// New creates the configuration handler.
func New(profiles plant.Store, guard *policy.Guard) *Handler {
	return &Handler{profiles: profiles, guard: guard}
}

// RegisterRoutes attaches the configuration routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/set_config", h.handleSetConfig)
	r.Get("/plants", h.handleListPlants)
}

type setConfigRequest struct {
	SecretToken string `json:"secret_token"`
	OwnerID     string `json:"owner_id"`
	DeviceID    string `json:"device_id"`
	DisplayName string `json:"display_name"`
	Kind        string `json:"kind"`
	Personality string `json:"personality"`
}

func (h *Handler) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var payload setConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.guard.Authorize(payload.SecretToken) {
		utils.RespondError(w, http.StatusForbidden, "invalid secret token")
		return
	}

	profile := plant.Profile{
		OwnerID:     payload.OwnerID,
		DeviceID:    payload.DeviceID,
		Name:        payload.DisplayName,
		Species:     payload.Kind,
		Personality: payload.Personality,
	}

	if err := h.profiles.Put(profile); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("[config] profile stored: %v", policy.MaskFields(map[string]any{
		"secret_token": payload.SecretToken,
		"owner_id":     payload.OwnerID,
		"device_id":    payload.DeviceID,
		"display_name": payload.DisplayName,
	}))

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("configuration saved for %s", payload.DeviceID),
	})
}

// handleListPlants returns the configured profiles without personality text.
// The secret travels in a header since GET requests carry no body.
func (h *Handler) handleListPlants(w http.ResponseWriter, r *http.Request) {
	if !h.guard.Authorize(r.Header.Get("X-Secret-Token")) {
		utils.RespondError(w, http.StatusForbidden, "invalid secret token")
		return
	}

	type listed struct {
		OwnerID  string `json:"owner_id"`
		DeviceID string `json:"device_id"`
		Name     string `json:"display_name"`
		Species  string `json:"kind"`
	}

	profiles := h.profiles.List()
	items := make([]listed, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, listed{
			OwnerID:  p.OwnerID,
			DeviceID: p.DeviceID,
			Name:     p.Name,
			Species:  p.Species,
		})
	}

	utils.RespondJSON(w, http.StatusOK, items)
}
