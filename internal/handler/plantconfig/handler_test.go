package plantconfig

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/plantpal/backend/internal/model/plant"
	"github.com/plantpal/backend/internal/policy"
)

const testSecret = "pot-secret"

func setupRouter() (*chi.Mux, *plant.MemoryStore) {
	store := plant.NewMemoryStore()
	handler := New(store, policy.NewGuard(testSecret))

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func postConfig(t *testing.T, r http.Handler, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/set_config", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func validBody() map[string]string {
	return map[string]string{
		"secret_token": testSecret,
		"owner_id":     "u1",
		"device_id":    "p1",
		"display_name": "Sol",
		"kind":         "succulent",
		"personality":  "cheerful and brief",
	}
}

func TestSetConfigSuccess(t *testing.T) {
	r, store := setupRouter()

	resp := postConfig(t, r, validBody())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if body["status"] != "success" {
		t.Fatalf("status = %q", body["status"])
	}

	profile, ok := store.Get("u1", "p1")
	if !ok {
		t.Fatal("profile not stored")
	}
	if profile.Name != "Sol" || profile.Species != "succulent" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestSetConfigWrongToken(t *testing.T) {
	r, store := setupRouter()

	body := validBody()
	body["secret_token"] = "wrong"
	resp := postConfig(t, r, body)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}

	if _, ok := store.Get("u1", "p1"); ok {
		t.Fatal("rejected request must not mutate the store")
	}
}

func TestSetConfigMissingField(t *testing.T) {
	r, _ := setupRouter()

	for _, field := range []string{"owner_id", "device_id", "display_name", "kind", "personality"} {
		body := validBody()
		delete(body, field)
		resp := postConfig(t, r, body)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("missing %s: expected 400, got %d", field, resp.Code)
		}
	}
}

func TestSetConfigInvalidJSON(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/set_config", bytes.NewReader([]byte("{not json")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestListPlants(t *testing.T) {
	r, store := setupRouter()
	if err := store.Put(plant.Profile{
		OwnerID:     "u1",
		DeviceID:    "p1",
		Name:        "Sol",
		Species:     "succulent",
		Personality: "cheerful and brief",
	}); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/plants", nil)
	req.Header.Set("X-Secret-Token", testSecret)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var items []map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 plant, got %d", len(items))
	}
	if _, leaked := items[0]["personality"]; leaked {
		t.Fatal("listing must not expose personality text")
	}
}

func TestListPlantsUnauthorized(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/plants", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}
