package policy

import "testing"

func TestMaskFields(t *testing.T) {
	fields := map[string]any{
		"secret_token": "pot-secret",
		"SecretToken":  "pot-secret",
		"owner_id":     "u1",
		"nested": map[string]any{
			"access_token": "abc123",
			"device_id":    "p1",
		},
	}

	masked := MaskFields(fields)

	if masked["secret_token"] != "****" {
		t.Errorf("secret_token not masked: %v", masked["secret_token"])
	}
	if masked["SecretToken"] != "****" {
		t.Errorf("SecretToken not masked: %v", masked["SecretToken"])
	}
	if masked["owner_id"] != "u1" {
		t.Errorf("owner_id must pass through, got %v", masked["owner_id"])
	}

	nested, ok := masked["nested"].(map[string]any)
	if !ok {
		t.Fatal("nested map missing")
	}
	if nested["access_token"] != "****" {
		t.Errorf("nested token not masked: %v", nested["access_token"])
	}
	if nested["device_id"] != "p1" {
		t.Errorf("nested field must pass through, got %v", nested["device_id"])
	}

	// The original map is untouched.
	if fields["secret_token"] != "pot-secret" {
		t.Fatal("MaskFields must not mutate its input")
	}
}

func TestMaskFieldsNil(t *testing.T) {
	if MaskFields(nil) != nil {
		t.Fatal("nil input should return nil")
	}
}
