package plant

import (
	"encoding/json"
	"testing"
)

func TestSensorReadingUnmarshal(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		light    string
		moisture string
		temp     string
	}{
		{
			name:     "numeric values",
			body:     `{"light": 800, "moisture": 40, "temperature": 22}`,
			light:    "800",
			moisture: "40",
			temp:     "22",
		},
		{
			name:     "string values",
			body:     `{"light": "bright", "moisture": "40%"}`,
			light:    "bright",
			moisture: "40%",
			temp:     "",
		},
		{
			name: "empty object",
			body: `{}`,
		},
	}

	for _, tc := range cases {
		var reading SensorReading
		if err := json.Unmarshal([]byte(tc.body), &reading); err != nil {
			t.Fatalf("%s: unmarshal err: %v", tc.name, err)
		}
		if got := reading.Light.String(); got != tc.light {
			t.Errorf("%s: light = %q, want %q", tc.name, got, tc.light)
		}
		if got := reading.Moisture.String(); got != tc.moisture {
			t.Errorf("%s: moisture = %q, want %q", tc.name, got, tc.moisture)
		}
		if got := reading.Temperature.String(); got != tc.temp {
			t.Errorf("%s: temperature = %q, want %q", tc.name, got, tc.temp)
		}
	}
}

func TestSensorValueRejectsObjects(t *testing.T) {
	var reading SensorReading
	if err := json.Unmarshal([]byte(`{"light": {"lux": 800}}`), &reading); err == nil {
		t.Fatal("expected error for object sensor value")
	}
}
