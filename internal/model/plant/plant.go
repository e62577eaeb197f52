package plant

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Key identifies one pot: the owner plus the physical device.
type Key struct {
	OwnerID  string `json:"ownerId"`
	DeviceID string `json:"deviceId"`
}

func NewKey(ownerID, deviceID string) Key {
	return Key{OwnerID: ownerID, DeviceID: deviceID}
}

func (k Key) String() string {
	return k.OwnerID + "/" + k.DeviceID
}

// Profile captures the persona a configured plant speaks with.
type Profile struct {
	OwnerID     string `json:"ownerId"`
	DeviceID    string `json:"deviceId"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Personality string `json:"personality"`
}

// Key returns the identity the profile is stored under.
func (p Profile) Key() Key {
	return NewKey(p.OwnerID, p.DeviceID)
}

// Validate checks that every persona field was supplied.
func (p Profile) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"owner_id", p.OwnerID},
		{"device_id", p.DeviceID},
		{"display_name", p.Name},
		{"kind", p.Species},
		{"personality", p.Personality},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required", f.name)
		}
	}
	return nil
}

// SensorValue accepts either a JSON number or a JSON string, since pot
// firmware revisions disagree on which they send.
type SensorValue struct {
	raw string
}

func (v *SensorValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.raw = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("sensor value must be a number or string: %w", err)
	}
	v.raw = n.String()
	return nil
}

func (v SensorValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

func (v *SensorValue) String() string {
	if v == nil {
		return ""
	}
	return v.raw
}

// SensorReading is the transient environment snapshot attached to a turn.
// Fields are optional; nothing is stored.
type SensorReading struct {
	Light       *SensorValue `json:"light,omitempty"`
	Moisture    *SensorValue `json:"moisture,omitempty"`
	Temperature *SensorValue `json:"temperature,omitempty"`
}
