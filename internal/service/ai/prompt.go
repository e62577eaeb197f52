package ai

import (
	"fmt"
	"strings"

	"github.com/plantpal/backend/internal/model/plant"
)

// unknownMarker is rendered for any sensor field the pot did not report.
const unknownMarker = "unknown"

// BuildSystemPrompt produces the system message a fresh session is seeded
// with: persona identity, the configured personality verbatim, then the
// consistency and brevity directives.
func BuildSystemPrompt(profile plant.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a %s living in your caretaker's home.\n", profile.Name, profile.Species)
	b.WriteString(profile.Personality)
	b.WriteString("\n\nStay in this voice and personality for every reply.")
	b.WriteString(" Answer naturally without emoji or decorative symbols, and keep each reply brief, around 2-3 sentences.")
	return b.String()
}

// ComposeUserTurn wraps the caretaker's words with a freshly rendered sensor
// block. The model is told the readings are reference only, so it mentions
// them when relevant instead of reciting them every turn.
func ComposeUserTurn(userInput string, reading plant.SensorReading) string {
	var b strings.Builder
	fmt.Fprintf(&b, "My caretaker said: %q\n", userInput)
	b.WriteString("The readings below describe my current environment. Use them for reference only, when relevant:\n")
	b.WriteString(RenderSensorStatus(reading))
	return b.String()
}

// RenderSensorStatus formats the environment snapshot. Missing fields render
// as an explicit unknown marker rather than failing or disappearing.
func RenderSensorStatus(reading plant.SensorReading) string {
	return fmt.Sprintf("[current environment]\n- light: %s\n- moisture: %s\n- temperature: %s°C",
		sensorText(reading.Light),
		sensorText(reading.Moisture),
		sensorText(reading.Temperature),
	)
}

func sensorText(value *plant.SensorValue) string {
	if value == nil || strings.TrimSpace(value.String()) == "" {
		return unknownMarker
	}
	return value.String()
}
