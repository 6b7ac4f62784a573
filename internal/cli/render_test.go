package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeroute/homeroute/internal/ors"
	"github.com/homeroute/homeroute/internal/plugin"
)

func TestFormatRouteDuration(t *testing.T) {
	assert.Equal(t, "45s", formatRouteDuration(45))
	assert.Equal(t, "6m", formatRouteDuration(360))
	assert.Equal(t, "6m30s", formatRouteDuration(390))
	assert.Equal(t, "1h", formatRouteDuration(3600))
	assert.Equal(t, "1h30m", formatRouteDuration(5400))
	assert.Equal(t, "0s", formatRouteDuration(0))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "2.10 km", formatDistance(2.1, "km"))
	assert.Equal(t, "1500.00 m", formatDistance(1500, "m"))
}

func TestRenderPlan(t *testing.T) {
	result := &plugin.PlanResult{
		Origin:      plugin.Place{Address: "Berlin Hbf", Coordinates: ors.Coordinates{13.369, 52.525}},
		Destination: plugin.Place{Address: "Brandenburger Tor", Coordinates: ors.Coordinates{13.377, 52.516}},
		Distance:    2.1,
		Duration:    360,
		Geometry:    json.RawMessage(`"encoded"`),
		Segments: []ors.Segment{{
			Distance: 2.1,
			Duration: 360,
			Steps: []ors.Step{
				{Distance: 0.5, Duration: 60, Instruction: "Head north", Name: "Invalidenstrasse"},
				{Distance: 1.6, Duration: 300, Instruction: "Arrive at destination"},
			},
		}},
		Profile: "driving-car",
	}

	var buf bytes.Buffer
	require.NoError(t, renderPlan(&buf, result, "km", false))
	out := buf.String()

	assert.Contains(t, out, "Berlin Hbf to Brandenburger Tor (driving-car)")
	assert.Contains(t, out, "Distance: 2.10 km")
	assert.Contains(t, out, "Duration: 6m")
	assert.Contains(t, out, "Head north (Invalidenstrasse)")
	assert.Contains(t, out, "Arrive at destination")
	assert.Contains(t, out, "13.369000")
}

func TestRenderPlanNoSegments(t *testing.T) {
	result := &plugin.PlanResult{
		Origin:      plugin.Place{Address: "A"},
		Destination: plugin.Place{Address: "B"},
		Distance:    1,
		Duration:    60,
		Profile:     "foot-walking",
	}

	var buf bytes.Buffer
	require.NoError(t, renderPlan(&buf, result, "km", false))
	assert.NotContains(t, buf.String(), "Directions:")
}
