package pattern

import "testing"

func TestExtractAction(t *testing.T) {
	tests := []struct {
		name     string
		entityID string
		state    any
		want     string
	}{
		{"scene", "scene.movie_night", "on", "activated"},
		{"scene any state", "scene.movie_night", "whatever", "activated"},
		{"script on", "script.morning", "on", "executed"},
		{"script other state", "script.morning", "stopped", "stopped"},
		{"light on", "light.kitchen", "on", "turn_on"},
		{"light off", "light.kitchen", "off", "turn_off"},
		{"light other state", "light.kitchen", "dimmed", "dimmed"},
		{"switch on", "switch.fan", "on", "turn_on"},
		{"cover off", "cover.garage", "off", "turn_off"},
		{"input_boolean on", "input_boolean.guest_mode", "on", "turn_on"},
		{"climate mode", "climate.living_room", "heat", "set_heat"},
		{"climate empty", "climate.living_room", "", "changed"},
		{"climate numeric", "climate.living_room", 21.5, "set_21.5"},
		{"input_button", "input_button.doorbell", "pressed_at", "pressed"},
		{"input_number", "input_number.volume", 42.0, "changed"},
		{"input_select", "input_select.mode", "away", "changed"},
		{"input_datetime", "input_datetime.alarm", "07:00", "changed"},
		{"unknown domain with state", "vacuum.robot", "cleaning", "cleaning"},
		{"unknown domain empty state", "vacuum.robot", "", "unknown"},
		{"missing entity id", "", "on", "on"},
		{"entity id without dot", "kitchenlight", "on", "on"},
		{"nil state unknown domain", "vacuum.robot", nil, "unknown"},
		{"bool true passes through", "switch.fan", true, "true"},
		{"bool false treated absent", "vacuum.robot", false, "unknown"},
		{"zero number treated absent", "climate.living_room", 0.0, "changed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := LogEntry{EntityID: tt.entityID, State: tt.state}
			if got := ExtractAction(entry); got != tt.want {
				t.Errorf("ExtractAction(%q, %v) = %q, want %q", tt.entityID, tt.state, got, tt.want)
			}
		})
	}
}

func TestLogEntryDomain(t *testing.T) {
	tests := []struct {
		entityID string
		want     string
	}{
		{"light.kitchen", "light"},
		{"input_boolean.guest_mode", "input_boolean"},
		{"nodot", ""},
		{"", ""},
		{"trailing.", "trailing"},
		{"a.b.c", "a"},
	}

	for _, tt := range tests {
		if got := (LogEntry{EntityID: tt.entityID}).Domain(); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.entityID, got, tt.want)
		}
	}
}
