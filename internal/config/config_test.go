package config

import "testing"

func TestParseDevices(t *testing.T) {
	devices, err := parseDevices("living-room=192.168.1.50, bedroom=192.168.1.51:9060")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("Expected 2 devices, got %d", len(devices))
	}
	if devices["living-room"] != "192.168.1.50" {
		t.Errorf("living-room mismatch: %s", devices["living-room"])
	}
	if devices["bedroom"] != "192.168.1.51:9060" {
		t.Errorf("bedroom mismatch: %s", devices["bedroom"])
	}
}

func TestParseDevicesEmpty(t *testing.T) {
	devices, err := parseDevices("   ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("Expected no devices, got %d", len(devices))
	}
}

func TestParseDevicesInvalid(t *testing.T) {
	for _, raw := range []string{
		"living-room",           // no address
		"=192.168.1.50",         // no id
		"living-room=",          // empty address
		"a=1.2.3.4,living-room", // one bad entry poisons the list
	} {
		if _, err := parseDevices(raw); err == nil {
			t.Errorf("Expected error for %q", raw)
		}
	}
}

func TestParseDevicesSkipsEmptyEntries(t *testing.T) {
	devices, err := parseDevices("living-room=192.168.1.50,,")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(devices) != 1 {
		t.Errorf("Trailing commas should be ignored, got %d devices", len(devices))
	}
}
