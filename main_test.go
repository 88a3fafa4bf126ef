package main

import (
	"testing"
)

func TestParseArgsDispatch(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want mode
	}{
		{name: "no args opens settings", args: nil, want: modeSettings},
		{name: "slash s", args: []string{"/s"}, want: modeSaver},
		{name: "uppercase slash s", args: []string{"/S"}, want: modeSaver},
		{name: "dash s", args: []string{"-s"}, want: modeSaver},
		{name: "slash c", args: []string{"/c"}, want: modeSettings},
		{name: "slash c with handle", args: []string{"/c:84376"}, want: modeSettings},
		{name: "slash p", args: []string{"/p"}, want: modePreviewStub},
		{name: "slash p with handle", args: []string{"/p", "84376"}, want: modePreviewStub},
		{name: "unknown token", args: []string{"foo"}, want: modeSettings},
		{name: "saver wins over settings", args: []string{"/c", "/s"}, want: modeSaver},
		{name: "settings wins over preview", args: []string{"/p", "/c"}, want: modeSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseArgs(tt.args)
			if got.mode != tt.want {
				t.Errorf("parseArgs(%v).mode = %v, want %v", tt.args, got.mode, tt.want)
			}
		})
	}
}

func TestParseArgsInternalFlags(t *testing.T) {
	got := parseArgs([]string{"/s", "-monitor", "2", "-config", "/tmp/alt.json", "-window"})
	if got.mode != modeSaver {
		t.Errorf("mode = %v, want saver", got.mode)
	}
	if got.monitor != 2 {
		t.Errorf("monitor = %d, want 2", got.monitor)
	}
	if got.config != "/tmp/alt.json" {
		t.Errorf("config = %q, want /tmp/alt.json", got.config)
	}
	if !got.window {
		t.Error("window flag not set")
	}
}

func TestParseArgsDefaults(t *testing.T) {
	got := parseArgs([]string{"/s"})
	if got.monitor != -1 {
		t.Errorf("monitor default = %d, want -1", got.monitor)
	}
	if got.window || got.config != "" {
		t.Errorf("unexpected defaults: window=%v config=%q", got.window, got.config)
	}
}

func TestParseArgsConfigFlagDoesNotSelectSettings(t *testing.T) {
	// "-config" starts with "-c" but is a value flag, not a mode token.
	got := parseArgs([]string{"/s", "-config", "x.json"})
	if got.mode != modeSaver {
		t.Errorf("mode = %v, want saver", got.mode)
	}
}

func TestParseArgsBadMonitorValue(t *testing.T) {
	got := parseArgs([]string{"/s", "-monitor", "two"})
	if got.monitor != -1 {
		t.Errorf("monitor = %d, want -1 when the value does not parse", got.monitor)
	}
}
