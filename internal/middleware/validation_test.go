package middleware

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	valid := "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid uuid", valid, valid, false},
		{"uppercase normalized", strings.ToUpper(valid), valid, false},
		{"trims whitespace", "  " + valid + "  ", valid, false},
		{"empty", "", "", true},
		{"not a uuid", "dQw4w9WgXcQ", "", true},
		{"missing dashes", "550e8400e29b41d4a716446655440000", "", true},
		{"sql injection", "550e8400'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateID("videoId", tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateID_NamesField(t *testing.T) {
	_, errMsg := ValidateID("sessionId", "")
	if !strings.Contains(errMsg, "sessionId") {
		t.Errorf("error should name the field: %q", errMsg)
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"empty uses fallback", "", 50, false},
		{"valid", "25", 25, false},
		{"max allowed", "200", 200, false},
		{"zero rejected", "0", 0, true},
		{"negative rejected", "-5", 0, true},
		{"over max", "201", 0, true},
		{"not a number", "abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateLimit(tt.input, 50)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateFingerprint(t *testing.T) {
	if _, errMsg := ValidateFingerprint(""); errMsg == "" {
		t.Error("empty fingerprint should be rejected")
	}

	if got, _ := ValidateFingerprint("  abc123  "); got != "abc123" {
		t.Errorf("trim failed: got %q", got)
	}

	long := strings.Repeat("x", 200)
	if got, _ := ValidateFingerprint(long); len(got) != MaxFingerprintLen {
		t.Errorf("truncation failed: got len %d, want %d", len(got), MaxFingerprintLen)
	}
}
