package version

import "testing"

func TestIsVersionGreaterThan(t *testing.T) {
	tests := []struct {
		version string
		target  string
		want    bool
	}{
		{"0.2.0", "0.1.0", true},
		{"0.1.0", "0.2.0", false},
		{"0.1.0", "0.1.0", false},
		{"1.0.0", "0.9.9", true},
		{"0.1.10", "0.1.9", true},
	}
	for _, tt := range tests {
		if got := IsVersionGreaterThan(tt.version, tt.target); got != tt.want {
			t.Errorf("IsVersionGreaterThan(%q, %q) = %v, want %v", tt.version, tt.target, got, tt.want)
		}
	}
}

func TestGetSchemaVersion(t *testing.T) {
	if got := GetSchemaVersion("0.1.2"); got != "0.1.0" {
		t.Errorf("GetSchemaVersion(0.1.2) = %q, want 0.1.0", got)
	}
	if got := GetSchemaVersion("bad"); got != "" {
		t.Errorf("GetSchemaVersion(bad) = %q, want empty", got)
	}
}
