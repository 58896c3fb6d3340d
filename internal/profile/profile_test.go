package profile

import (
	"path/filepath"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	dataDir := t.TempDir()
	p := &Profile{
		Mode:   "dev",
		Driver: "sqlite",
		Data:   dataDir,
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	wantDSN := filepath.Join(dataDir, "chainviz_dev.db")
	if p.DSN != wantDSN {
		t.Errorf("DSN: expected %q, got %q", wantDSN, p.DSN)
	}
	wantTemplate := filepath.Join(dataDir, "chat-visualizer.html")
	if p.VisualizerTemplate != wantTemplate {
		t.Errorf("VisualizerTemplate: expected %q, got %q", wantTemplate, p.VisualizerTemplate)
	}
}

func TestValidateUnknownModeFallsBackToDemo(t *testing.T) {
	p := &Profile{
		Mode:   "staging",
		Driver: "sqlite",
		Data:   t.TempDir(),
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if p.Mode != "demo" {
		t.Errorf("Mode: expected %q, got %q", "demo", p.Mode)
	}
}

func TestValidateKeepsExplicitDSN(t *testing.T) {
	p := &Profile{
		Mode:   "dev",
		Driver: "sqlite",
		Data:   t.TempDir(),
		DSN:    "/tmp/custom.db",
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if p.DSN != "/tmp/custom.db" {
		t.Errorf("DSN: expected explicit value to survive, got %q", p.DSN)
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		field    func(*Profile) string
	}{
		{"CHAINVIZ_MODE", "CHAINVIZ_MODE", "prod", func(p *Profile) string { return p.Mode }},
		{"CHAINVIZ_DRIVER", "CHAINVIZ_DRIVER", "postgres", func(p *Profile) string { return p.Driver }},
		{"CHAINVIZ_DSN", "CHAINVIZ_DSN", "postgres://u:p@localhost/chainviz", func(p *Profile) string { return p.DSN }},
		{"CHAINVIZ_VISUALIZER_TEMPLATE", "CHAINVIZ_VISUALIZER_TEMPLATE", "/srv/viz.html", func(p *Profile) string { return p.VisualizerTemplate }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.envValue)
			p := &Profile{}
			p.FromEnv()
			if got := tt.field(p); got != tt.envValue {
				t.Errorf("%s: expected %q, got %q", tt.envVar, tt.envValue, got)
			}
		})
	}
}
