package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where chainviz stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// InstanceURL is the url of your chainviz instance.
	InstanceURL string
	// VisualizerTemplate is the path of the chat visualizer HTML template.
	VisualizerTemplate string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from CHAINVIZ_* environment variables.
// A non-empty environment variable overrides whatever is already set
// on the profile.
func (p *Profile) FromEnv() {
	if v := os.Getenv("CHAINVIZ_MODE"); v != "" {
		p.Mode = v
	}
	if v := os.Getenv("CHAINVIZ_ADDR"); v != "" {
		p.Addr = v
	}
	if v := os.Getenv("CHAINVIZ_DATA"); v != "" {
		p.Data = v
	}
	if v := os.Getenv("CHAINVIZ_DSN"); v != "" {
		p.DSN = v
	}
	if v := os.Getenv("CHAINVIZ_DRIVER"); v != "" {
		p.Driver = v
	}
	if v := os.Getenv("CHAINVIZ_INSTANCE_URL"); v != "" {
		p.InstanceURL = v
	}
	p.VisualizerTemplate = getEnvOrDefault("CHAINVIZ_VISUALIZER_TEMPLATE", p.VisualizerTemplate)
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "chainviz")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/chainviz"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("chainviz_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.VisualizerTemplate == "" {
		p.VisualizerTemplate = filepath.Join(dataDir, "chat-visualizer.html")
	}

	return nil
}
