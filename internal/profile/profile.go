package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
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
	// DSN points to where UpMe stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// Secret signs the access tokens presented by the web layer
	Secret string

	// Gemini Configuration
	GeminiAPIKey         string // UPME_GEMINI_API_KEY
	GeminiModel          string // UPME_GEMINI_MODEL (default: gemini-2.0-flash)
	GeminiBaseURL        string // UPME_GEMINI_BASE_URL (default: https://generativelanguage.googleapis.com)
	GeminiTimeoutSeconds int    // UPME_GEMINI_TIMEOUT_SECONDS (default: 30)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsChatEnabled returns true if the Gemini gateway credential is configured.
func (p *Profile) IsChatEnabled() bool {
	return p.GeminiAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads gateway configuration from UPME_* environment variables.
func (p *Profile) FromEnv() {
	p.GeminiAPIKey = os.Getenv("UPME_GEMINI_API_KEY")
	p.GeminiModel = getEnvOrDefault("UPME_GEMINI_MODEL", "gemini-2.0-flash")
	p.GeminiBaseURL = getEnvOrDefault("UPME_GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")

	p.GeminiTimeoutSeconds = 30
	if raw := os.Getenv("UPME_GEMINI_TIMEOUT_SECONDS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.GeminiTimeoutSeconds = v
		}
	}

	if p.Secret == "" {
		p.Secret = os.Getenv("UPME_SECRET")
	}
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
			p.Data = filepath.Join(os.Getenv("ProgramData"), "upme")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/upme"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("upme_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	return nil
}
