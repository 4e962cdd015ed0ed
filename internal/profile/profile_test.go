package profile

import (
	"os"
	"testing"
)

func TestGeminiDefaults(t *testing.T) {
	clearGeminiEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"GeminiAPIKey empty by default", "", profile.GeminiAPIKey},
		{"GeminiModel default", "gemini-2.0-flash", profile.GeminiModel},
		{"GeminiBaseURL default", "https://generativelanguage.googleapis.com", profile.GeminiBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if profile.GeminiTimeoutSeconds != 30 {
		t.Errorf("GeminiTimeoutSeconds default: expected 30, got %d", profile.GeminiTimeoutSeconds)
	}
	if profile.IsChatEnabled() {
		t.Error("IsChatEnabled should be false without an API key")
	}
}

func TestGeminiFromEnv(t *testing.T) {
	clearGeminiEnvVars()

	os.Setenv("UPME_GEMINI_API_KEY", "test-key")
	os.Setenv("UPME_GEMINI_MODEL", "gemini-2.5-pro")
	os.Setenv("UPME_GEMINI_TIMEOUT_SECONDS", "5")
	defer clearGeminiEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	if profile.GeminiAPIKey != "test-key" {
		t.Errorf("GeminiAPIKey: expected test-key, got %q", profile.GeminiAPIKey)
	}
	if profile.GeminiModel != "gemini-2.5-pro" {
		t.Errorf("GeminiModel: expected gemini-2.5-pro, got %q", profile.GeminiModel)
	}
	if profile.GeminiTimeoutSeconds != 5 {
		t.Errorf("GeminiTimeoutSeconds: expected 5, got %d", profile.GeminiTimeoutSeconds)
	}
	if !profile.IsChatEnabled() {
		t.Error("IsChatEnabled should be true with an API key")
	}
}

func TestGeminiTimeoutIgnoresGarbage(t *testing.T) {
	clearGeminiEnvVars()

	os.Setenv("UPME_GEMINI_TIMEOUT_SECONDS", "not-a-number")
	defer clearGeminiEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	if profile.GeminiTimeoutSeconds != 30 {
		t.Errorf("GeminiTimeoutSeconds: expected fallback 30, got %d", profile.GeminiTimeoutSeconds)
	}
}

func clearGeminiEnvVars() {
	os.Unsetenv("UPME_GEMINI_API_KEY")
	os.Unsetenv("UPME_GEMINI_MODEL")
	os.Unsetenv("UPME_GEMINI_BASE_URL")
	os.Unsetenv("UPME_GEMINI_TIMEOUT_SECONDS")
	os.Unsetenv("UPME_SECRET")
}
