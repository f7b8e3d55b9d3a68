package internal

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Auth.AuthEnabled() {
		t.Error("default config should not enable auth")
	}
	if cfg.Shortener.Enabled() {
		t.Error("default config should not enable the shortener without a token")
	}
}

func TestHTTPConfig_PortBounds(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("port 0 should fail validation")
	}
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("port above 65535 should fail validation")
	}
}

func TestHTTPConfig_Address(t *testing.T) {
	cfg := HTTPConfig{Port: 9090}
	if got := cfg.Address(); got != ":9090" {
		t.Errorf("Address() = %q", got)
	}
}

func TestSQLiteConfig_PathRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty sqlite path should fail validation")
	}
}

func TestMediaConfig_DirRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Media.Dir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty media dir should fail validation")
	}
}

func TestShortenerConfig_OptionalUnlessTokenSet(t *testing.T) {
	// No token: the rest of the section is ignored.
	cfg := ShortenerConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unconfigured shortener should pass: %v", err)
	}
	if cfg.Enabled() {
		t.Error("shortener without token should be disabled")
	}

	// Token set: api_url and domain become required.
	cfg = ShortenerConfig{Token: "tok"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("token without api_url/domain should fail validation")
	}
	cfg = ShortenerConfig{Token: "tok", APIURL: "https://api.tinyurl.com", Domain: "tinyurl.com"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("fully configured shortener should pass: %v", err)
	}
	if !cfg.Enabled() {
		t.Error("shortener with token should be enabled")
	}
}

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
