package sdk

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      ClientConfig
		wantErr     bool
		errMsg      string
		wantBaseURL string
	}{
		{
			name:        "defaults applied",
			config:      ClientConfig{Token: "token-abc"},
			wantBaseURL: DefaultBaseURL,
		},
		{
			name:        "trailing slash added",
			config:      ClientConfig{BaseURL: "https://registry.example.com/v4"},
			wantBaseURL: "https://registry.example.com/v4/",
		},
		{
			name:        "whitespace trimmed",
			config:      ClientConfig{BaseURL: "  http://localhost:8080/v4/  "},
			wantBaseURL: "http://localhost:8080/v4/",
		},
		{
			name:    "invalid scheme",
			config:  ClientConfig{BaseURL: "ftp://registry.example.com"},
			wantErr: true,
			errMsg:  "base URL must start with http:// or https://",
		},
		{
			name:    "missing host",
			config:  ClientConfig{BaseURL: "https://"},
			wantErr: true,
			errMsg:  "base URL has no host",
		},
		{
			name:    "query not allowed",
			config:  ClientConfig{BaseURL: "https://registry.example.com/v4/?x=1"},
			wantErr: true,
			errMsg:  "must not carry a query",
		},
		{
			name:    "negative timeout",
			config:  ClientConfig{Timeout: -time.Second},
			wantErr: true,
			errMsg:  "timeout must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error but got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Validate() error = %v, want error containing %q", err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Validate() unexpected error = %v", err)
			}
			if tt.config.BaseURL != tt.wantBaseURL {
				t.Errorf("BaseURL = %q, want %q", tt.config.BaseURL, tt.wantBaseURL)
			}

			// Verify defaults were set
			if tt.config.Timeout != DefaultTimeout {
				t.Errorf("Timeout = %v, want %v", tt.config.Timeout, DefaultTimeout)
			}
			if tt.config.HTTPClient == nil {
				t.Error("HTTPClient should be set")
			}
			if tt.config.Logger == nil {
				t.Error("Logger should be set")
			}
			if tt.config.UserAgent == "" {
				t.Error("UserAgent should be set")
			}
		})
	}
}

func TestClientConfig_KeepsCustomHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	config := ClientConfig{HTTPClient: custom, Timeout: time.Minute}

	if err := config.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}

	if config.HTTPClient != custom {
		t.Error("Validate() replaced a caller-supplied HTTP client")
	}
}

func TestClientConfig_HasAuth(t *testing.T) {
	if (&ClientConfig{}).HasAuth() {
		t.Error("HasAuth() = true for empty token")
	}
	if (&ClientConfig{Token: "   "}).HasAuth() {
		t.Error("HasAuth() = true for blank token")
	}
	if !(&ClientConfig{Token: "abc"}).HasAuth() {
		t.Error("HasAuth() = false with token set")
	}
}
