package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateVersion(t *testing.T) {
	tests := []struct {
		name    string
		version int
		reason  string
	}{
		{"current", CurrentVersion, ""},
		{"omitted", 0, ""},
		{"negative", -1, "invalid"},
		{"newer", CurrentVersion + 1, "newer than this build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVersion(tt.version)
			if tt.reason == "" {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			var ve *VersionError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *VersionError, got %T", err)
			}
			if ve.Reason != tt.reason {
				t.Fatalf("expected reason %q, got %q", tt.reason, ve.Reason)
			}
			if !strings.Contains(err.Error(), "current: 1") {
				t.Fatalf("expected current version in message, got %q", err.Error())
			}
		})
	}
}

func TestVersionErrorNil(t *testing.T) {
	var ve *VersionError
	if ve.Error() != "" {
		t.Fatal("nil VersionError should render empty")
	}
}
