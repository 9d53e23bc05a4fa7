package cmd

import (
	"strings"
	"testing"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3", "2026-08-29T12:00:00Z")

	if rootCmd.Version != "1.2.3" {
		t.Errorf("rootCmd.Version = %q, want %q", rootCmd.Version, "1.2.3")
	}
	if tmpl := rootCmd.VersionTemplate(); !strings.Contains(tmpl, "2026-08-29T12:00:00Z") {
		t.Errorf("version template %q does not include build time", tmpl)
	}
}
