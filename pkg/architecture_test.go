package pkg

import (
	"testing"

	"github.com/kcmvp/archunit"
)

func TestArchitecture(t *testing.T) {
	core := archunit.Packages("core", []string{
		".../pkg/device/...",
		".../pkg/store/...",
		".../pkg/gateway/...",
		".../pkg/db/...",
		".../pkg/notify/...",
	})
	edges := archunit.Packages("edges", []string{".../pkg/api/...", ".../pkg/mcp/..."})

	if err := core.ShouldNotReferLayers(edges); err != nil {
		t.Errorf("core packages depend on api/mcp: %v", err)
	}
}

func TestDeviceIsLeaf(t *testing.T) {
	domain := archunit.Packages("device", []string{".../pkg/device/..."})
	infra := archunit.Packages("infra", []string{
		".../pkg/store/...",
		".../pkg/gateway/...",
		".../pkg/db/...",
		".../pkg/notify/...",
	})

	if len(domain.Packages()) == 0 {
		t.Fatal("device package not found")
	}
	if err := domain.ShouldNotReferLayers(infra); err != nil {
		t.Errorf("device depends on infrastructure: %v", err)
	}
}
