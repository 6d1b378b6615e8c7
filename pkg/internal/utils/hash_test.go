package utils_test

import (
	"testing"

	"github.com/joeydtaylor/respira/pkg/internal/utils"
)

func TestGenerateUniqueHash(t *testing.T) {
	a := utils.GenerateUniqueHash()
	b := utils.GenerateUniqueHash()
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatalf("expected distinct hashes")
	}
}

func TestFingerprintSamples(t *testing.T) {
	samples := []float64{-1, 0.5, 1, -0.25}

	a := utils.FingerprintSamples(100, samples)
	if a != utils.FingerprintSamples(100, append([]float64(nil), samples...)) {
		t.Fatalf("expected fingerprint to be deterministic")
	}
	if a == utils.FingerprintSamples(50, samples) {
		t.Fatalf("expected sampling rate to change the fingerprint")
	}
	if a == utils.FingerprintSamples(100, []float64{-1, 0.5, 1, -0.5}) {
		t.Fatalf("expected samples to change the fingerprint")
	}
}
