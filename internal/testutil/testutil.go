// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"bytes"
	"image/png"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertProbabilities checks every value lies in [0, 1].
func AssertProbabilities(t testing.TB, ps []float64) {
	t.Helper()
	for i, p := range ps {
		if !(p >= 0 && p <= 1) {
			t.Fatalf("p[%d] = %v, want a value in [0, 1]", i, p)
		}
	}
}

// AssertPNGSize decodes the PNG header in data and checks its pixel size.
func AssertPNGSize(t testing.TB, data []byte, width, height int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != width || cfg.Height != height {
		t.Errorf("png size = %dx%d, want %dx%d", cfg.Width, cfg.Height, width, height)
	}
}
