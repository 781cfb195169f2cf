package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"testing"
)

// recorder captures failures without stopping the calling test.
type recorder struct {
	testing.TB
	failed bool
	msg    string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatal(args ...any) { r.fail(fmt.Sprint(args...)) }

func (r *recorder) Fatalf(format string, args ...any) { r.fail(fmt.Sprintf(format, args...)) }

func (r *recorder) Errorf(format string, args ...any) { r.fail(fmt.Sprintf(format, args...)) }

func (r *recorder) fail(msg string) {
	if !r.failed {
		r.msg = msg
	}
	r.failed = true
}

func TestAssertNoError(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	AssertNoError(rec, nil)
	if rec.failed {
		t.Errorf("unexpected failure for nil error: %s", rec.msg)
	}

	rec = &recorder{}
	AssertNoError(rec, errors.New("boom"))
	if !rec.failed {
		t.Error("expected failure for non-nil error")
	}
}

func TestAssertError(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	AssertError(rec, errors.New("test error"))
	if rec.failed {
		t.Errorf("unexpected failure for non-nil error: %s", rec.msg)
	}

	rec = &recorder{}
	AssertError(rec, nil)
	if !rec.failed {
		t.Error("expected failure for nil error")
	}
}

func TestAssertProbabilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ps   []float64
		fail bool
	}{
		{"valid", []float64{0, 0.25, 1}, false},
		{"empty", nil, false},
		{"negative", []float64{0.5, -0.1}, true},
		{"above one", []float64{1.01}, true},
		{"nan", []float64{math.NaN()}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			AssertProbabilities(rec, tt.ps)
			if rec.failed != tt.fail {
				t.Errorf("failed = %v, want %v (%s)", rec.failed, tt.fail, rec.msg)
			}
		})
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestAssertPNGSize(t *testing.T) {
	t.Parallel()

	data := encodePNG(t, 12, 7)

	rec := &recorder{}
	AssertPNGSize(rec, data, 12, 7)
	if rec.failed {
		t.Errorf("unexpected failure: %s", rec.msg)
	}

	rec = &recorder{}
	AssertPNGSize(rec, data, 7, 12)
	if !rec.failed {
		t.Error("expected failure on size mismatch")
	}

	rec = &recorder{}
	AssertPNGSize(rec, []byte("GIF89a"), 1, 1)
	if !rec.failed {
		t.Error("expected failure on undecodable data")
	}
}
