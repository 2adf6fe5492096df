package convert

import (
	"context"
	"errors"
	"testing"
)

func TestNewHTTPConverterRequiresURL(t *testing.T) {
	if _, err := NewHTTPConverter(""); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("NewHTTPConverter(\"\") err = %v, want ErrNotConfigured", err)
	}
	if _, err := NewHTTPConverter("   "); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("blank url err = %v, want ErrNotConfigured", err)
	}
	if _, err := NewHTTPConverter("http://localhost:9090/render"); err != nil {
		t.Fatalf("valid url err = %v", err)
	}
}

func TestPreflightRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"plain text", []byte("not a pdf at all")},
		{"truncated header", []byte("%PDF-1.4")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Preflight(tc.data); err == nil {
				t.Fatal("Preflight accepted a non-PDF payload")
			}
		})
	}
}

func TestConvertFailsPreflightBeforeNetwork(t *testing.T) {
	// The URL is unroutable on purpose; a preflight failure must short
	// circuit before any request is attempted.
	c, err := NewHTTPConverter("http://192.0.2.1/render")
	if err != nil {
		t.Fatalf("NewHTTPConverter: %v", err)
	}
	if _, err := c.Convert(context.Background(), []byte("junk")); err == nil {
		t.Fatal("Convert accepted a non-PDF payload")
	}
}

func TestUnconfiguredConverter(t *testing.T) {
	_, err := Unconfigured{}.Convert(context.Background(), []byte("%PDF-1.4"))
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Unconfigured.Convert err = %v, want ErrNotConfigured", err)
	}
}
