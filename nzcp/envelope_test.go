package nzcp

import (
	"encoding/base32"
	"errors"
	"testing"
)

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *Violation
		rawLen  int
	}{
		{
			name:    "valid pass",
			payload: ExamplePass,
			rawLen:  370,
		},
		{
			name:    "padding restored",
			payload: "NZCP:/1/" + base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte("x")),
			rawLen:  1,
		},
		{
			name:    "empty payload",
			payload: "",
			want:    ErrBarcodePrefix,
		},
		{
			name:    "missing prefix",
			payload: "HC1:6BF...",
			want:    ErrBarcodePrefix,
		},
		{
			name:    "lowercase prefix",
			payload: "nzcp:/1/AAAA",
			want:    ErrBarcodePrefix,
		},
		{
			name:    "unsupported version",
			payload: "NZCP:/2/AAAA",
			want:    ErrBarcodeVersion,
		},
		{
			name:    "missing version",
			payload: "NZCP:/",
			want:    ErrBarcodeVersion,
		},
		{
			name:    "missing body",
			payload: "NZCP:/1/",
			want:    ErrBarcodeEncoding,
		},
		{
			name:    "extra segment",
			payload: "NZCP:/1/AAAA/BBBB",
			want:    ErrBarcodeEncoding,
		},
		{
			name:    "not base32",
			payload: "NZCP:/1/abc!",
			want:    ErrBarcodeEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, violation := parseEnvelope(tt.payload)
			if tt.want != nil {
				if violation == nil {
					t.Fatalf("expected violation %v, got none", tt.want)
				}
				if !errors.Is(violation, tt.want) {
					t.Fatalf("expected violation %v, got %v", tt.want, violation)
				}
				return
			}
			if violation != nil {
				t.Fatalf("failed to parse envelope: %v", violation)
			}
			if len(raw) != tt.rawLen {
				t.Errorf("expected %d decoded bytes, got %d", tt.rawLen, len(raw))
			}
		})
	}
}

func TestParseEnvelopeRoundTrip(t *testing.T) {
	raw, violation := parseEnvelope(ExamplePass)
	if violation != nil {
		t.Fatalf("failed to parse envelope: %v", violation)
	}
	if raw[0] != 0xd2 {
		t.Errorf("expected COSE_Sign1 tag 18 (0xd2), got 0x%02x", raw[0])
	}

	encoded := "NZCP:/1/" + base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw)
	if encoded != ExamplePass {
		t.Errorf("re-encoded payload differs from original")
	}
}
