package nzcp

import (
	"encoding/base32"
	"strings"
)

const (
	payloadPrefix  = "NZCP:/"
	payloadVersion = "1"
)

// parseEnvelope strips the NZCP:/1/ envelope and returns the raw COSE_Sign1
// bytes. The base32 body arrives without padding (the QR alphanumeric
// character set has no '='), so padding is restored before decoding.
func parseEnvelope(payload string) ([]byte, *Violation) {
	if !strings.HasPrefix(payload, payloadPrefix) {
		return nil, ErrBarcodePrefix
	}

	parts := strings.Split(payload, "/")
	if len(parts) < 2 || parts[1] != payloadVersion {
		return nil, ErrBarcodeVersion
	}
	if len(parts) != 3 || parts[2] == "" {
		return nil, ErrBarcodeEncoding
	}

	body := parts[2]
	if rem := len(body) % 8; rem != 0 {
		body += strings.Repeat("=", 8-rem)
	}

	raw, err := base32.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, ErrBarcodeEncoding
	}
	return raw, nil
}
