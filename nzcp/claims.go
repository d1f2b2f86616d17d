package nzcp

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/kokukuma/nzcp-verifier/pass"
)

// Claims is the CWT claim set of a pass. Zero values mean the claim was
// absent or carried an unusable type; validateClaims reports which.
type Claims struct {
	JTI        string                     `json:"jti"`
	Issuer     string                     `json:"iss"`
	NotBefore  int64                      `json:"nbf"`
	Expires    int64                      `json:"exp"`
	Credential *pass.VerifiableCredential `json:"vc"`
}

// CWT claim keys, RFC 8392 section 3.1. The credential itself rides on a
// private string key.
const (
	claimKeyIss int64 = 1
	claimKeyExp int64 = 4
	claimKeyNbf int64 = 5
	claimKeyCti int64 = 7

	claimKeyVC = "vc"
)

// decodeClaims maps the raw CWT claim entries onto Claims. The mapping is
// total: unrecognized keys and mistyped values are dropped rather than
// rejected. The one exception is a cti token of the wrong size, which can
// never become a token id and is reported immediately.
func decodeClaims(payload []byte) (*Claims, *Violation) {
	var raw map[interface{}]interface{}
	if err := cbor.Unmarshal(payload, &raw); err != nil {
		return nil, ErrCWTDecode.WithDescription(err.Error())
	}

	claims := &Claims{}
	for k, v := range raw {
		if code, ok := intKey(k); ok {
			switch code {
			case claimKeyIss:
				if issuer, ok := v.(string); ok {
					claims.Issuer = issuer
				}
			case claimKeyExp:
				if ts, ok := epochSeconds(v); ok {
					claims.Expires = ts
				}
			case claimKeyNbf:
				if ts, ok := epochSeconds(v); ok {
					claims.NotBefore = ts
				}
			case claimKeyCti:
				token, ok := v.([]byte)
				if !ok {
					continue
				}
				id, err := uuid.FromBytes(token)
				if err != nil {
					return nil, ErrTokenIDLength
				}
				claims.JTI = id.URN()
			}
			continue
		}

		if name, ok := k.(string); ok && name == claimKeyVC {
			claims.Credential = decodeCredential(v)
		}
	}
	return claims, nil
}

// intKey unwraps a CBOR map key that arrived as either signed or unsigned.
func intKey(k interface{}) (int64, bool) {
	switch v := k.(type) {
	case int64:
		return v, true
	case uint64:
		return int64(v), true
	}
	return 0, false
}

func epochSeconds(v interface{}) (int64, bool) {
	switch ts := v.(type) {
	case int64:
		return ts, true
	case uint64:
		return int64(ts), true
	case float64:
		return int64(ts), true
	}
	return 0, false
}

// decodeCredential fills a VerifiableCredential from the decoded vc map.
// Field-level decode failures leave the struct partially populated;
// validateClaims names the field that ends up empty.
func decodeCredential(v interface{}) *pass.VerifiableCredential {
	fields, ok := v.(map[interface{}]interface{})
	if !ok {
		return nil
	}
	credential := &pass.VerifiableCredential{}
	if err := mapstructure.Decode(fields, credential); err != nil {
		return credential
	}
	return credential
}
