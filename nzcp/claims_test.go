package nzcp

import (
	"errors"
	"reflect"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/kokukuma/nzcp-verifier/pass"
)

func mustCBOR(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := cbor.Marshal(v)
	if err != nil {
		t.Fatalf("failed to encode cbor: %v", err)
	}
	return raw
}

func TestDecodeClaimsGold(t *testing.T) {
	msg := goldSign1(t)

	claims, violation := decodeClaims(msg.Payload)
	if violation != nil {
		t.Fatalf("failed to decode claims: %v", violation)
	}

	if claims.Issuer != IssuerExample {
		t.Errorf("expected issuer %q, got %q", IssuerExample, claims.Issuer)
	}
	if claims.JTI != examplePassJTI {
		t.Errorf("expected jti %q, got %q", examplePassJTI, claims.JTI)
	}
	if claims.NotBefore != examplePassNotBefore {
		t.Errorf("expected nbf %d, got %d", examplePassNotBefore, claims.NotBefore)
	}
	if claims.Expires != examplePassExpires {
		t.Errorf("expected exp %d, got %d", examplePassExpires, claims.Expires)
	}

	vc := claims.Credential
	if vc == nil {
		t.Fatal("expected vc claim, got none")
	}
	wantContext := []string{pass.ContextCredentials, pass.ContextNZCP}
	if !reflect.DeepEqual(vc.Context, wantContext) {
		t.Errorf("expected @context %v, got %v", wantContext, vc.Context)
	}
	wantType := []string{pass.TypeVerifiableCredential, pass.TypePublicCovidPass}
	if !reflect.DeepEqual(vc.Type, wantType) {
		t.Errorf("expected type %v, got %v", wantType, vc.Type)
	}
	if vc.Version != pass.Version {
		t.Errorf("expected version %q, got %q", pass.Version, vc.Version)
	}

	wantSubject := &pass.CredentialSubject{
		GivenName:  examplePassGivenName,
		FamilyName: examplePassFamilyName,
		DOB:        examplePassDOB,
	}
	if !reflect.DeepEqual(vc.CredentialSubject, wantSubject) {
		t.Errorf("expected subject %+v, got %+v", wantSubject, vc.CredentialSubject)
	}
}

func TestDecodeClaimsTokenID(t *testing.T) {
	decodeJTI := func(cti []byte) string {
		claims, violation := decodeClaims(mustCBOR(t, map[interface{}]interface{}{int64(7): cti}))
		if violation != nil {
			t.Fatalf("failed to decode claims: %v", violation)
		}
		return claims.JTI
	}

	cti := []byte{0xf0, 0xe1, 0xd2, 0xc3, 0xb4, 0xa5, 0x96, 0x87, 0x78, 0x69, 0x5a, 0x4b, 0x3c, 0x2d, 0x1e, 0x0f}
	want := "urn:uuid:f0e1d2c3-b4a5-9687-7869-5a4b3c2d1e0f"
	if got := decodeJTI(cti); got != want {
		t.Errorf("expected jti %q, got %q", want, got)
	}
	if got := decodeJTI(cti); got != want {
		t.Errorf("expected a deterministic jti, got %q", got)
	}

	other := append([]byte{}, cti...)
	other[15] ^= 0x01
	if got := decodeJTI(other); got == want {
		t.Errorf("expected differing tokens to map to differing jtis, both %q", got)
	}
}

func TestDecodeClaimsErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    *Violation
	}{
		{
			name:    "not a map",
			payload: mustCBOR(t, "covid pass"),
			want:    ErrCWTDecode,
		},
		{
			name:    "cti too short",
			payload: mustCBOR(t, map[interface{}]interface{}{int64(7): make([]byte, 15)}),
			want:    ErrTokenIDLength,
		},
		{
			name:    "cti too long",
			payload: mustCBOR(t, map[interface{}]interface{}{int64(7): make([]byte, 17)}),
			want:    ErrTokenIDLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, violation := decodeClaims(tt.payload)
			if violation == nil || !errors.Is(violation, tt.want) {
				t.Fatalf("expected violation %v, got %v", tt.want, violation)
			}
		})
	}
}

func TestDecodeClaimsLenient(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		check   func(t *testing.T, claims *Claims)
	}{
		{
			name:    "empty claim set",
			payload: mustCBOR(t, map[interface{}]interface{}{}),
			check: func(t *testing.T, claims *Claims) {
				if !reflect.DeepEqual(claims, &Claims{}) {
					t.Errorf("expected zero claims, got %+v", claims)
				}
			},
		},
		{
			name: "unknown keys ignored",
			payload: mustCBOR(t, map[interface{}]interface{}{
				int64(1):  IssuerExample,
				int64(99): "x",
				"custom":  true,
			}),
			check: func(t *testing.T, claims *Claims) {
				if claims.Issuer != IssuerExample {
					t.Errorf("expected issuer %q, got %q", IssuerExample, claims.Issuer)
				}
			},
		},
		{
			name:    "float timestamp",
			payload: mustCBOR(t, map[interface{}]interface{}{int64(5): float64(1635883530)}),
			check: func(t *testing.T, claims *Claims) {
				if claims.NotBefore != 1635883530 {
					t.Errorf("expected nbf 1635883530, got %d", claims.NotBefore)
				}
			},
		},
		{
			name:    "cti of the wrong type dropped",
			payload: mustCBOR(t, map[interface{}]interface{}{int64(7): "not bytes"}),
			check: func(t *testing.T, claims *Claims) {
				if claims.JTI != "" {
					t.Errorf("expected empty jti, got %q", claims.JTI)
				}
			},
		},
		{
			name:    "vc of the wrong type dropped",
			payload: mustCBOR(t, map[interface{}]interface{}{"vc": "not a map"}),
			check: func(t *testing.T, claims *Claims) {
				if claims.Credential != nil {
					t.Errorf("expected no credential, got %+v", claims.Credential)
				}
			},
		},
		{
			name: "vc decoded field by field",
			payload: mustCBOR(t, map[interface{}]interface{}{
				"vc": map[interface{}]interface{}{
					"version":           pass.Version,
					"credentialSubject": "bogus",
				},
			}),
			check: func(t *testing.T, claims *Claims) {
				if claims.Credential == nil {
					t.Fatal("expected partially decoded credential")
				}
				if claims.Credential.Version != pass.Version {
					t.Errorf("expected version %q, got %q", pass.Version, claims.Credential.Version)
				}
				if claims.Credential.CredentialSubject != nil {
					t.Errorf("expected no subject, got %+v", claims.Credential.CredentialSubject)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, violation := decodeClaims(tt.payload)
			if violation != nil {
				t.Fatalf("failed to decode claims: %v", violation)
			}
			tt.check(t, claims)
		})
	}
}
