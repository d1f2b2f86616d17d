package nzcp

import (
	"crypto/ecdsa"

	"github.com/ory/go-convenience/stringslice"

	"github.com/kokukuma/nzcp-verifier/did"
)

// resolveSigningKey walks the issuer DID document down to the ECDSA public
// key the pass claims to be signed with. Each step has its own violation so
// callers can tell a revoked reference from broken key material. The
// document may come from a live resolution or a caller-supplied set; both
// converge here.
func resolveSigningKey(issuer, kid string, doc *did.Document) (*ecdsa.PublicKey, *Violation) {
	if doc == nil || len(doc.AssertionMethod) == 0 {
		return nil, ErrAssertionMethodMissing
	}

	reference := issuer + "#" + kid
	if !stringslice.Has(doc.AssertionMethod, reference) {
		return nil, ErrPublicKeyNotFound
	}

	if len(doc.VerificationMethod) == 0 {
		return nil, ErrVerificationMethodMissing
	}
	method := doc.FindVerificationMethod(reference)
	if method == nil {
		return nil, ErrVerificationMethodNotFound
	}
	if method.Type != did.TypeJSONWebKey2020 {
		return nil, ErrKeyTypeUnsupported
	}

	jwk := method.PublicKeyJWK
	if jwk == nil || jwk.Kty != did.KeyTypeEC || jwk.Crv != did.CurveP256 {
		return nil, ErrCurveUnsupported
	}

	key, err := jwk.ECDSAPublicKey()
	if err != nil {
		return nil, ErrKeyMaterialInvalid.WithDescription(err.Error())
	}
	return key, nil
}
