package nzcp

import (
	"time"

	"github.com/kokukuma/nzcp-verifier/pass"
)

// validateClaims enforces the semantic claim rules in their published
// order, first failure terminal. The validity window is half-open: a pass
// is usable from exactly nbf up to but excluding exp.
func validateClaims(claims *Claims, now time.Time) *Violation {
	if claims.JTI == "" {
		return ErrTokenIDMissing
	}
	if claims.Issuer == "" {
		return ErrIssuerMissing
	}
	if claims.NotBefore == 0 {
		return ErrNotBeforeMissing
	}
	if claims.Expires == 0 {
		return ErrExpiryMissing
	}
	if now.Unix() < claims.NotBefore {
		return ErrNotActive
	}
	if now.Unix() >= claims.Expires {
		return ErrExpired
	}

	vc := claims.Credential
	if vc == nil {
		return ErrCredentialMissing
	}
	if len(vc.Context) < 2 || vc.Context[0] != pass.ContextCredentials || vc.Context[1] != pass.ContextNZCP {
		return ErrContextInvalid
	}
	if len(vc.Type) != 2 || vc.Type[0] != pass.TypeVerifiableCredential || vc.Type[1] != pass.TypePublicCovidPass {
		return ErrTypeInvalid
	}
	if vc.Version != pass.Version {
		return ErrVersionInvalid
	}

	subject := vc.CredentialSubject
	if subject == nil {
		return ErrSubjectMissing
	}
	if subject.GivenName == "" {
		return ErrGivenNameMissing
	}
	if subject.DOB == "" {
		return ErrDOBMissing
	}
	return nil
}
