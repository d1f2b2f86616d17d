// Package nzcp verifies New Zealand COVID Pass payloads: the NZCP:/1/
// envelope, the COSE_Sign1 structure inside it, the CWT claims, the issuer's
// published key material and the ES256 signature. Every rejection is a
// *Violation citing the clause of https://nzcp.covid19.health.nz that the
// pass breaks.
package nzcp

import "fmt"

// Violation is the reason a pass was rejected. Message and Section identify
// the catalog entry; Description optionally carries instance details (the
// underlying resolver error, the panic value).
type Violation struct {
	Message     string `json:"message"`
	Section     string `json:"section"`
	Link        string `json:"link"`
	Description string `json:"description,omitempty"`
}

func (v *Violation) Error() string {
	if v.Section == "" {
		return v.Message
	}
	return fmt.Sprintf("section %s: %s", v.Section, v.Message)
}

// Is matches violations by catalog identity, so a copy carrying an added
// description still equals its catalog entry under errors.Is.
func (v *Violation) Is(target error) bool {
	t, ok := target.(*Violation)
	if !ok {
		return false
	}
	return v.Message == t.Message && v.Section == t.Section
}

// WithDescription returns a copy of the violation with instance detail
// attached. The catalog entries themselves are never mutated.
func (v *Violation) WithDescription(description string) *Violation {
	copied := *v
	copied.Description = description
	return &copied
}

const (
	linkBarcode        = "https://nzcp.covid19.health.nz/#2d-barcode-encoding"
	linkDataModel      = "https://nzcp.covid19.health.nz/#data-model"
	linkHeaders        = "https://nzcp.covid19.health.nz/#cwt-headers"
	linkClaims         = "https://nzcp.covid19.health.nz/#cwt-claims"
	linkCredential     = "https://nzcp.covid19.health.nz/#verifiable-credential-claim-structure"
	linkPublicPass     = "https://nzcp.covid19.health.nz/#publiccovidpass"
	linkTrustedIssuers = "https://nzcp.covid19.health.nz/#trusted-issuers"
	linkIssuer         = "https://nzcp.covid19.health.nz/#issuer-identifier"
	linkDIDDocument    = "https://nzcp.covid19.health.nz/#example-resolved-did-document"
	linkVerifySteps    = "https://nzcp.covid19.health.nz/#steps-to-verify-a-new-zealand-covid-pass"
	linkSpec           = "https://nzcp.covid19.health.nz/"
)

var (
	// Barcode envelope
	ErrPayloadNotString = &Violation{Message: "The payload of the QR Code MUST be a string", Section: "2.1.0.1", Link: linkBarcode}
	ErrBarcodePrefix    = &Violation{Message: "The payload of the QR Code MUST begin with the prefix of `NZCP:/`", Section: "2.1.0.2", Link: linkBarcode}
	ErrBarcodeVersion   = &Violation{Message: "The version-identifier portion of the payload for the specification MUST be 1", Section: "2.1.0.3", Link: linkBarcode}
	ErrBarcodeEncoding  = &Violation{Message: "The payload of the QR Code MUST be base32 encoded", Section: "2.1.0.4", Link: linkBarcode}

	// COSE structure
	ErrCWTDecode          = &Violation{Message: "The payload of the QR Code MUST be a CBOR encoded COSE_Sign1 structure", Section: "2.1.0.5", Link: linkDataModel}
	ErrHeaderNotProtected = &Violation{Message: "All headers MUST be carried in the protected headers of the COSE_Sign1 structure", Section: "2.2", Link: linkHeaders}
	ErrKeyIDMissing       = &Violation{Message: "The protected headers MUST contain a kid header", Section: "2.2.1", Link: linkHeaders}
	ErrAlgUnsupported     = &Violation{Message: "The protected headers MUST declare the alg as ES256", Section: "2.2.2", Link: linkHeaders}

	// CWT claims
	ErrTokenIDMissing    = &Violation{Message: "The CWT claims MUST contain a cti claim", Section: "2.3.1", Link: linkClaims}
	ErrTokenIDLength     = &Violation{Message: "The cti claim MUST be a 16 byte CWT token ID", Section: "2.3.1", Link: linkClaims}
	ErrIssuerMissing     = &Violation{Message: "The CWT claims MUST contain an iss claim", Section: "2.3.2", Link: linkClaims}
	ErrNotBeforeMissing  = &Violation{Message: "The CWT claims MUST contain an nbf claim", Section: "2.3.3", Link: linkClaims}
	ErrExpiryMissing     = &Violation{Message: "The CWT claims MUST contain an exp claim", Section: "2.3.4", Link: linkClaims}
	ErrNotActive         = &Violation{Message: "The current datetime MUST be after or equal to the nbf claim", Section: "2.3.3", Link: linkClaims}
	ErrExpired           = &Violation{Message: "The current datetime MUST be before the exp claim", Section: "2.3.4", Link: linkClaims}
	ErrCredentialMissing = &Violation{Message: "The CWT claims MUST contain a vc claim", Section: "2.3.5", Link: linkClaims}

	// Verifiable credential structure
	ErrContextInvalid   = &Violation{Message: "The vc @context MUST contain the base VC context followed by the NZCP context", Section: "2.4.1", Link: linkCredential}
	ErrTypeInvalid      = &Violation{Message: "The vc type MUST be VerifiableCredential followed by PublicCovidPass", Section: "2.4.2", Link: linkPublicPass}
	ErrVersionInvalid   = &Violation{Message: "The vc version MUST be 1.0.0", Section: "2.4.3", Link: linkCredential}
	ErrSubjectMissing   = &Violation{Message: "The vc MUST contain a credentialSubject", Section: "2.4.4", Link: linkPublicPass}
	ErrGivenNameMissing = &Violation{Message: "The credentialSubject MUST contain a givenName", Section: "2.4.5", Link: linkPublicPass}
	ErrDOBMissing       = &Violation{Message: "The credentialSubject MUST contain a dob", Section: "2.4.6", Link: linkPublicPass}

	// Trust and key resolution
	ErrIssuerUntrusted = &Violation{Message: "The iss claim MUST be an issuer from the trusted issuer list", Section: "3.1", Link: linkTrustedIssuers}
	ErrDIDResolution   = &Violation{Message: "The DID document of the iss claim MUST be resolvable", Section: "3.2", Link: linkIssuer}

	ErrAssertionMethodMissing     = &Violation{Message: "The DID document MUST contain an assertionMethod list", Section: "3.3.1", Link: linkDIDDocument}
	ErrPublicKeyNotFound          = &Violation{Message: "The public key referenced by the pass was not found in the issuer DID document", Section: "3.3.2", Link: linkDIDDocument}
	ErrVerificationMethodMissing  = &Violation{Message: "The DID document MUST contain a verificationMethod list", Section: "3.3.3", Link: linkDIDDocument}
	ErrVerificationMethodNotFound = &Violation{Message: "The DID document MUST contain a verificationMethod entry for the referenced public key", Section: "3.3.4", Link: linkDIDDocument}
	ErrKeyTypeUnsupported         = &Violation{Message: "The verification method type MUST be JsonWebKey2020", Section: "3.3.5", Link: linkDIDDocument}
	ErrCurveUnsupported           = &Violation{Message: "The public key MUST be an EC key on the P-256 curve", Section: "3.3.6", Link: linkDIDDocument}
	ErrKeyMaterialInvalid         = &Violation{Message: "The public key JWK MUST contain valid x and y coordinates", Section: "3.3.7", Link: linkDIDDocument}

	// Signature
	ErrSignatureInvalid = &Violation{Message: "The signature MUST verify against the issuer public key and the signed payload", Section: "4.1", Link: linkVerifySteps}

	// Boundary for faults that are not a known violation
	ErrUnknown = &Violation{Message: "An unexpected error occurred while verifying the pass", Section: "", Link: linkSpec}
)
