package nzcp

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/ory/go-convenience/stringslice"
	"github.com/veraison/go-cose"

	"github.com/kokukuma/nzcp-verifier/did"
	"github.com/kokukuma/nzcp-verifier/didweb"
	"github.com/kokukuma/nzcp-verifier/pass"
)

// KeySource supplies the issuer's key document to the pipeline. The online
// path resolves it over the network, the offline path looks it up in a
// supplied set; everything downstream is identical.
type KeySource interface {
	KeyDocument(ctx context.Context, issuer string) (*did.Document, error)
}

type resolverSource struct {
	resolver *didweb.Resolver
}

func (s resolverSource) KeyDocument(ctx context.Context, issuer string) (*did.Document, error) {
	return s.resolver.Resolve(ctx, issuer)
}

type documentSet map[string]*did.Document

func (s documentSet) KeyDocument(_ context.Context, issuer string) (*did.Document, error) {
	doc, ok := s[issuer]
	if !ok {
		return nil, fmt.Errorf("no key document supplied for %s", issuer)
	}
	return doc, nil
}

type VerifierOption func(*Verifier)

func WithTrustedIssuers(issuers ...string) VerifierOption {
	return func(v *Verifier) {
		v.trustedIssuers = issuers
	}
}

func WithKeyDocuments(docs ...*did.Document) VerifierOption {
	return func(v *Verifier) {
		v.documents = map[string]*did.Document{}
		for _, doc := range docs {
			if doc != nil {
				v.documents[doc.ID] = doc
			}
		}
	}
}

func WithResolver(resolver *didweb.Resolver) VerifierOption {
	return func(v *Verifier) {
		v.resolver = resolver
	}
}

func WithCurrentTime(date time.Time) VerifierOption {
	return func(v *Verifier) {
		v.currentTime = date
	}
}

type Verifier struct {
	trustedIssuers []string
	documents      map[string]*did.Document
	resolver       *didweb.Resolver
	currentTime    time.Time
}

func NewVerifier(opts ...VerifierOption) *Verifier {
	verifier := &Verifier{
		trustedIssuers: DefaultTrustedIssuers,
		documents:      DefaultDocuments(),
		resolver:       didweb.NewResolver(),
	}

	for _, opt := range opts {
		opt(verifier)
	}
	return verifier
}

func (v *Verifier) now() time.Time {
	if v.currentTime.IsZero() {
		return time.Now()
	}
	return v.currentTime
}

// Result is the outcome of one verification. Violates and
// CredentialSubject are mutually exclusive; ValidFrom, Expires and Raw are
// populated on success only.
type Result struct {
	Success           bool                    `json:"success"`
	Violates          *Violation              `json:"violates"`
	CredentialSubject *pass.CredentialSubject `json:"credentialSubject"`
	ValidFrom         *time.Time              `json:"validFrom,omitempty"`
	Expires           *time.Time              `json:"expires,omitempty"`
	Raw               *Claims                 `json:"raw,omitempty"`
}

func failure(violation *Violation) *Result {
	return &Result{Violates: violation}
}

// VerifyOnline verifies the pass payload, resolving the issuer's key
// document over the network.
func (v *Verifier) VerifyOnline(ctx context.Context, payload string) *Result {
	return v.verify(ctx, payload, resolverSource{resolver: v.resolver})
}

// VerifyOffline verifies the pass payload against the verifier's key
// document set. No network access happens.
func (v *Verifier) VerifyOffline(payload string) *Result {
	return v.verify(context.Background(), payload, documentSet(v.documents))
}

func VerifyOnline(ctx context.Context, payload string, opts ...VerifierOption) *Result {
	return NewVerifier(opts...).VerifyOnline(ctx, payload)
}

func VerifyOffline(payload string, opts ...VerifierOption) *Result {
	return NewVerifier(opts...).VerifyOffline(payload)
}

// verify runs the pipeline: envelope, COSE structure, headers, claim
// mapping, issuer trust, key document, signing key, signature, semantic
// claims. The first violation is terminal. Claim semantics run after the
// signature so a tampered payload always reads as a signature failure, not
// as whatever its forged claims would say.
func (v *Verifier) verify(ctx context.Context, payload string, source KeySource) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(ErrUnknown.WithDescription(fmt.Sprintf("%v", r)))
		}
	}()

	raw, violation := parseEnvelope(payload)
	if violation != nil {
		return failure(violation)
	}

	msg, violation := decodeSign1(raw)
	if violation != nil {
		return failure(violation)
	}
	if violation := validateHeaders(msg); violation != nil {
		return failure(violation)
	}

	claims, violation := decodeClaims(msg.Payload)
	if violation != nil {
		return failure(violation)
	}

	if !stringslice.Has(v.trustedIssuers, claims.Issuer) {
		return failure(ErrIssuerUntrusted)
	}

	doc, err := source.KeyDocument(ctx, claims.Issuer)
	if err != nil {
		return failure(ErrDIDResolution.WithDescription(err.Error()))
	}

	key, violation := resolveSigningKey(claims.Issuer, headerKeyID(msg), doc)
	if violation != nil {
		return failure(violation)
	}

	if violation := verifySignature(msg, key); violation != nil {
		return failure(violation)
	}

	if violation := validateClaims(claims, v.now()); violation != nil {
		return failure(violation)
	}

	validFrom := time.Unix(claims.NotBefore, 0).UTC()
	expires := time.Unix(claims.Expires, 0).UTC()
	return &Result{
		Success:           true,
		CredentialSubject: claims.Credential.CredentialSubject,
		ValidFrom:         &validFrom,
		Expires:           &expires,
		Raw:               claims,
	}
}

// verifySignature checks the ES256 signature over the Sig_structure that
// go-cose rebuilds from the original protected bytes and payload. The
// signature is the raw r||s concatenation, not DER.
func verifySignature(msg *cose.Sign1Message, key *ecdsa.PublicKey) *Violation {
	verifier, err := cose.NewVerifier(cose.AlgorithmES256, key)
	if err != nil {
		return ErrSignatureInvalid.WithDescription(err.Error())
	}
	if err := msg.Verify(nil, verifier); err != nil {
		return ErrSignatureInvalid
	}
	return nil
}
