package nzcp

import (
	"encoding/json"

	"github.com/kokukuma/nzcp-verifier/did"
)

var (
	// IssuerProduction signs every pass the Ministry of Health issues to
	// the public.
	IssuerProduction = "did:web:nzcp.identity.health.nz"

	// IssuerExample signs the test passes published alongside the
	// technical specification. Trust it in tests only.
	IssuerExample = "did:web:nzcp.covid19.health.nz"
)

// DefaultTrustedIssuers is the allow-list used when the caller supplies
// none: the production issuer alone.
var DefaultTrustedIssuers = []string{IssuerProduction}

// ExamplePass is the valid example pass published with the technical
// specification, signed by IssuerExample. It verifies against
// ExampleDocument and carries the subject Jack Sparrow, born 1960-04-16.
const ExamplePass = "NZCP:/1/2KCEVIQEIVVWK6JNGEASNICZAEP2KALYDZSGSZB2O5SWEOTOPJRXALTDN53GSZBRHEXGQZLBNR2GQLTOPICRUYMBTIFAIGTUKBAAUYTWMOSGQQDDN5XHIZLYOSBHQJTIOR2HA4Z2F4XXO53XFZ3TGLTPOJTS6MRQGE4C6Y3SMVSGK3TUNFQWY4ZPOYYXQKTIOR2HA4Z2F4XW46TDOAXGG33WNFSDCOJONBSWC3DUNAXG46RPMNXW45DFPB2HGL3WGFTXMZLSONUW63TFGEXDALRQMR2HS4DFQJ2FMZLSNFTGSYLCNRSUG4TFMRSW45DJMFWG6UDVMJWGSY2DN53GSZCQMFZXG4LDOJSWIZLOORUWC3CTOVRGUZLDOSRWSZ3JOZSW4TTBNVSWISTBMNVWUZTBNVUWY6KOMFWWKZ2TOBQXE4TPO5RWI33CNIYTSNRQFUYDILJRGYDVAYFE6VGU4MCDGK7DHLLYWHVPUS2YIDJOA6Y524TD3AZRM263WTY2BE4DPKIF27WKF3UDNNVSVWRDYIYVJ65IRJJJ6Z25M2DO4YZLBHWFQGVQR5ZLIWEQJOZTS3IQ7JTNCFDX"

// ExampleDocument returns the resolved DID document of the specification's
// test issuer, as published at nzcp.covid19.health.nz.
func ExampleDocument() *did.Document {
	return &did.Document{
		Context: json.RawMessage(`"https://w3.org/ns/did/v1"`),
		ID:      IssuerExample,
		VerificationMethod: []did.VerificationMethod{
			{
				ID:         IssuerExample + "#key-1",
				Controller: IssuerExample,
				Type:       did.TypeJSONWebKey2020,
				PublicKeyJWK: &did.JWK{
					Kty: did.KeyTypeEC,
					Crv: did.CurveP256,
					X:   "zRR-XGsCp12Vvbgui4DD6O6cqmhfPuXMhi1OxPl8760",
					Y:   "Iv5SU6FuW-TRYh5_GOrJlcV_gpF_GpFQhCOD8LSk3T0",
				},
			},
		},
		AssertionMethod: []string{IssuerExample + "#key-1"},
	}
}

// DefaultDocuments is the bundled key-document set for offline
// verification, keyed by document id. The production document rotates with
// the ministry's keys, so offline verification of real passes takes the
// current document through WithKeyDocuments; the bundled set covers the
// specification's test issuer. The default trust list keeps the test
// issuer rejected unless a caller opts in.
func DefaultDocuments() map[string]*did.Document {
	return map[string]*did.Document{
		IssuerExample: ExampleDocument(),
	}
}
