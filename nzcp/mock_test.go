package nzcp

// Everything the example pass is known to contain, asserted across the
// package tests.
const (
	examplePassKID       = "key-1"
	examplePassJTI       = "urn:uuid:60a4f54d-4e30-4332-be33-ad78b1eafa4b"
	examplePassNotBefore = int64(1635883530) // 2021-11-02T20:05:30Z
	examplePassExpires   = int64(1951416330) // 2031-11-02T20:05:30Z

	examplePassGivenName  = "Jack"
	examplePassFamilyName = "Sparrow"
	examplePassDOB        = "1960-04-16"
)

// exampleDocumentJSON is the issuer document of the example pass as served
// from https://nzcp.covid19.health.nz/.well-known/did.json.
const exampleDocumentJSON = `{
  "@context": "https://w3.org/ns/did/v1",
  "id": "did:web:nzcp.covid19.health.nz",
  "verificationMethod": [
    {
      "id": "did:web:nzcp.covid19.health.nz#key-1",
      "controller": "did:web:nzcp.covid19.health.nz",
      "type": "JsonWebKey2020",
      "publicKeyJwk": {
        "kty": "EC",
        "crv": "P-256",
        "x": "zRR-XGsCp12Vvbgui4DD6O6cqmhfPuXMhi1OxPl8760",
        "y": "Iv5SU6FuW-TRYh5_GOrJlcV_gpF_GpFQhCOD8LSk3T0"
      }
    }
  ],
  "assertionMethod": [
    "did:web:nzcp.covid19.health.nz#key-1"
  ]
}`
