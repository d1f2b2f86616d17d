// Package did models the subset of a DID document that NZ COVID Pass
// issuers publish: the document id, the assertion-method key references and
// the verification methods carrying P-256 public keys as JWKs.
package did

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
)

var (
	KeyTypeEC          = "EC"
	CurveP256          = "P-256"
	TypeJSONWebKey2020 = "JsonWebKey2020"
)

type Document struct {
	Context            json.RawMessage      `json:"@context,omitempty"`
	ID                 string               `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	AssertionMethod    []string             `json:"assertionMethod"`
}

type VerificationMethod struct {
	ID           string `json:"id"`
	Controller   string `json:"controller"`
	Type         string `json:"type"`
	PublicKeyJWK *JWK   `json:"publicKeyJwk"`
}

// JWK carries an elliptic-curve public key as base64url (unpadded)
// coordinates.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DID document: %w", err)
	}
	if doc.ID == "" {
		return nil, fmt.Errorf("DID document has no id")
	}
	return &doc, nil
}

func (d *Document) FindVerificationMethod(id string) *VerificationMethod {
	if d == nil {
		return nil
	}
	for i := range d.VerificationMethod {
		if d.VerificationMethod[i].ID == id {
			return &d.VerificationMethod[i]
		}
	}
	return nil
}

// ECDSAPublicKey reconstructs the public key from the JWK coordinates. The
// point is what the signer published in uncompressed form (0x04 || x || y);
// both coordinates must decode and sit on the P-256 curve.
func (k *JWK) ECDSAPublicKey() (*ecdsa.PublicKey, error) {
	if k == nil {
		return nil, fmt.Errorf("jwk is nil")
	}
	if k.X == "" || k.Y == "" {
		return nil, fmt.Errorf("jwk is missing a coordinate")
	}

	xBytes, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil {
		return nil, fmt.Errorf("failed to decode x coordinate: %w", err)
	}
	yBytes, err := base64.RawURLEncoding.DecodeString(k.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to decode y coordinate: %w", err)
	}
	if len(xBytes) == 0 || len(xBytes) > 32 || len(yBytes) == 0 || len(yBytes) > 32 {
		return nil, fmt.Errorf("invalid coordinate length: x=%d y=%d", len(xBytes), len(yBytes))
	}

	pubKey := &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(xBytes),
		Y:     new(big.Int).SetBytes(yBytes),
	}
	if !pubKey.Curve.IsOnCurve(pubKey.X, pubKey.Y) {
		return nil, fmt.Errorf("point is not on the P-256 curve")
	}
	return pubKey, nil
}
