package nzcp

import (
	"github.com/veraison/go-cose"
)

// decodeSign1 parses the raw bytes as a tagged COSE_Sign1 structure and
// checks the constraints the pass format adds on top of COSE itself: every
// header lives in the protected bucket and the payload is present.
func decodeSign1(raw []byte) (*cose.Sign1Message, *Violation) {
	msg := &cose.Sign1Message{}
	if err := msg.UnmarshalCBOR(raw); err != nil {
		return nil, ErrCWTDecode.WithDescription(err.Error())
	}

	if len(msg.Headers.Unprotected) != 0 {
		return nil, ErrHeaderNotProtected
	}
	if len(msg.Payload) == 0 {
		return nil, ErrCWTDecode
	}
	return msg, nil
}

// headerKeyID extracts the kid protected header. COSE carries key ids as
// byte strings; issuers that encode a text string are accepted too.
// Missing or unusable values map to "" and are flagged by validateHeaders.
func headerKeyID(msg *cose.Sign1Message) string {
	raw, ok := msg.Headers.Protected[cose.HeaderLabelKeyID]
	if !ok {
		return ""
	}
	switch kid := raw.(type) {
	case []byte:
		return string(kid)
	case string:
		return kid
	}
	return ""
}

func validateHeaders(msg *cose.Sign1Message) *Violation {
	if headerKeyID(msg) == "" {
		return ErrKeyIDMissing
	}
	alg, err := msg.Headers.Protected.Algorithm()
	if err != nil || alg != cose.AlgorithmES256 {
		return ErrAlgUnsupported
	}
	return nil
}
