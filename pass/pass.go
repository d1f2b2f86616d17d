package pass

import (
	"fmt"
	"strings"
	"time"
)

var (
	ContextCredentials = "https://www.w3.org/2018/credentials/v1"
	ContextNZCP        = "https://nzcp.covid19.health.nz/contexts/v1"
)

var (
	TypeVerifiableCredential = "VerifiableCredential"
	TypePublicCovidPass      = "PublicCovidPass"

	// The only version of the credential schema issued so far.
	Version = "1.0.0"
)

// VerifiableCredential is the `vc` claim carried inside the pass CWT.
type VerifiableCredential struct {
	Context           []string           `json:"@context" mapstructure:"@context"`
	Version           string             `json:"version" mapstructure:"version"`
	Type              []string           `json:"type" mapstructure:"type"`
	CredentialSubject *CredentialSubject `json:"credentialSubject" mapstructure:"credentialSubject"`
}

// CredentialSubject holds the attributes of the pass holder. givenName and
// dob are mandatory on every PublicCovidPass; familyName is optional.
type CredentialSubject struct {
	GivenName  string `json:"givenName" mapstructure:"givenName"`
	FamilyName string `json:"familyName,omitempty" mapstructure:"familyName"`
	DOB        string `json:"dob" mapstructure:"dob"`
}

func (s *CredentialSubject) DateOfBirth() (time.Time, error) {
	if s == nil || s.DOB == "" {
		return time.Time{}, fmt.Errorf("date of birth not available")
	}
	dob, err := time.Parse("2006-01-02", s.DOB)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse dob %q: %w", s.DOB, err)
	}
	return dob, nil
}

func (s *CredentialSubject) FullName() string {
	if s == nil {
		return ""
	}
	parts := []string{}
	if s.GivenName != "" {
		parts = append(parts, s.GivenName)
	}
	if s.FamilyName != "" {
		parts = append(parts, s.FamilyName)
	}
	return strings.Join(parts, " ")
}
