package main

import (
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/kokukuma/nzcp-verifier/nzcp"
)

// Walks the specification's example pass through offline verification and
// dumps everything the verifier decoded. A pass payload given as the first
// argument is verified against the real clock instead.
func main() {
	payload := nzcp.ExamplePass
	opts := []nzcp.VerifierOption{
		nzcp.WithTrustedIssuers(nzcp.IssuerProduction, nzcp.IssuerExample),
	}
	if len(os.Args) > 1 {
		payload = os.Args[1]
	} else {
		date, _ := time.Parse("2006-01-02", "2022-06-01")
		opts = append(opts, nzcp.WithCurrentTime(date))
	}

	result := nzcp.VerifyOffline(payload, opts...)
	spew.Dump(result)

	if !result.Success {
		panic("failed to verify pass: " + result.Violates.Error())
	}

	fmt.Println("givenName :", result.CredentialSubject.GivenName)
	fmt.Println("familyName:", result.CredentialSubject.FamilyName)
	fmt.Println("dob       :", result.CredentialSubject.DOB)
	fmt.Println("jti       :", result.Raw.JTI)
	fmt.Println("issuer    :", result.Raw.Issuer)
}
