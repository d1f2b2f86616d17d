package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/kokukuma/nzcp-verifier/nzcp"
)

var serverAddr = os.Getenv("NZCP_SERVER_ADDR")

// Posts a pass to the verification server and prints the outcome. Takes
// the pass payload as the first argument; without one it sends the
// specification's example pass, trusting its test issuer for the call.
func main() {
	if serverAddr == "" {
		serverAddr = "http://localhost:8080"
	}

	payload := nzcp.ExamplePass
	trusted := []string{nzcp.IssuerProduction, nzcp.IssuerExample}
	if len(os.Args) > 1 {
		payload = os.Args[1]
		trusted = nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"payload":        payload,
		"trustedIssuers": trusted,
	})
	if err != nil {
		log.Fatalf("failed to build request: %v", err)
	}

	resp, err := http.Post(serverAddr+"/verify", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("failed to call %s: %v", serverAddr, err)
	}
	defer resp.Body.Close()

	result := nzcp.Result{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("failed to decode response: %v", err)
	}

	if !result.Success {
		log.Fatalf("pass rejected: %v", result.Violates)
	}

	fmt.Println("givenName :", result.CredentialSubject.GivenName)
	fmt.Println("familyName:", result.CredentialSubject.FamilyName)
	fmt.Println("dob       :", result.CredentialSubject.DOB)
	fmt.Println("validFrom :", result.ValidFrom)
	fmt.Println("expires   :", result.Expires)
}
