// Package didweb fetches the DID documents that did:web identifiers point
// at. An identifier maps onto a well-known HTTPS location; the optional
// path components and percent-encoded ports of the generic method are
// supported because test deployments rely on them.
package didweb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kokukuma/nzcp-verifier/did"
)

const (
	methodPrefix = "did:web:"

	defaultPath  = "/.well-known/did.json"
	documentPath = "/did.json"

	maxDocumentSize = 1 << 20
)

type Resolver struct {
	Client *http.Client
}

func NewResolver() *Resolver {
	return &Resolver{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Address returns the URL the document for id is published at. A bare host
// resolves under /.well-known/, a host with path components under the path
// itself.
func (r *Resolver) Address(id string) (string, error) {
	if !strings.HasPrefix(id, methodPrefix) {
		return "", fmt.Errorf("not a did:web identifier: %s", id)
	}

	specific := strings.TrimPrefix(id, methodPrefix)
	if specific == "" {
		return "", fmt.Errorf("empty did:web identifier")
	}

	components := strings.Split(specific, ":")
	host, err := url.QueryUnescape(components[0])
	if err != nil {
		return "", fmt.Errorf("failed to unescape host %q: %w", components[0], err)
	}
	components[0] = host

	if len(components) == 1 {
		return "https://" + components[0] + defaultPath, nil
	}
	return "https://" + strings.Join(components, "/") + documentPath, nil
}

func (r *Resolver) Resolve(ctx context.Context, id string) (*did.Document, error) {
	address, err := r.Address(id)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", address, err)
	}
	req.Header.Set("Accept", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch DID document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching %s: %s", address, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read DID document: %w", err)
	}

	doc, err := did.ParseDocument(body)
	if err != nil {
		return nil, err
	}
	if doc.ID != id {
		return nil, fmt.Errorf("resolved document id %q does not match %q", doc.ID, id)
	}
	return doc, nil
}
