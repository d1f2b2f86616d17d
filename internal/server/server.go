package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/kokukuma/nzcp-verifier/nzcp"
)

var debug = os.Getenv("NZCP_DEBUG") != ""

// NewServer wraps a verifier built from opts. Requests can widen the trust
// list per call; everything else is fixed at construction.
func NewServer(opts ...nzcp.VerifierOption) *Server {
	return &Server{
		verifier: nzcp.NewVerifier(opts...),
		opts:     opts,
	}
}

type Server struct {
	verifier *nzcp.Verifier
	opts     []nzcp.VerifierOption
}

// VerifyRequest is the /verify body. Payload stays raw JSON so a non-string
// value can be reported as the "MUST be a string" violation instead of a
// decode error.
type VerifyRequest struct {
	Payload        json.RawMessage `json:"payload"`
	Online         bool            `json:"online,omitempty"`
	TrustedIssuers []string        `json:"trustedIssuers,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) VerifyPass(w http.ResponseWriter, r *http.Request) {
	req := VerifyRequest{}
	if err := parseJSON(r, &req); err != nil {
		jsonErrorResponse(w, fmt.Errorf("failed to parse request: %v", err), http.StatusBadRequest)
		return
	}
	if debug {
		spew.Dump(req)
	}

	var payload string
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		jsonResponse(w, &nzcp.Result{Violates: nzcp.ErrPayloadNotString}, http.StatusOK)
		return
	}

	verifier := s.verifier
	if len(req.TrustedIssuers) > 0 {
		opts := append([]nzcp.VerifierOption{}, s.opts...)
		opts = append(opts, nzcp.WithTrustedIssuers(req.TrustedIssuers...))
		verifier = nzcp.NewVerifier(opts...)
	}

	var result *nzcp.Result
	if req.Online {
		result = verifier.VerifyOnline(r.Context(), payload)
	} else {
		result = verifier.VerifyOffline(payload)
	}
	jsonResponse(w, result, http.StatusOK)
}

func parseJSON(r *http.Request, v interface{}) error {
	if r == nil || r.Body == nil {
		return errors.New("No request given")
	}

	defer r.Body.Close()
	defer io.Copy(io.Discard, r.Body)

	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		return err
	}
	return nil
}

func jsonResponse(w http.ResponseWriter, d interface{}, c int) {
	dj, err := json.Marshal(d)
	if err != nil {
		http.Error(w, "Error creating JSON response", http.StatusInternalServerError)
		return
	}
	if debug {
		spew.Dump(dj)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(c)
	fmt.Fprintf(w, "%s", dj)
}

func jsonErrorResponse(w http.ResponseWriter, e error, c int) {
	dj, err := json.Marshal(ErrorResponse{Error: e.Error()})
	if err != nil {
		http.Error(w, "Error creating JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(c)
	fmt.Fprintf(w, "%s", dj)
}
