// Package webservice calls an external HTTP API and decodes its JSON
// response, generalizing the one-off Pokemon-API fetch the basics
// package demonstrated into the shape a FetchJob worker actually needs:
// a context-aware call with a configurable client and a typed
// destination for the decode.
package webservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Invoker calls a remote web service and decodes its response into dst.
type Invoker interface {
	Invoke(ctx context.Context, url string, dst any) error
}

// HTTPInvoker is an Invoker backed by an *http.Client.
type HTTPInvoker struct {
	Client *http.Client
}

// NewHTTPInvoker builds an HTTPInvoker. A nil client is replaced with
// http.DefaultClient.
func NewHTTPInvoker(client *http.Client) *HTTPInvoker {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPInvoker{Client: client}
}

// ErrUnexpectedStatus is wrapped with the response status when a call
// returns a non-2xx status code.
type ErrUnexpectedStatus struct {
	URL    string
	Status string
}

func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("webservice: %s: unexpected status %s", e.URL, e.Status)
}

// Invoke issues a GET request against url and decodes the JSON body into
// dst, mirroring the two decode strategies the basics package showed
// (into a map, or into a concrete struct) by simply decoding into
// whatever dst the caller supplies.
func (h *HTTPInvoker) Invoke(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("webservice: building request for %s: %w", url, err)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webservice: calling %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &ErrUnexpectedStatus{URL: url, Status: resp.Status}
	}

	if dst == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("webservice: decoding response from %s: %w", url, err)
	}
	return nil
}
