//go:build integration

package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// EmailAPI stands in for the Resend HTTP API. It records every email posted
// to /emails and answers with the configured status.
type EmailAPI struct {
	mu       sync.Mutex
	server   *httptest.Server
	received []map[string]any
	status   int
}

// NewEmailAPI starts the fake API.
func NewEmailAPI() *EmailAPI {
	a := &EmailAPI{status: http.StatusOK}
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
	return a
}

func (a *EmailAPI) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if r.Method != http.MethodPost || r.URL.Path != "/emails" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.status)
	if a.status >= 300 {
		_, _ = fmt.Fprintf(w, `{"statusCode":%d,"name":"error","message":"rejected by test"}`, a.status)
		return
	}

	a.received = append(a.received, request)
	_, _ = fmt.Fprintf(w, `{"id":"email-%d"}`, len(a.received))
}

// HTTPClient returns a client that routes every request to the fake API.
func (a *EmailAPI) HTTPClient() *http.Client {
	target, _ := url.Parse(a.server.URL)
	return &http.Client{Transport: redirectTransport{target: target}}
}

// SetStatus changes the status answered to later requests.
func (a *EmailAPI) SetStatus(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
}

// Received returns the accepted request bodies in arrival order.
func (a *EmailAPI) Received() []map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]map[string]any, len(a.received))
	copy(out, a.received)
	return out
}

// Close stops the server.
func (a *EmailAPI) Close() {
	a.server.Close()
}

type redirectTransport struct {
	target *url.URL
}

func (t redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}
