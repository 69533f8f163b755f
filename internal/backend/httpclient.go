package backend

import (
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultUserAgent is sent when no version-specific agent was configured.
const DefaultUserAgent = "cerdito"

// NewHTTPClient returns a fresh pooled client that stamps every request with
// userAgent. Each backend run gets its own client; nothing is shared.
func NewHTTPClient(userAgent string) *http.Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client := cleanhttp.DefaultPooledClient()
	client.Transport = &userAgentTransport{userAgent: userAgent, next: client.Transport}
	return client
}

type userAgentTransport struct {
	userAgent string
	next      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.next.RoundTrip(req)
}
