package transport

import (
	"net/http"
)

// Authenticator applies credentials to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {}

// BearerAuth sends the token as a Bearer Authorization header. Raindrop uses
// this scheme.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) {
	if a.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// HeaderAuth sends the token in a custom header.
type HeaderAuth struct {
	Header string
	Token  string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request) {
	if a.Token == "" {
		return
	}
	req.Header.Set(a.Header, a.Token)
}

// QueryAuth sends the token as a query parameter. Pinboard expects
// auth_token=user:TOKEN.
type QueryAuth struct {
	Param string
	Token string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request) {
	if req.URL == nil || a.Token == "" {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, a.Token)
	req.URL.RawQuery = query.Encode()
}
