package transport

import (
	"net/http"
	"strings"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// SchemeAuth sends "Authorization: <Scheme> <token>". The tagging API
// expects the "Api-Token" scheme.
type SchemeAuth struct {
	Scheme string
}

// Apply implements the Authenticator interface for SchemeAuth.
func (a *SchemeAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", a.Scheme+" "+token)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, token string) {
	req.Header.Set(a.Header, token)
}

// AuthenticatorFor maps a configured auth scheme to an Authenticator.
//
//	"none"           no credentials
//	"Bearer"         Authorization: Bearer <token>
//	"header:<Name>"  <Name>: <token>
//	anything else    Authorization: <scheme> <token>
func AuthenticatorFor(scheme string) Authenticator {
	scheme = strings.TrimSpace(scheme)
	switch {
	case strings.EqualFold(scheme, "none"):
		return &NoAuth{}
	case strings.EqualFold(scheme, "bearer"):
		return &BearerAuth{}
	case strings.HasPrefix(strings.ToLower(scheme), "header:"):
		return &HeaderAuth{Header: strings.TrimSpace(scheme[len("header:"):])}
	case scheme == "":
		return &SchemeAuth{Scheme: "Api-Token"}
	default:
		return &SchemeAuth{Scheme: scheme}
	}
}
