package client

import (
	"fmt"
	"net/http"
)

// Credentials attach authentication to an outgoing request.
type Credentials interface {
	Apply(req *http.Request)
	// CurlFlag is the matching curl option, e.g. -u 'user:pass'
	CurlFlag() string
}

type BasicAuth struct {
	User     string
	Password string
}

func (b BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(b.User, b.Password)
}

func (b BasicAuth) CurlFlag() string {
	return fmt.Sprintf("-u '%s:%s'", b.User, b.Password)
}

// TokenCookie presents a token as a cookie, the way the Knox SSO provider
// expects hadoop-jwt.
type TokenCookie struct {
	Name  string
	Token string
}

func (t TokenCookie) Apply(req *http.Request) {
	req.AddCookie(&http.Cookie{Name: t.Name, Value: t.Token})
}

func (t TokenCookie) CurlFlag() string {
	return fmt.Sprintf("-b '%s=%s'", t.Name, t.Token)
}

type BearerToken string

func (t BearerToken) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+string(t))
}

func (t BearerToken) CurlFlag() string {
	return fmt.Sprintf("-H 'Authorization:Bearer %s'", string(t))
}
