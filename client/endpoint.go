package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/pkg/errors"
)

// Endpoint is the connection state shared by every service client. Shell
// commands such as host, port and user mutate it between requests.
type Endpoint struct {
	Prefix   string
	Host     string
	Port     int
	RootPath string
	User     string
	Password string
	Token    string
	UseSSO   bool
	Curl     bool
	CurlOut  io.Writer
	Proxies  map[string]string
	Headers  map[string]string

	// TokenURL is the Knox token endpoint used when UseSSO is set
	TokenURL string

	httpClient *http.Client
}

func NewEndpoint(svc config.Service, rootPath string) *Endpoint {
	return &Endpoint{
		Prefix:   svc.Prefix,
		Host:     svc.Host,
		Port:     svc.Port,
		RootPath: rootPath,
		User:     svc.User,
		Password: svc.Password,
		UseSSO:   svc.UseSSO,
		TokenURL: svc.TokenURL,
		Curl:     svc.Curl,
		Proxies:  map[string]string{"http": "", "https": ""},
		Headers:  map[string]string{},
	}
}

func (e *Endpoint) BaseURL() string {
	return fmt.Sprintf("%s://%s:%d", e.Prefix, e.Host, e.Port)
}

func (e *Endpoint) WebURL() string {
	return e.BaseURL() + e.RootPath
}

// Auth returns the credentials presented on each request: the SSO cookie
// once a token is held, otherwise basic auth when a password is set.
func (e *Endpoint) Auth() Credentials {
	if e.UseSSO && e.Token != "" {
		return TokenCookie{Name: SSOCookieName, Token: e.Token}
	}
	if e.User != "" && e.Password != "" {
		return BasicAuth{User: e.User, Password: e.Password}
	}
	return nil
}

// SetProxy routes requests with the given URL scheme through proxyURL.
func (e *Endpoint) SetProxy(scheme, proxyURL string) {
	if e.Proxies == nil {
		e.Proxies = map[string]string{}
	}
	e.Proxies[scheme] = proxyURL
	e.httpClient = nil
}

// ProxyJSON renders the proxy table the way the proxy command shows it.
func (e *Endpoint) ProxyJSON() string {
	b, _ := json.Marshal(e.Proxies)
	return string(b)
}

func (e *Endpoint) client() *http.Client {
	if e.httpClient != nil {
		return e.httpClient
	}
	for _, p := range e.Proxies {
		if p != "" {
			e.httpClient = NewHTTPClient(e.Proxies)
			return e.httpClient
		}
	}
	return defaultClient
}

// Request merges the endpoint settings into opts and performs the call.
// Headers set on opts win over the endpoint defaults.
func (e *Endpoint) Request(ctx context.Context, method, url string, opts RequestOptions) (*Result, error) {
	if len(e.Headers) > 0 {
		headers := make(map[string]string, len(e.Headers)+len(opts.Headers))
		for k, v := range e.Headers {
			headers[k] = v
		}
		for k, v := range opts.Headers {
			headers[k] = v
		}
		opts.Headers = headers
	}
	opts.Curl = opts.Curl || e.Curl
	if opts.CurlOut == nil {
		opts.CurlOut = e.CurlOut
	}
	if opts.Client == nil {
		opts.Client = e.client()
	}
	return Do(ctx, method, url, opts)
}

func (e *Endpoint) Get(ctx context.Context, url string, opts RequestOptions) (*Result, error) {
	return e.Request(ctx, http.MethodGet, url, opts)
}

func (e *Endpoint) Put(ctx context.Context, url string, opts RequestOptions) (*Result, error) {
	return e.Request(ctx, http.MethodPut, url, opts)
}

func (e *Endpoint) Post(ctx context.Context, url string, opts RequestOptions) (*Result, error) {
	return e.Request(ctx, http.MethodPost, url, opts)
}

func (e *Endpoint) Delete(ctx context.Context, url string, opts RequestOptions) (*Result, error) {
	return e.Request(ctx, http.MethodDelete, url, opts)
}

// authed is the option set for services that always send credentials.
func (e *Endpoint) authed() RequestOptions {
	return RequestOptions{Auth: e.Auth()}
}

func jsonBody(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding request body")
	}
	return b, nil
}
