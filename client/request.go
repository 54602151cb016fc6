package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/hadoopsh/hadoopsh/utils"
	"github.com/pkg/errors"
)

// Outcome classifies the status code of a response.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeCreated
	OutcomeUnauthorized
	OutcomeForbidden
	OutcomeNotFound
	OutcomeNotAllowed
	// OutcomeUnexpected is a status outside the success set whose body still decoded as JSON
	OutcomeUnexpected
	OutcomeFormatError
)

var outcomeNames = map[Outcome]string{
	OutcomeOK:           "OK",
	OutcomeCreated:      "created",
	OutcomeUnauthorized: "Unauthorized",
	OutcomeForbidden:    "Forbidden",
	OutcomeNotFound:     "Not Found",
	OutcomeNotAllowed:   "Not Allowed",
	OutcomeUnexpected:   "Unexpected",
	OutcomeFormatError:  "Format error",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

var markerOutcomes = map[int]Outcome{
	http.StatusUnauthorized:     OutcomeUnauthorized,
	http.StatusForbidden:        OutcomeForbidden,
	http.StatusNotFound:         OutcomeNotFound,
	http.StatusMethodNotAllowed: OutcomeNotAllowed,
}

// Result is the normalized outcome of one request. Body holds the decoded
// JSON value, the raw text, or a marker map such as {"status": "Forbidden"}.
type Result struct {
	Status  int
	Outcome Outcome
	Body    interface{}
	Raw     []byte
}

// OK reports whether the status was in the caller's success set.
func (r *Result) OK() bool {
	return r != nil && r.Outcome == OutcomeOK
}

// Success also accepts a 201 that was not part of the success set.
func (r *Result) Success() bool {
	return r.OK() || (r != nil && r.Outcome == OutcomeCreated)
}

// Marker returns the synthetic status map of a non-success result, or nil.
func (r *Result) Marker() map[string]interface{} {
	if r == nil || r.Outcome == OutcomeOK || r.Outcome == OutcomeUnexpected {
		return nil
	}
	m, _ := r.Body.(map[string]interface{})
	return m
}

// Value is what a shell prints for this result.
func (r *Result) Value() interface{} {
	if r == nil {
		return nil
	}
	return r.Body
}

// Decode unmarshals the raw body of a successful response into v.
func (r *Result) Decode(v interface{}) error {
	if !r.OK() {
		return &StatusError{Result: r}
	}
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return errors.Wrap(err, "error decoding response")
	}
	return nil
}

// StatusError is returned by Decode when the response was not a success.
type StatusError struct {
	Result *Result
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Result.Status, e.Result.Outcome)
}

// ConnectionError is a transport level failure, e.g. connection refused.
type ConnectionError struct {
	Method string
	URL    string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("error sending request %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func marker(status string) map[string]interface{} {
	return map[string]interface{}{"status": status}
}

// RequestOptions are the optional inputs of Do.
type RequestOptions struct {
	Params map[string]string
	// User is injected as the user.name query parameter
	User    string
	Body    []byte
	Headers map[string]string
	Auth    Credentials
	Curl    bool
	CurlOut io.Writer
	// Text returns the body as a string instead of decoding JSON
	Text bool
	// Expected is the success set, only 200 when empty
	Expected []int
	// Proxies maps a URL scheme to a proxy URL
	Proxies map[string]string
	Client  *http.Client
}

var defaultClient = NewHTTPClient(nil)

// NewHTTPClient returns a client that skips certificate verification, the
// clusters commonly run with self-signed certificates. proxies maps a URL
// scheme to a proxy URL; the environment proxy settings are ignored.
func NewHTTPClient(proxies map[string]string) *http.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		Proxy: func(r *http.Request) (*url.URL, error) {
			if p, ok := proxies[r.URL.Scheme]; ok && p != "" {
				return url.Parse(p)
			}
			return nil, nil
		},
	}
	return &http.Client{Transport: transport}
}

// BuildURL appends params to base, joining with '&' when base already has a
// query and '?' otherwise. The existing query is left as is.
func BuildURL(base string, params map[string]string) string {
	if len(params) == 0 {
		return base
	}

	keys := sortedKeys(params)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}

	sep := "?"
	if u, err := url.Parse(base); err == nil && u.RawQuery != "" {
		sep = "&"
	} else if err != nil && strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + strings.Join(pairs, "&")
}

// CurlCommand renders the curl invocation equivalent to a request. Nothing
// is escaped, the line is only a debugging aid.
func CurlCommand(method, fullURL string, opts RequestOptions) string {
	var b strings.Builder
	b.WriteString("curl -X ")
	b.WriteString(method)
	if opts.Auth != nil {
		b.WriteString(" ")
		b.WriteString(opts.Auth.CurlFlag())
	}

	for _, k := range sortedKeys(opts.Headers) {
		fmt.Fprintf(&b, " -H '%s:%s'", k, opts.Headers[k])
	}

	if opts.Body != nil {
		fmt.Fprintf(&b, " -d '%s'", opts.Body)
	}
	if strings.HasPrefix(fullURL, "https") {
		b.WriteString(" -k")
	}
	fmt.Fprintf(&b, " '%s'", fullURL)
	return b.String()
}

// Classify maps a status code and body onto a Result.
func Classify(status int, raw []byte, text bool, expected []int) *Result {
	if len(expected) == 0 {
		expected = []int{http.StatusOK}
	}
	res := &Result{Status: status, Raw: raw}

	for _, code := range expected {
		if code != status {
			continue
		}
		res.Outcome = OutcomeOK
		if text {
			res.Body = string(raw)
			return res
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return res
		}
		var body interface{}
		if err := json.Unmarshal(raw, &body); err != nil {
			return formatError(res, err)
		}
		res.Body = body
		return res
	}

	if status == http.StatusCreated {
		res.Outcome = OutcomeCreated
		res.Body = marker("created")
		return res
	}

	if outcome, ok := markerOutcomes[status]; ok {
		res.Outcome = outcome
		res.Body = marker(outcome.String())
		return res
	}

	var body interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return formatError(res, err)
	}
	res.Outcome = OutcomeUnexpected
	res.Body = body
	return res
}

func formatError(res *Result, err error) *Result {
	res.Outcome = OutcomeFormatError
	res.Body = map[string]interface{}{
		"status": OutcomeFormatError.String(),
		"code":   res.Status,
		"error":  err.Error(),
		"text":   string(res.Raw),
	}
	return res
}

// Do performs one request and normalizes the outcome. Remote failures come
// back as marker results; only transport failures return an error.
func Do(ctx context.Context, method, rawURL string, opts RequestOptions) (*Result, error) {
	logger := utils.GetLogger()

	params := make(map[string]string, len(opts.Params)+1)
	for k, v := range opts.Params {
		params[k] = v
	}
	if opts.User != "" {
		params["user.name"] = opts.User
	}
	fullURL := BuildURL(rawURL, params)

	if opts.Curl {
		out := opts.CurlOut
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintln(out, CurlCommand(method, fullURL, opts))
	}

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, errors.Wrap(err, "error creating request")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if opts.Auth != nil {
		opts.Auth.Apply(req)
	}

	httpClient := opts.Client
	if httpClient == nil && len(opts.Proxies) > 0 {
		httpClient = NewHTTPClient(opts.Proxies)
	}
	if httpClient == nil {
		httpClient = defaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Str("method", method).Str("url", fullURL).Msg("request failed")
		return nil, &ConnectionError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Method: method, URL: fullURL, Err: err}
	}

	res := Classify(resp.StatusCode, raw, opts.Text, opts.Expected)
	logger.Debug().
		Str("method", method).
		Str("url", fullURL).
		Int("status", res.Status).
		Stringer("outcome", res.Outcome).
		Msg("request done")
	return res, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
