package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		params map[string]string
		want   string
	}{
		{"no params", "http://host:8080/api/v1/clusters", nil, "http://host:8080/api/v1/clusters"},
		{"user name", "http://host:8080/api/v1/clusters", map[string]string{"user.name": "alice"}, "http://host:8080/api/v1/clusters?user.name=alice"},
		{"existing query", "http://host/webhdfs/v1/tmp?op=LISTSTATUS", map[string]string{"user.name": "bob"}, "http://host/webhdfs/v1/tmp?op=LISTSTATUS&user.name=bob"},
		{"existing query kept as is", "http://host/x?a=%2F", map[string]string{"b": "c"}, "http://host/x?a=%2F&b=c"},
		{"sorted and escaped", "http://host/x", map[string]string{"z": "1", "a": "x y", "m": "a/b"}, "http://host/x?a=x+y&m=a%2Fb&z=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL(tt.base, tt.params))
		})
	}
}

func TestCurlCommand(t *testing.T) {
	line := CurlCommand("PUT", "https://host:8443/api/v1/clusters/c1", RequestOptions{
		Auth:    BasicAuth{User: "admin", Password: "secret"},
		Headers: map[string]string{"X-Requested-By": "ambari", "Content-Type": "application/json"},
		Body:    []byte(`{"a":1}`),
	})
	assert.Equal(t,
		`curl -X PUT -u 'admin:secret' -H 'Content-Type:application/json' -H 'X-Requested-By:ambari' -d '{"a":1}' -k 'https://host:8443/api/v1/clusters/c1'`,
		line)

	line = CurlCommand("GET", "http://host/x", RequestOptions{Auth: TokenCookie{Name: SSOCookieName, Token: "tok"}})
	assert.Equal(t, `curl -X GET -b 'hadoop-jwt=tok' 'http://host/x'`, line)

	assert.Equal(t, `curl -X DELETE 'http://host/x'`, CurlCommand("DELETE", "http://host/x", RequestOptions{}))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		raw      string
		text     bool
		expected []int
		outcome  Outcome
		body     interface{}
	}{
		{"ok json", 200, `{"a":1}`, false, nil, OutcomeOK, map[string]interface{}{"a": float64(1)}},
		{"ok text", 200, "hello", true, nil, OutcomeOK, "hello"},
		{"ok empty", 200, "", false, nil, OutcomeOK, nil},
		{"expected accepted", 202, `[1,2]`, false, []int{200, 202}, OutcomeOK, []interface{}{float64(1), float64(2)}},
		{"created outside set", 201, `{"id":3}`, false, nil, OutcomeCreated, map[string]interface{}{"status": "created"}},
		{"created in set", 201, "", true, []int{201}, OutcomeOK, ""},
		{"created in set decodes body", 201, `{"id":3,"state":"starting"}`, false, []int{200, 201}, OutcomeOK, map[string]interface{}{"id": float64(3), "state": "starting"}},
		{"unauthorized", 401, "nope", false, nil, OutcomeUnauthorized, map[string]interface{}{"status": "Unauthorized"}},
		{"forbidden", 403, `{"x":1}`, false, nil, OutcomeForbidden, map[string]interface{}{"status": "Forbidden"}},
		{"not found", 404, "", true, nil, OutcomeNotFound, map[string]interface{}{"status": "Not Found"}},
		{"not allowed", 405, "", false, nil, OutcomeNotAllowed, map[string]interface{}{"status": "Not Allowed"}},
		{"other json", 500, `{"err":"boom"}`, false, nil, OutcomeUnexpected, map[string]interface{}{"err": "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(tt.status, []byte(tt.raw), tt.text, tt.expected)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.body, res.Body)
		})
	}
}

func TestJSONBody(t *testing.T) {
	b, err := jsonBody(map[string]string{"code": "1+1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"1+1"}`, string(b))

	_, err = jsonBody(map[string]interface{}{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error encoding request body")
}

func TestClassifyFormatError(t *testing.T) {
	for _, status := range []int{200, 500, 502} {
		res := Classify(status, []byte("<html>bad gateway</html>"), false, nil)
		require.Equal(t, OutcomeFormatError, res.Outcome)

		marker := res.Marker()
		require.NotNil(t, marker)
		assert.Equal(t, "Format error", marker["status"])
		assert.Equal(t, status, marker["code"])
		assert.Equal(t, "<html>bad gateway</html>", marker["text"])
		assert.NotEmpty(t, marker["error"])
	}
}

func TestResultHelpers(t *testing.T) {
	ok := Classify(200, []byte(`{"name":"c1"}`), false, nil)
	assert.True(t, ok.OK())
	assert.True(t, ok.Success())
	assert.Nil(t, ok.Marker())

	var body struct {
		Name string `json:"name"`
	}
	require.NoError(t, ok.Decode(&body))
	assert.Equal(t, "c1", body.Name)

	created := Classify(201, nil, false, nil)
	assert.False(t, created.OK())
	assert.True(t, created.Success())

	forbidden := Classify(403, nil, false, nil)
	err := forbidden.Decode(&body)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 403, statusErr.Result.Status)
	assert.Equal(t, map[string]interface{}{"status": "Forbidden"}, forbidden.Value())
}

func TestDo(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	var curl bytes.Buffer
	res, err := Do(context.Background(), "POST", server.URL+"/api/v1/clusters", RequestOptions{
		User:    "alice",
		Params:  map[string]string{"fields": "Hosts"},
		Body:    []byte(`{"a":1}`),
		Headers: map[string]string{"X-Requested-By": "ambari"},
		Auth:    BasicAuth{User: "admin", Password: "pw"},
		Curl:    true,
		CurlOut: &curl,
	})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, map[string]interface{}{"items": []interface{}{}}, res.Body)

	assert.Equal(t, "/api/v1/clusters", got.URL.Path)
	assert.Equal(t, "alice", got.URL.Query().Get("user.name"))
	assert.Equal(t, "Hosts", got.URL.Query().Get("fields"))
	assert.Equal(t, "ambari", got.Header.Get("X-Requested-By"))
	user, pass, ok := got.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "admin", user)
	assert.Equal(t, "pw", pass)
	assert.Equal(t, `{"a":1}`, string(gotBody))

	assert.Contains(t, curl.String(), "curl -X POST -u 'admin:pw'")
	assert.Contains(t, curl.String(), "?fields=Hosts&user.name=alice'")
}

func TestDoTokenCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SSOCookieName)
		if err != nil || c.Value != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	res, err := Do(context.Background(), "GET", server.URL, RequestOptions{Auth: TokenCookie{Name: SSOCookieName, Token: "tok"}})
	require.NoError(t, err)
	assert.True(t, res.OK())

	res, err = Do(context.Background(), "GET", server.URL, RequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnauthorized, res.Outcome)
}

func TestDoConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	res, err := Do(context.Background(), "GET", url, RequestOptions{})
	assert.Nil(t, res)

	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "GET", connErr.Method)
	assert.Equal(t, url, connErr.URL)
}

func TestDoSkipsCertificateVerification(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"secure":true}`))
	}))
	defer server.Close()

	res, err := Do(context.Background(), "GET", server.URL, RequestOptions{})
	require.NoError(t, err)
	assert.True(t, res.OK())
}
