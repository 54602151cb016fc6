package shell

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/hadoopsh/hadoopsh/pkg/config"
)

type request struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

// apiServer answers canned bodies keyed by "METHOD path".
type apiServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []request
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func newAPIServer(t *testing.T) *apiServer {
	s := &apiServer{routes: map[string]func(w http.ResponseWriter, r *http.Request){}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, request{r.Method, r.URL.Path, r.URL.Query(), string(body)})
		handler, ok := s.routes[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *apiServer) handle(method, path string, status int, body string) {
	s.routes[method+" "+path] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func (s *apiServer) last() request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

func (s *apiServer) service() config.Service {
	u, _ := url.Parse(s.URL)
	port, _ := strconv.Atoi(u.Port())
	return config.Service{Prefix: u.Scheme, Host: u.Hostname(), Port: port, User: "admin", Password: "secret"}
}

// fakePrompter answers prompts in order and records the labels.
type fakePrompter struct {
	answers []string
	labels  []string
	masked  []bool
}

func (f *fakePrompter) Prompt(label, def string, mask bool) (string, error) {
	f.labels = append(f.labels, label)
	f.masked = append(f.masked, mask)
	if len(f.answers) == 0 {
		return def, nil
	}
	a := f.answers[0]
	f.answers = f.answers[1:]
	if a == "" {
		return def, nil
	}
	return a, nil
}

// run executes lines and returns everything printed.
func run(s *Shell, lines ...string) string {
	buf := s.out.(*bytes.Buffer)
	buf.Reset()
	for _, line := range lines {
		s.Execute(context.Background(), line)
	}
	return buf.String()
}
