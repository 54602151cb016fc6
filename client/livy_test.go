package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLivy(t *testing.T, f *fakeServer) *Livy {
	l, err := NewLivy(f.service("", ""), config.Livy{PollInterval: "1ms"})
	require.NoError(t, err)
	return l
}

// states answers the given JSON state documents in order, repeating the last.
func states(docs ...string) func(w http.ResponseWriter, r *http.Request) {
	var n int32
	return func(w http.ResponseWriter, r *http.Request) {
		i := int(atomic.AddInt32(&n, 1)) - 1
		if i >= len(docs) {
			i = len(docs) - 1
		}
		w.Write([]byte(docs[i]))
	}
}

func TestNewLivyConfig(t *testing.T) {
	_, err := NewLivy(config.Service{}, config.Livy{PollInterval: "soon"})
	assert.Error(t, err)

	l, err := NewLivy(config.Service{}, config.Livy{})
	require.NoError(t, err)
	assert.Equal(t, "pyspark", l.Kind)
	assert.Equal(t, "1s", l.PollInterval.String())
	assert.Equal(t, -1, l.ID)
}

func TestLivyFind(t *testing.T) {
	f := newFakeServer(t)
	f.handle("GET", "/sessions", 200, `{"from":0,"total":2,"sessions":[{"id":1,"name":"a","state":"idle"},{"id":4,"name":"b","state":"busy"}]}`)

	l := newTestLivy(t, f)
	s, err := l.Find(context.Background(), "b")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 4, s.ID)

	s, err = l.Find(context.Background(), "c")
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = l.Find(context.Background(), "")
	assert.EqualError(t, err, "name can not be empty")
}

func TestLivyCreateWaitsForSession(t *testing.T) {
	f := newFakeServer(t)
	f.handle("POST", "/sessions", 201, `{"id":9,"name":"etl","kind":"pyspark","state":"starting"}`)
	f.routes["GET /sessions/9/state"] = states(`{"state":"not_started"}`, `{"state":"starting"}`, `{"state":"idle"}`)

	l := newTestLivy(t, f)
	s, err := l.Create(context.Background(), "etl", "", map[string]string{"spark.executor.memory": "2g"})
	require.NoError(t, err)
	assert.Equal(t, 9, l.ID)
	assert.Equal(t, "idle", s.State)
	assert.Equal(t, 3, f.count("GET", "/sessions/9/state"))

	var posted map[string]interface{}
	for _, r := range f.requests {
		if r.Method == "POST" {
			require.NoError(t, json.Unmarshal([]byte(r.Body), &posted))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		}
	}
	assert.Equal(t, "etl", posted["name"])
	assert.Equal(t, "pyspark", posted["kind"])
	assert.Equal(t, map[string]interface{}{"spark.executor.memory": "2g"}, posted["conf"])
}

func TestLivyCreateGeneratesName(t *testing.T) {
	f := newFakeServer(t)
	f.handle("POST", "/sessions", 200, `{"id":2,"state":"idle"}`)
	f.handle("GET", "/sessions/2/state", 200, `{"state":"idle"}`)

	l := newTestLivy(t, f)
	_, err := l.Create(context.Background(), "", "spark", nil)
	require.NoError(t, err)

	var posted map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(f.requests[0].Body), &posted))
	assert.True(t, strings.HasPrefix(posted["name"].(string), "hadoopsh-"))
	assert.Equal(t, "spark", posted["kind"])
	_, hasConf := posted["conf"]
	assert.False(t, hasConf)
}

func TestLivyOpenUsesExistingSession(t *testing.T) {
	f := newFakeServer(t)
	f.handle("GET", "/sessions", 200, `{"sessions":[{"id":5,"name":"etl","state":"idle"}]}`)

	l := newTestLivy(t, f)
	s, err := l.Open(context.Background(), "etl", "")
	require.NoError(t, err)
	assert.Equal(t, 5, s.ID)
	assert.Equal(t, 5, l.ID)
	assert.Equal(t, 0, f.count("POST", "/sessions"))
}

func TestLivyRunPollsStatement(t *testing.T) {
	f := newFakeServer(t)
	f.handle("POST", "/sessions/3/statements", 201, `{"id":0,"code":"1+1","state":"waiting"}`)
	f.routes["GET /sessions/3/statements/0"] = states(
		`{"id":0,"state":"running"}`,
		`{"id":0,"state":"available","output":{"status":"ok","data":{"text/plain":"2"}}}`,
	)

	l := newTestLivy(t, f)
	l.ID = 3
	stmt, err := l.Run(context.Background(), "1+1", false)
	require.NoError(t, err)
	assert.Equal(t, "available", stmt.State)
	assert.Equal(t, "ok", stmt.Output["status"])
	assert.Equal(t, 2, f.count("GET", "/sessions/3/statements/0"))
	assert.JSONEq(t, `{"code":"1+1"}`, f.requests[0].Body)
}

func TestLivyRunBatchDoesNotPoll(t *testing.T) {
	f := newFakeServer(t)
	f.handle("POST", "/sessions/3/statements", 201, `{"id":1,"state":"waiting"}`)

	l := newTestLivy(t, f)
	l.ID = 3
	stmt, err := l.Run(context.Background(), "spark.range(10).count()", true)
	require.NoError(t, err)
	assert.Equal(t, "waiting", stmt.State)
	assert.Equal(t, 0, f.count("GET", "/sessions/3/statements/1"))
}

func TestLivyNoSession(t *testing.T) {
	l := newTestLivy(t, newFakeServer(t))

	_, err := l.State(context.Background())
	assert.EqualError(t, err, "No session selected, use 'open' or 'use' first")
	_, err = l.Run(context.Background(), "x", false)
	assert.Error(t, err)
}

func TestLivyPollTimeout(t *testing.T) {
	f := newFakeServer(t)
	f.handle("GET", "/sessions/1/state", 200, `{"state":"starting"}`)
	f.handle("POST", "/sessions", 200, `{"id":1,"state":"starting"}`)

	l, err := NewLivy(f.service("", ""), config.Livy{PollInterval: "1ms", PollTimeout: "30ms"})
	require.NoError(t, err)

	s, err := l.Create(context.Background(), "slow", "", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "starting", s.State)
}

func TestLivyDeleteClearsSession(t *testing.T) {
	f := newFakeServer(t)
	f.handle("DELETE", "/sessions/3", 200, `{"msg":"deleted"}`)

	l := newTestLivy(t, f)
	l.ID = 3
	res, err := l.DeleteSession(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, -1, l.ID)
}
