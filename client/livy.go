package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/pkg/errors"
)

// Livy wraps the Livy /sessions REST API. ID is the session the shell
// currently works in, -1 when none is selected.
type Livy struct {
	*Endpoint
	Kind         string
	PollInterval time.Duration
	PollTimeout  time.Duration
	ID           int
}

func NewLivy(svc config.Service, cfg config.Livy) (*Livy, error) {
	e := NewEndpoint(svc, config.RootPaths[config.NameLivy])
	e.Headers["Content-Type"] = "application/json"

	interval := cfg.PollInterval
	if interval == "" {
		interval = config.DefaultPollInterval
	}
	poll, err := time.ParseDuration(interval)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid livy poll interval %q", interval)
	}

	var timeout time.Duration
	if cfg.PollTimeout != "" {
		if timeout, err = time.ParseDuration(cfg.PollTimeout); err != nil {
			return nil, errors.Wrapf(err, "invalid livy poll timeout %q", cfg.PollTimeout)
		}
	}

	kind := cfg.Kind
	if kind == "" {
		kind = config.DefaultLivyKind
	}
	return &Livy{Endpoint: e, Kind: kind, PollInterval: poll, PollTimeout: timeout, ID: -1}, nil
}

type (
	LivySession struct {
		ID    int      `json:"id"`
		Name  string   `json:"name"`
		AppID string   `json:"appId"`
		Owner string   `json:"owner"`
		Kind  string   `json:"kind"`
		State string   `json:"state"`
		Log   []string `json:"log,omitempty"`
	}

	LivyStatement struct {
		ID     int                    `json:"id"`
		Code   string                 `json:"code"`
		State  string                 `json:"state"`
		Output map[string]interface{} `json:"output"`
	}
)

func (l *Livy) sessionURL(id int) string {
	return fmt.Sprintf("%s/%d", l.WebURL(), id)
}

func (l *Livy) current() (int, error) {
	if l.ID < 0 {
		return 0, errors.New("No session selected, use 'open' or 'use' first")
	}
	return l.ID, nil
}

func (l *Livy) wait(ctx context.Context, fetch func(context.Context) (string, error)) (string, error) {
	if l.PollTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.PollTimeout)
		defer cancel()
	}
	state, _, err := WaitWhile(ctx, l.PollInterval, InProgressStates, fetch)
	return state, err
}

func (l *Livy) Sessions(ctx context.Context) ([]LivySession, error) {
	res, err := l.Get(ctx, l.WebURL(), l.authed())
	if err != nil {
		return nil, err
	}

	var body struct {
		Sessions []LivySession `json:"sessions"`
	}
	if err := res.Decode(&body); err != nil {
		return nil, err
	}
	return body.Sessions, nil
}

// Find returns the session with the given name, or nil.
func (l *Livy) Find(ctx context.Context, name string) (*LivySession, error) {
	if name == "" {
		return nil, errors.New("name can not be empty")
	}
	sessions, err := l.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].Name == name {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// Create starts a session and waits until it leaves the starting states.
// An empty name gets a generated one.
func (l *Livy) Create(ctx context.Context, name, kind string, conf map[string]string) (*LivySession, error) {
	if name == "" {
		name = "hadoopsh-" + uuid.New().String()
	}
	if kind == "" {
		kind = l.Kind
	}

	data := map[string]interface{}{"name": name, "kind": kind}
	if len(conf) > 0 {
		data["conf"] = conf
	}
	payload, err := jsonBody(data)
	if err != nil {
		return nil, err
	}
	opts := l.authed()
	opts.Body = payload
	opts.Expected = []int{200, 201}

	res, err := l.Post(ctx, l.WebURL(), opts)
	if err != nil {
		return nil, err
	}
	session := &LivySession{}
	if err := res.Decode(session); err != nil {
		return nil, err
	}

	l.ID = session.ID
	state, err := l.wait(ctx, l.State)
	if state != "" {
		session.State = state
	}
	return session, err
}

// Open selects the named session, creating it when it does not exist.
func (l *Livy) Open(ctx context.Context, name, kind string) (*LivySession, error) {
	session, err := l.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	if session != nil {
		l.ID = session.ID
		return session, nil
	}
	return l.Create(ctx, name, kind, nil)
}

func (l *Livy) State(ctx context.Context) (string, error) {
	id, err := l.current()
	if err != nil {
		return "", err
	}
	res, err := l.Get(ctx, l.sessionURL(id)+"/state", l.authed())
	if err != nil {
		return "", err
	}

	var body struct {
		State string `json:"state"`
	}
	if err := res.Decode(&body); err != nil {
		return "", err
	}
	return body.State, nil
}

func (l *Livy) Show(ctx context.Context) (*Result, error) {
	id, err := l.current()
	if err != nil {
		return nil, err
	}
	return l.Get(ctx, l.sessionURL(id), l.authed())
}

func (l *Livy) DeleteSession(ctx context.Context) (*Result, error) {
	id, err := l.current()
	if err != nil {
		return nil, err
	}
	res, err := l.Delete(ctx, l.sessionURL(id), l.authed())
	if err == nil && res.OK() {
		l.ID = -1
	}
	return res, err
}

func (l *Livy) Statement(ctx context.Context, stmtID int) (*LivyStatement, error) {
	id, err := l.current()
	if err != nil {
		return nil, err
	}
	res, err := l.Get(ctx, fmt.Sprintf("%s/statements/%d", l.sessionURL(id), stmtID), l.authed())
	if err != nil {
		return nil, err
	}
	stmt := &LivyStatement{}
	if err := res.Decode(stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Run submits code to the current session. Unless batch is set it polls the
// statement until it leaves the waiting and running states.
func (l *Livy) Run(ctx context.Context, code string, batch bool) (*LivyStatement, error) {
	id, err := l.current()
	if err != nil {
		return nil, err
	}

	payload, err := jsonBody(map[string]string{"code": code})
	if err != nil {
		return nil, err
	}
	opts := l.authed()
	opts.Body = payload
	opts.Expected = []int{200, 201}
	res, err := l.Post(ctx, l.sessionURL(id)+"/statements", opts)
	if err != nil {
		return nil, err
	}
	stmt := &LivyStatement{}
	if err := res.Decode(stmt); err != nil {
		return nil, err
	}
	if batch {
		return stmt, nil
	}

	first := true
	_, err = l.wait(ctx, func(ctx context.Context) (string, error) {
		if first {
			first = false
			return stmt.State, nil
		}
		next, err := l.Statement(ctx, stmt.ID)
		if err != nil {
			return "", err
		}
		stmt = next
		return stmt.State, nil
	})
	return stmt, err
}
