package client

import (
	"context"
	"net/url"

	"github.com/hadoopsh/hadoopsh/pkg/config"
)

// WebHCat wraps the WebHCat (templeton) REST API. DB is the database used
// by table commands.
type WebHCat struct {
	*Endpoint
	DB      string
	Root    string
	Gateway bool
}

func NewWebHCat(svc config.Service) *WebHCat {
	return &WebHCat{Endpoint: NewEndpoint(svc, config.RootPaths[config.NameHCat]), DB: "default"}
}

func (w *WebHCat) root() string {
	if w.Root != "" {
		return w.Root
	}
	return w.WebURL()
}

func (w *WebHCat) opts() RequestOptions {
	if w.Gateway {
		return RequestOptions{Auth: w.Auth()}
	}
	return RequestOptions{User: w.User}
}

func (w *WebHCat) Status(ctx context.Context) (*Result, error) {
	return w.Get(ctx, w.root()+"/status", w.opts())
}

func (w *WebHCat) Version(ctx context.Context, component string) (*Result, error) {
	u := w.root() + "/version"
	if component != "" {
		u += "/" + component
	}
	return w.Get(ctx, u, w.opts())
}

// RunDDL executes a DDL statement through the /ddl form endpoint.
func (w *WebHCat) RunDDL(ctx context.Context, ddl string) (*Result, error) {
	opts := w.opts()
	opts.Headers = map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	opts.Body = []byte(url.Values{"exec": {ddl}}.Encode())
	return w.Post(ctx, w.root()+"/ddl", opts)
}

// Database lists databases, or describes one when name is set.
func (w *WebHCat) Database(ctx context.Context, name string) (*Result, error) {
	u := w.root() + "/ddl/database"
	if name != "" {
		u += "/" + url.PathEscape(name)
	}
	return w.Get(ctx, u, w.opts())
}

// Table lists the tables of db, or describes one when table is set.
func (w *WebHCat) Table(ctx context.Context, db, table string) (*Result, error) {
	u := w.root() + escapePath("/ddl/database/%s/table", db)
	if table != "" {
		u += "/" + url.PathEscape(table)
	}
	return w.Get(ctx, u, w.opts())
}
