package client

import (
	"context"

	"github.com/hadoopsh/hadoopsh/pkg/config"
)

// ResourceManager wraps the YARN resource manager /ws/v1/cluster API.
type ResourceManager struct {
	*Endpoint
	Root    string
	Gateway bool
}

func NewResourceManager(svc config.Service) *ResourceManager {
	return &ResourceManager{Endpoint: NewEndpoint(svc, config.RootPaths[config.NameResourceManager])}
}

func (r *ResourceManager) root() string {
	if r.Root != "" {
		return r.Root
	}
	return r.WebURL()
}

func (r *ResourceManager) opts(params map[string]string) RequestOptions {
	if r.Gateway {
		return RequestOptions{Auth: r.Auth(), Params: params}
	}
	return RequestOptions{User: r.User, Params: params}
}

func (r *ResourceManager) Info(ctx context.Context) (*Result, error) {
	return r.Get(ctx, r.root()+"/info", r.opts(nil))
}

func (r *ResourceManager) Metrics(ctx context.Context) (*Result, error) {
	return r.Get(ctx, r.root()+"/metrics", r.opts(nil))
}

func (r *ResourceManager) Nodes(ctx context.Context, id string) (*Result, error) {
	u := r.root() + "/nodes"
	if id != "" {
		u += "/" + id
	}
	return r.Get(ctx, u, r.opts(nil))
}

// Apps lists applications filtered by params, or shows one when id is set.
func (r *ResourceManager) Apps(ctx context.Context, id string, params map[string]string) (*Result, error) {
	u := r.root() + "/apps"
	if id != "" {
		u += "/" + id
	}
	return r.Get(ctx, u, r.opts(params))
}
