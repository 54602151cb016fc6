package client

import (
	"context"

	"github.com/hadoopsh/hadoopsh/pkg/config"
)

// Knox talks to a Knox gateway. Cluster is the topology every request is
// routed through, /gateway/<cluster>/...
type Knox struct {
	*Endpoint
	Cluster string
}

func NewKnox(svc config.Service) *Knox {
	cluster := svc.Cluster
	if cluster == "" {
		cluster = "default"
	}
	return &Knox{Endpoint: NewEndpoint(svc, config.RootPaths[config.NameKnox]), Cluster: cluster}
}

func (k *Knox) WebURL() string {
	return k.Endpoint.WebURL() + "/" + k.Cluster
}

func (k *Knox) APIURL() string {
	return k.WebURL() + "/api/v1"
}

// HDFS is a WebHDFS client routed through the gateway.
func (k *Knox) HDFS() *WebHDFS {
	return &WebHDFS{Endpoint: k.Endpoint, Cwd: "/", Root: k.WebURL() + config.RootPaths[config.NameHDFS], Gateway: true}
}

func (k *Knox) HCat() *WebHCat {
	return &WebHCat{Endpoint: k.Endpoint, DB: "default", Root: k.WebURL() + config.RootPaths[config.NameHCat], Gateway: true}
}

func (k *Knox) ResourceManager() *ResourceManager {
	return &ResourceManager{Endpoint: k.Endpoint, Root: k.WebURL() + config.RootPaths[config.NameResourceManager], Gateway: true}
}

func (k *Knox) Version(ctx context.Context) (*Result, error) {
	return k.Get(ctx, k.APIURL()+"/version", k.authed())
}

// Topology lists the topologies, or shows one when name is set.
func (k *Knox) Topology(ctx context.Context, name string) (*Result, error) {
	u := k.APIURL() + "/topologies"
	if name != "" {
		u += "/" + name
	}
	return k.Get(ctx, u, k.authed())
}
