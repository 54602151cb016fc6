package client

import (
	"context"
	"fmt"

	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/pkg/errors"
)

// ClouderaManager wraps the Cloudera Manager API. It is mostly used to
// discover where the Knox, Ranger and Atlas roles of a cluster run.
type ClouderaManager struct {
	*Endpoint
}

func NewClouderaManager(svc config.Service) *ClouderaManager {
	e := NewEndpoint(svc, config.RootPaths[config.NameClouderaManager])
	e.Headers["Accept"] = "application/json"
	return &ClouderaManager{Endpoint: e}
}

type (
	CMCluster struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
		FullVersion string `json:"fullVersion"`
	}

	CMRole struct {
		Name    string `json:"name"`
		Type    string `json:"type"`
		HostRef struct {
			HostID   string `json:"hostId"`
			Hostname string `json:"hostname"`
		} `json:"hostRef"`
	}

	// CMGateway holds the URLs derived from the role hosts.
	CMGateway struct {
		TokenURL      string `json:"token_url"`
		AtlasURL      string `json:"atlas_url"`
		AtlasKnoxURL  string `json:"atlas_knox_url"`
		RangerKnoxURL string `json:"ranger_knox_url"`
	}
)

// RoleServices are the services whose role hosts the hosts command reports.
var RoleServices = []string{"knox", "ranger", "atlas"}

func (c *ClouderaManager) Clusters(ctx context.Context) ([]CMCluster, error) {
	res, err := c.Get(ctx, c.WebURL()+"/clusters", c.authed())
	if err != nil {
		return nil, err
	}

	var body struct {
		Items []CMCluster `json:"items"`
	}
	if err := res.Decode(&body); err != nil {
		return nil, err
	}
	return body.Items, nil
}

// Name is the name of the first cluster managed by this Cloudera Manager.
func (c *ClouderaManager) Name(ctx context.Context) (string, error) {
	clusters, err := c.Clusters(ctx)
	if err != nil {
		return "", err
	}
	if len(clusters) == 0 {
		return "", errors.New("no cluster found")
	}
	return clusters[0].Name, nil
}

func (c *ClouderaManager) Roles(ctx context.Context, service string) ([]CMRole, error) {
	name, err := c.Name(ctx)
	if err != nil {
		return nil, err
	}
	res, err := c.Get(ctx, c.WebURL()+escapePath("/clusters/%s/services/%s/roles", name, service), c.authed())
	if err != nil {
		return nil, err
	}

	var body struct {
		Items []CMRole `json:"items"`
	}
	if err := res.Decode(&body); err != nil {
		return nil, err
	}
	return body.Items, nil
}

// RoleHost returns the host of the first role of service.
func (c *ClouderaManager) RoleHost(ctx context.Context, service string) (string, error) {
	roles, err := c.Roles(ctx, service)
	if err != nil {
		return "", err
	}
	if len(roles) == 0 {
		return "", errors.Errorf("no %s role found", service)
	}
	return roles[0].HostRef.Hostname, nil
}

func (c *ClouderaManager) Gateway(ctx context.Context) (*CMGateway, error) {
	knox, err := c.RoleHost(ctx, "knox")
	if err != nil {
		return nil, err
	}
	atlas, err := c.RoleHost(ctx, "atlas")
	if err != nil {
		return nil, err
	}
	return &CMGateway{
		TokenURL:      fmt.Sprintf("https://%s:8443/gateway/cdp-proxy-api/knoxtoken/api/v1/token", knox),
		AtlasURL:      fmt.Sprintf("https://%s:31000/api/atlas", atlas),
		AtlasKnoxURL:  fmt.Sprintf("https://%s:8443/gateway/cdp-proxy/atlas/api/atlas", knox),
		RangerKnoxURL: fmt.Sprintf("https://%s:8443/gateway/cdp-proxy/ranger", knox),
	}, nil
}
