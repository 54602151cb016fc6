package client

import (
	"context"
	"fmt"

	"github.com/hadoopsh/hadoopsh/pkg/config"
)

// MapR wraps the MapR control system REST API.
type MapR struct {
	*Endpoint
}

func NewMapR(svc config.Service) *MapR {
	return &MapR{Endpoint: NewEndpoint(svc, config.RootPaths[config.NameMapR])}
}

var maprStates = map[int]string{
	0: "Not configured",
	1: "Configured",
	2: "Running",
	3: "Stopped",
	4: "Failed",
	5: "Stand by",
}

// MapRState names a numeric service state.
func MapRState(code int) string {
	if s, ok := maprStates[code]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(%d)", code)
}

type (
	MapRHost struct {
		Hostname          string `json:"hostname"`
		IP                string `json:"ip"`
		ConfiguredService string `json:"configuredservice"`
	}

	MapRService struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayname"`
		State       int    `json:"state"`
		LogPath     string `json:"logpath"`
	}

	MapRVolume struct {
		VolumeName string `json:"volumename"`
		MountDir   string `json:"mountdir"`
		RackPath   string `json:"rackpath"`
	}

	MapRDisk struct {
		DiskName   string      `json:"diskname"`
		TotalSpace interface{} `json:"totalspace"`
		FSType     string      `json:"fstype"`
		Status     interface{} `json:"status"`
	}
)

func (m *MapR) list(ctx context.Context, path string, params map[string]string, out interface{}) error {
	opts := m.authed()
	opts.Params = params
	res, err := m.Get(ctx, m.WebURL()+path, opts)
	if err != nil {
		return err
	}
	return res.Decode(out)
}

func (m *MapR) Hosts(ctx context.Context) ([]MapRHost, error) {
	var body struct {
		Data []MapRHost `json:"data"`
	}
	err := m.list(ctx, "/node/list", nil, &body)
	return body.Data, err
}

// Services lists the services of the cluster, or of one node when host is set.
func (m *MapR) Services(ctx context.Context, host string) ([]MapRService, error) {
	var params map[string]string
	if host != "" {
		params = map[string]string{"node": host}
	}
	var body struct {
		Data []MapRService `json:"data"`
	}
	err := m.list(ctx, "/service/list", params, &body)
	return body.Data, err
}

func (m *MapR) Volumes(ctx context.Context) ([]MapRVolume, error) {
	var body struct {
		Data []MapRVolume `json:"data"`
	}
	err := m.list(ctx, "/volume/list", nil, &body)
	return body.Data, err
}

func (m *MapR) Disks(ctx context.Context, host string) ([]MapRDisk, error) {
	var body struct {
		Data []MapRDisk `json:"data"`
	}
	err := m.list(ctx, "/disk/list", map[string]string{"host": host}, &body)
	return body.Data, err
}
