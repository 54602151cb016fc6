package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/pkg/errors"
)

// Ambari wraps the Ambari /api/v1 REST API.
type Ambari struct {
	*Endpoint
	// StopState is the state a stopped service or component is put into
	StopState string
}

func NewAmbari(svc config.Service, cfg config.Ambari) *Ambari {
	e := NewEndpoint(svc, config.RootPaths[config.NameAmbari])
	e.Headers["X-Requested-By"] = "ambari"

	stopState := cfg.StopState
	if stopState == "" {
		stopState = config.DefaultStopState
	}
	return &Ambari{Endpoint: e, StopState: stopState}
}

type (
	AmbariAlert struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Label string `json:"label"`
	}

	AmbariHost struct {
		ClusterName string `json:"cluster_name"`
		HostName    string `json:"host_name"`
	}

	// AmbariComponents pairs a host or service with its component names.
	AmbariComponents struct {
		Owner      string
		Components []string
	}
)

func escapePath(format string, args ...interface{}) string {
	parts := make([]interface{}, len(args))
	for i, a := range args {
		parts[i] = url.PathEscape(fmt.Sprint(a))
	}
	return fmt.Sprintf(format, parts...)
}

func ClusterPath(cluster string) string {
	if cluster == "" {
		return "/clusters"
	}
	return escapePath("/clusters/%s", cluster)
}

func HostPath(cluster string) string {
	if cluster == "" {
		return "/hosts"
	}
	return escapePath("/clusters/%s/hosts", cluster)
}

func ServicePath(cluster, service string) string {
	if service == "" {
		return escapePath("/clusters/%s/services", cluster)
	}
	return escapePath("/clusters/%s/services/%s", cluster, strings.ToUpper(service))
}

func HostComponentPath(cluster, host, component string) string {
	if component == "" {
		return escapePath("/clusters/%s/hosts/%s/host_components", cluster, host)
	}
	return escapePath("/clusters/%s/hosts/%s/host_components/%s", cluster, host, strings.ToUpper(component))
}

func ComponentPath(cluster, service, component string) string {
	return escapePath("/clusters/%s/services/%s/components/%s",
		cluster, strings.ToUpper(service), strings.ToUpper(component))
}

func AlertPath(cluster string) string {
	return escapePath("/clusters/%s/alert_definitions", cluster)
}

func (a *Ambari) get(ctx context.Context, path string) (*Result, error) {
	return a.Get(ctx, a.WebURL()+path, a.authed())
}

func (a *Ambari) ShowCluster(ctx context.Context, cluster string) (*Result, error) {
	return a.get(ctx, ClusterPath(cluster))
}

func (a *Ambari) ShowComponent(ctx context.Context, cluster, service, component string) (*Result, error) {
	return a.get(ctx, ComponentPath(cluster, service, component))
}

func (a *Ambari) ListAlerts(ctx context.Context, cluster string) ([]AmbariAlert, error) {
	res, err := a.get(ctx, AlertPath(cluster))
	if err != nil {
		return nil, err
	}

	var body struct {
		Items []struct {
			AlertDefinition AmbariAlert `json:"AlertDefinition"`
		} `json:"items"`
	}
	if err := res.Decode(&body); err != nil {
		return nil, err
	}

	alerts := make([]AmbariAlert, 0, len(body.Items))
	for _, item := range body.Items {
		alerts = append(alerts, item.AlertDefinition)
	}
	return alerts, nil
}

func (a *Ambari) ListHosts(ctx context.Context, cluster string) ([]AmbariHost, error) {
	res, err := a.get(ctx, HostPath(cluster))
	if err != nil {
		return nil, err
	}

	var body struct {
		Items []struct {
			Hosts AmbariHost `json:"Hosts"`
		} `json:"items"`
	}
	if err := res.Decode(&body); err != nil {
		return nil, err
	}

	hosts := make([]AmbariHost, 0, len(body.Items))
	for _, item := range body.Items {
		hosts = append(hosts, item.Hosts)
	}
	return hosts, nil
}

// ListHostComponents lists the components on host, or on every host of the
// cluster when host is empty.
func (a *Ambari) ListHostComponents(ctx context.Context, cluster, host string) ([]AmbariComponents, error) {
	hosts := []string{host}
	if host == "" {
		all, err := a.ListHosts(ctx, cluster)
		if err != nil {
			return nil, err
		}
		hosts = hosts[:0]
		for _, h := range all {
			hosts = append(hosts, h.HostName)
		}
	}

	var out []AmbariComponents
	for _, h := range hosts {
		res, err := a.get(ctx, HostComponentPath(cluster, h, ""))
		if err != nil {
			return nil, err
		}

		var body struct {
			Items []struct {
				HostRoles struct {
					ComponentName string `json:"component_name"`
				} `json:"HostRoles"`
			} `json:"items"`
		}
		if err := res.Decode(&body); err != nil {
			return nil, err
		}

		row := AmbariComponents{Owner: h}
		for _, item := range body.Items {
			row.Components = append(row.Components, item.HostRoles.ComponentName)
		}
		out = append(out, row)
	}
	return out, nil
}

// ListServices lists the components of service, or of every service of the
// cluster when service is empty.
func (a *Ambari) ListServices(ctx context.Context, cluster, service string) ([]AmbariComponents, error) {
	services := []string{service}
	if service == "" {
		res, err := a.get(ctx, ServicePath(cluster, ""))
		if err != nil {
			return nil, err
		}

		var body struct {
			Items []struct {
				ServiceInfo struct {
					ServiceName string `json:"service_name"`
				} `json:"ServiceInfo"`
			} `json:"items"`
		}
		if err := res.Decode(&body); err != nil {
			return nil, err
		}
		services = services[:0]
		for _, item := range body.Items {
			services = append(services, item.ServiceInfo.ServiceName)
		}
	}

	var out []AmbariComponents
	for _, s := range services {
		res, err := a.get(ctx, ServicePath(cluster, s))
		if err != nil {
			return nil, err
		}

		var body struct {
			Components []struct {
				ServiceComponentInfo struct {
					ComponentName string `json:"component_name"`
				} `json:"ServiceComponentInfo"`
			} `json:"components"`
		}
		if err := res.Decode(&body); err != nil {
			return nil, err
		}

		row := AmbariComponents{Owner: s}
		for _, c := range body.Components {
			row.Components = append(row.Components, c.ServiceComponentInfo.ComponentName)
		}
		out = append(out, row)
	}
	return out, nil
}

// Actions accepted by ServiceAction and ComponentAction.
const (
	ActionInstall = "install"
	ActionStart   = "start"
	ActionStop    = "stop"
)

func (a *Ambari) targetState(action string) (string, string, error) {
	switch action {
	case ActionInstall:
		return "INSTALLED", "Install", nil
	case ActionStart:
		return "STARTED", "Start", nil
	case ActionStop:
		return a.StopState, "Stop", nil
	}
	return "", "", errors.Errorf("Invalid action '%s'", action)
}

func (a *Ambari) ServiceAction(ctx context.Context, action, cluster, service string) (*Result, error) {
	state, op, err := a.targetState(action)
	if err != nil {
		return nil, err
	}
	if cluster == "" {
		return nil, errors.New("Cluster name missing")
	}
	if service == "" {
		return nil, errors.New("Service missing")
	}

	body := map[string]interface{}{
		"RequestInfo": map[string]string{"context": fmt.Sprintf("%s %s via REST", op, service)},
		"Body":        map[string]interface{}{"ServiceInfo": map[string]string{"state": state}},
	}
	payload, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	opts := a.authed()
	opts.Body = payload
	opts.Expected = []int{200, 202}
	return a.Put(ctx, a.WebURL()+ServicePath(cluster, service), opts)
}

func (a *Ambari) ComponentAction(ctx context.Context, action, cluster, host, component string) (*Result, error) {
	state, _, err := a.targetState(action)
	if err != nil {
		return nil, err
	}

	var body interface{} = map[string]interface{}{"HostRoles": map[string]string{"state": state}}
	if action == ActionInstall {
		body = map[string]interface{}{
			"RequestInfo": map[string]string{"context": "Install " + component},
			"Body":        body,
		}
	}
	payload, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	opts := a.authed()
	opts.Body = payload
	opts.Expected = []int{200, 202}
	return a.Put(ctx, a.WebURL()+HostComponentPath(cluster, host, component), opts)
}

func (a *Ambari) AddService(ctx context.Context, cluster, service string) (*Result, error) {
	payload, err := jsonBody(map[string]interface{}{
		"ServiceInfo": map[string]string{"service_name": strings.ToUpper(service)},
	})
	if err != nil {
		return nil, err
	}
	opts := a.authed()
	opts.Body = payload
	return a.Post(ctx, a.WebURL()+ServicePath(cluster, ""), opts)
}

func (a *Ambari) AddComponent(ctx context.Context, cluster, service, component string) (*Result, error) {
	return a.Post(ctx, a.WebURL()+ComponentPath(cluster, service, component), a.authed())
}

func (a *Ambari) AddHostComponent(ctx context.Context, cluster, host, component string) (*Result, error) {
	return a.Post(ctx, a.WebURL()+HostComponentPath(cluster, host, component), a.authed())
}

func (a *Ambari) DeleteService(ctx context.Context, cluster, service string) (*Result, error) {
	return a.Delete(ctx, a.WebURL()+ServicePath(cluster, service), a.authed())
}
