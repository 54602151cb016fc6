package shell

import (
	"context"
	"strings"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
)

func NewAmbari(a *client.Ambari, opts Options) *Shell {
	return New(config.NameAmbari, "Ambari REST shell", a.Endpoint, AmbariCommands(a), opts)
}

func AmbariCommands(a *client.Ambari) []Command {
	return []Command{
		{Name: "list", Params: "[alerts|hosts|...] ...", Help: "List clusters, alerts, hosts, host_components or services", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return ambariList(ctx, a, args)
		}},
		{Name: "show", Params: "[cluster]", Help: "Show a cluster, or 'show component <c> <svc> <comp>'", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Arg(0) == "component" {
				if args.Len() != 4 {
					return "Incorrect parameters", nil
				}
				return a.ShowComponent(ctx, args.Arg(1), args.Arg(2), args.Arg(3))
			}
			return a.ShowCluster(ctx, args.Arg(0))
		}},
		{Name: "add", Params: "service|component|... ...", Help: "Add a service, component or host_component", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return ambariAdd(ctx, a, args)
		}},
		{Name: "install", Params: "service|component ...", Help: "Install a service or a host component", Run: ambariAction(a, client.ActionInstall)},
		{Name: "start", Params: "service|component ...", Help: "Start a service or a host component", Run: ambariAction(a, client.ActionStart)},
		{Name: "stop", Params: "service|component ...", Help: "Stop a service or a host component", Run: ambariAction(a, client.ActionStop)},
		{Name: "delete", Params: "service <c> <svc>", Help: "Delete a service", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Arg(0) != "service" || args.Len() != 3 {
				return "Incorrect parameters", nil
			}
			return a.DeleteService(ctx, args.Arg(1), args.Arg(2))
		}},
	}
}

func ambariList(ctx context.Context, a *client.Ambari, args Args) (interface{}, error) {
	switch args.Arg(0) {
	case "":
		return a.ShowCluster(ctx, "")
	case "alerts":
		if args.Len() != 2 {
			return "Incorrect parameters", nil
		}
		alerts, err := a.ListAlerts(ctx, args.Arg(1))
		if err != nil {
			return nil, err
		}
		t := &Table{Header: []string{"ALERTID", "NAME", "LABEL"}}
		for _, alert := range alerts {
			t.Append(alert.ID, alert.Name, alert.Label)
		}
		return t, nil
	case "hosts":
		hosts, err := a.ListHosts(ctx, args.Arg(1))
		if err != nil {
			return nil, err
		}
		t := &Table{Header: []string{"CLUSTER", "HOST"}}
		for _, h := range hosts {
			t.Append(h.ClusterName, h.HostName)
		}
		return t, nil
	case "host_components":
		if args.Len() < 2 {
			return "Incorrect parameters", nil
		}
		hosts, err := a.ListHostComponents(ctx, args.Arg(1), args.Arg(2))
		if err != nil {
			return nil, err
		}
		return componentTable("HOST", hosts), nil
	case "services":
		if args.Len() < 2 {
			return "Incorrect parameters", nil
		}
		services, err := a.ListServices(ctx, args.Arg(1), args.Arg(2))
		if err != nil {
			return nil, err
		}
		return componentTable("SERVICE", services), nil
	}
	return "Incorrect parameters", nil
}

func componentTable(owner string, list []client.AmbariComponents) *Table {
	t := &Table{Header: []string{owner, "COMPONENT"}}
	for _, c := range list {
		t.Append(c.Owner, strings.Join(c.Components, ", "))
	}
	return t
}

func ambariAdd(ctx context.Context, a *client.Ambari, args Args) (interface{}, error) {
	switch {
	case args.Arg(0) == "service" && args.Len() == 3:
		return a.AddService(ctx, args.Arg(1), args.Arg(2))
	case args.Arg(0) == "component" && args.Len() == 4:
		return a.AddComponent(ctx, args.Arg(1), args.Arg(2), args.Arg(3))
	case args.Arg(0) == "host_component" && args.Len() == 4:
		return a.AddHostComponent(ctx, args.Arg(1), args.Arg(2), args.Arg(3))
	}
	return "Incorrect parameters", nil
}

// ambariAction handles "<action> service <cluster> <service>" and
// "<action> component <cluster> <host> <component>".
func ambariAction(a *client.Ambari, action string) Handler {
	return func(ctx context.Context, args Args) (interface{}, error) {
		switch args.Arg(0) {
		case "service":
			return a.ServiceAction(ctx, action, args.Arg(1), args.Arg(2))
		case "component":
			if args.Len() != 4 {
				return "Incorrect parameters", nil
			}
			return a.ComponentAction(ctx, action, args.Arg(1), args.Arg(2), args.Arg(3))
		}
		return "Incorrect parameters", nil
	}
}
