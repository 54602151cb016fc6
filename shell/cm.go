package shell

import (
	"context"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
)

func NewClouderaManager(c *client.ClouderaManager, opts Options) *Shell {
	return New(config.NameClouderaManager, "Cloudera Manager shell", c.Endpoint, []Command{
		{Name: "clusters", Help: "List clusters", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			clusters, err := c.Clusters(ctx)
			if err != nil {
				return nil, err
			}
			t := &Table{Header: []string{"NAME", "DISPLAYNAME", "VERSION"}}
			for _, cl := range clusters {
				t.Append(cl.Name, cl.DisplayName, cl.FullVersion)
			}
			return t, nil
		}},
		{Name: "name", Help: "Show the cluster name", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return c.Name(ctx)
		}},
		{Name: "roles", Params: "<service>", Help: "List the roles of a service", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 1 {
				return "Incorrect parameters", nil
			}
			roles, err := c.Roles(ctx, args.Arg(0))
			if err != nil {
				return nil, err
			}
			t := &Table{Header: []string{"NAME", "TYPE", "HOST"}}
			for _, r := range roles {
				t.Append(r.Name, r.Type, r.HostRef.Hostname)
			}
			return t, nil
		}},
		{Name: "hosts", Help: "Show the knox, ranger and atlas hosts", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			t := &Table{Header: []string{"SERVICE", "HOST"}}
			for _, svc := range client.RoleServices {
				host, err := c.RoleHost(ctx, svc)
				if err != nil {
					host = err.Error()
				}
				t.Append(svc, host)
			}
			return t, nil
		}},
		{Name: "urls", Help: "Show the gateway urls", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return c.Gateway(ctx)
		}},
	}, opts)
}
