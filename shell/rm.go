package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
)

func NewResourceManager(r *client.ResourceManager, opts Options) *Shell {
	return New(config.NameResourceManager, "YARN resource manager shell", r.Endpoint, []Command{
		{Name: "info", Help: "Show cluster information", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return r.Info(ctx)
		}},
		{Name: "metrics", Help: "Show cluster metrics", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return r.Metrics(ctx)
		}},
		{Name: "nodes", Params: "[id]", Help: "List nodes or show one", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return r.Nodes(ctx, args.Arg(0))
		}},
		{Name: "apps", Params: "[id] [key=value...]", Help: "List applications, e.g. apps state=RUNNING", Run: func(ctx context.Context, args Args) (interface{}, error) {
			fields, id := args.Fields, ""
			if len(fields) > 0 && !strings.Contains(fields[0], "=") {
				id, fields = fields[0], fields[1:]
			}
			params, bad := keyValues(fields)
			if bad != "" {
				return fmt.Sprintf("Invalid filter '%s'", bad), nil
			}
			return r.Apps(ctx, id, params)
		}},
	}, opts)
}
