package shell

import (
	"context"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
)

func NewCatalog(c *client.Catalog, opts Options) *Shell {
	return New(config.NameCatalog, "catalog shell", c.Endpoint, []Command{
		{Name: "apps", Help: "List applications", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return c.Apps(ctx)
		}},
		{Name: "datasets", Help: "List datasets", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return c.Datasets(ctx)
		}},
	}, opts)
}
