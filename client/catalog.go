package client

import (
	"context"

	"github.com/hadoopsh/hadoopsh/pkg/config"
)

// Catalog wraps the application and dataset catalog service.
type Catalog struct {
	*Endpoint
}

func NewCatalog(svc config.Service) *Catalog {
	return &Catalog{Endpoint: NewEndpoint(svc, config.RootPaths[config.NameCatalog])}
}

func (c *Catalog) Apps(ctx context.Context) (*Result, error) {
	return c.Get(ctx, c.WebURL()+"/apps", RequestOptions{})
}

func (c *Catalog) Datasets(ctx context.Context) (*Result, error) {
	return c.Get(ctx, c.WebURL()+"/datasets", RequestOptions{})
}
