package shell

import (
	"context"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
)

func NewKnox(k *client.Knox, opts Options) *Shell {
	s := New(config.NameKnox, "Knox gateway shell", k.Endpoint, KnoxCommands(k), opts)
	s.Location = func() string { return k.Cluster }
	s.Cluster = func() string { return k.Cluster }
	s.SetCluster = func(name string) { k.Cluster = name }
	return s
}

func KnoxCommands(k *client.Knox) []Command {
	return []Command{
		{Name: "cluster", Params: "[name]", Help: "Show or set the topology", Run: func(_ context.Context, args Args) (interface{}, error) {
			if args.Len() == 0 {
				return k.Cluster, nil
			}
			k.Cluster = args.Arg(0)
			return nil, nil
		}},
		{Name: "version", Help: "Show the gateway version", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return k.Version(ctx)
		}},
		{Name: "ls", Params: "<path>", Help: "List an HDFS directory", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 1 {
				return "Incorrect parameters", nil
			}
			return hdfsList(ctx, k.HDFS(), args.Arg(0), false)
		}},
		{Name: "cat", Params: "<file>", Help: "Print an HDFS file", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 1 {
				return "Missing filename", nil
			}
			return k.HDFS().Cat(ctx, args.Arg(0))
		}},
		{Name: "show", Params: "topo|databases|...", Help: "show topo [name], databases, tables <db>, info, metrics, nodes [id]", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return knoxShow(ctx, k, args)
		}},
		{Name: "desc", Params: "database|table ...", Help: "desc database <db>, desc table <db> <table>", Run: func(ctx context.Context, args Args) (interface{}, error) {
			switch {
			case args.Arg(0) == "database" && args.Len() == 2:
				return k.HCat().Database(ctx, args.Arg(1))
			case args.Arg(0) == "table" && args.Len() == 3:
				return k.HCat().Table(ctx, args.Arg(1), args.Arg(2))
			}
			return "Incorrect parameters", nil
		}},
		tokenCommand(k.Endpoint),
	}
}

func knoxShow(ctx context.Context, k *client.Knox, args Args) (interface{}, error) {
	switch args.Arg(0) {
	case "topo":
		return k.Topology(ctx, args.Arg(1))
	case "databases":
		return k.HCat().Database(ctx, "")
	case "tables":
		if args.Len() != 2 {
			return "Incorrect parameters", nil
		}
		return k.HCat().Table(ctx, args.Arg(1), "")
	case "info":
		return k.ResourceManager().Info(ctx)
	case "metrics":
		return k.ResourceManager().Metrics(ctx)
	case "nodes":
		return k.ResourceManager().Nodes(ctx, args.Arg(1))
	}
	return "Incorrect parameters", nil
}
