package shell

import (
	"context"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
)

func NewHCat(w *client.WebHCat, opts Options) *Shell {
	s := New(config.NameHCat, "WebHCat shell", w.Endpoint, HCatCommands(w), opts)
	s.Location = func() string { return w.DB }
	return s
}

func HCatCommands(w *client.WebHCat) []Command {
	return []Command{
		{Name: "status", Help: "Show the server status", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return w.Status(ctx)
		}},
		{Name: "version", Params: "[component]", Help: "Show versions", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return w.Version(ctx, args.Arg(0))
		}},
		{Name: "use", Params: "[db]", Help: "Show or select the current database", Run: func(_ context.Context, args Args) (interface{}, error) {
			if args.Len() == 0 {
				return w.DB, nil
			}
			w.DB = args.Arg(0)
			return nil, nil
		}},
		{Name: "runddl", Params: "<ddl>", Help: "Execute a DDL statement", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Raw == "" {
				return "Incorrect parameters", nil
			}
			return w.RunDDL(ctx, args.Raw)
		}},
		{Name: "show", Params: "databases|tables", Help: "List databases or tables of the current database", Run: func(ctx context.Context, args Args) (interface{}, error) {
			switch args.Arg(0) {
			case "databases":
				return w.Database(ctx, "")
			case "tables":
				return w.Table(ctx, w.DB, "")
			}
			return "Incorrect parameters", nil
		}},
		{Name: "desc", Params: "database <db>|table <t>", Help: "Describe a database or a table", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 2 {
				return "Incorrect parameters", nil
			}
			switch args.Arg(0) {
			case "database":
				return w.Database(ctx, args.Arg(1))
			case "table":
				return w.Table(ctx, w.DB, args.Arg(1))
			}
			return "Incorrect parameters", nil
		}},
	}
}
