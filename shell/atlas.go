package shell

import (
	"context"
	"fmt"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
)

func NewAtlas(a *client.Atlas, opts Options) *Shell {
	return New(config.NameAtlas, "Atlas REST shell", a.Endpoint, AtlasCommands(a), opts)
}

func AtlasCommands(a *client.Atlas) []Command {
	return []Command{
		{Name: "types", Help: "List type definitions", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return a.Types(ctx)
		}},
		{Name: "type", Params: "<name>", Help: "Show a type definition", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 1 {
				return "Incorrect parameters", nil
			}
			return a.Type(ctx, args.Arg(0))
		}},
		{Name: "attrs", Params: "<type>", Help: "List the attributes of a type", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 1 {
				return "Incorrect parameters", nil
			}
			return a.TypeAttrs(ctx, args.Arg(0))
		}},
		{Name: "entity", Params: "<guid>", Help: "Show an entity", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 1 {
				return "Incorrect parameters", nil
			}
			return a.Entity(ctx, args.Arg(0))
		}},
		{Name: "add", Params: "<type> key=value...", Help: "Create an entity", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() < 2 {
				return "Incorrect parameters", nil
			}
			attrs, bad := keyValues(args.Fields[1:])
			if bad != "" {
				return fmt.Sprintf("Invalid attribute '%s'", bad), nil
			}
			return a.AddEntity(ctx, args.Arg(0), attrs)
		}},
		{Name: "delete", Params: "<guid>", Help: "Delete an entity", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 1 {
				return "Incorrect parameters", nil
			}
			return a.DeleteEntity(ctx, args.Arg(0))
		}},
		{Name: "search", Params: "<type> [key=value...]", Help: "Search entities of a type", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() < 1 {
				return "Incorrect parameters", nil
			}
			filters, bad := keyValues(args.Fields[1:])
			if bad != "" {
				return fmt.Sprintf("Invalid filter '%s'", bad), nil
			}
			return a.Search(ctx, args.Arg(0), filters)
		}},
		tokenCommand(a.Endpoint),
	}
}
