package shell

import (
	"context"
	"os"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/pkg/errors"
)

func NewRanger(r *client.Ranger, opts Options) *Shell {
	s := New(config.NameRanger, "Ranger REST shell", r.Endpoint, nil, opts)
	s.commands = append(RangerCommands(r, s.prompter), s.commands...)
	return s
}

func RangerCommands(r *client.Ranger, prompter Prompter) []Command {
	return []Command{
		{Name: "list", Params: "repository|policy [id]", Help: "List repositories or policies", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() < 1 || args.Len() > 2 {
				return "Incorrect parameters", nil
			}
			return r.List(ctx, args.Arg(0), args.Arg(1))
		}},
		{Name: "create", Params: "repository|policy <file>", Help: "Create from a JSON or YAML file, or 'create hbase policy'", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Arg(0) == "hbase" && args.Arg(1) == client.KindPolicy {
				return rangerHBaseForm(ctx, r, prompter)
			}
			if args.Len() != 2 {
				return "Incorrect parameters", nil
			}
			payload, err := readPayload(args.Arg(1))
			if err != nil {
				return nil, err
			}
			return r.Create(ctx, args.Arg(0), payload)
		}},
		{Name: "update", Params: "repository|policy <id> <file>", Help: "Replace a repository or policy", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 3 {
				return "Incorrect parameters", nil
			}
			payload, err := readPayload(args.Arg(2))
			if err != nil {
				return nil, err
			}
			return r.Update(ctx, args.Arg(0), args.Arg(1), payload)
		}},
		{Name: "delete", Params: "repository|policy <id>", Help: "Delete a repository or policy", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() < 1 || args.Len() > 2 {
				return "Incorrect parameters", nil
			}
			return r.Remove(ctx, args.Arg(0), args.Arg(1))
		}},
		{Name: "show", Params: "user <name>", Help: "Show a user", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Arg(0) != "user" || args.Len() != 2 {
				return "Incorrect parameters", nil
			}
			return r.User(ctx, args.Arg(1))
		}},
	}
}

func readPayload(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", name)
	}
	return client.LoadPayload(name, data)
}

func rangerHBaseForm(ctx context.Context, r *client.Ranger, prompter Prompter) (interface{}, error) {
	fields := []struct {
		label, def string
		value      string
	}{
		{label: "Repository name"},
		{label: "Policy name"},
		{label: "Tables", def: "*"},
		{label: "Column families", def: "*"},
		{label: "Columns", def: "*"},
		{label: "Description"},
		{label: "Users"},
		{label: "Groups"},
		{label: "Permissions", def: "read,write"},
	}
	for i := range fields {
		v, err := prompter.Prompt(fields[i].label, fields[i].def, false)
		if err != nil {
			return nil, errors.Wrap(err, "error reading policy")
		}
		fields[i].value = v
	}
	if fields[0].value == "" || fields[1].value == "" {
		return "Repository and policy name are required", nil
	}

	policy := client.HBasePolicy{
		RepositoryName: fields[0].value,
		PolicyName:     fields[1].value,
		Tables:         fields[2].value,
		ColumnFamilies: fields[3].value,
		Columns:        fields[4].value,
		Description:    fields[5].value,
		IsEnabled:      true,
		IsAuditEnabled: true,
		PermMapList: []client.PermMap{{
			UserList:  splitList(fields[6].value),
			GroupList: splitList(fields[7].value),
			PermList:  splitList(fields[8].value),
		}},
	}
	return r.CreateHBasePolicy(ctx, policy)
}
