package shell

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
)

func NewLivy(l *client.Livy, opts Options) *Shell {
	s := New(config.NameLivy, "Livy spark shell", l.Endpoint, LivyCommands(l), opts)
	s.Location = func() string {
		if l.ID < 0 {
			return "-"
		}
		return "session " + strconv.Itoa(l.ID)
	}
	return s
}

func LivyCommands(l *client.Livy) []Command {
	return []Command{
		{Name: "sessions", Help: "List sessions", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			sessions, err := l.Sessions(ctx)
			if err != nil {
				return nil, err
			}
			t := &Table{Header: []string{"ID", "NAME", "KIND", "STATE", "OWNER", "APPID"}}
			for _, s := range sessions {
				t.Append(s.ID, s.Name, s.Kind, s.State, s.Owner, s.AppID)
			}
			return t, nil
		}},
		{Name: "find", Params: "<name>", Help: "Find a session by name", Run: func(ctx context.Context, args Args) (interface{}, error) {
			session, err := l.Find(ctx, args.Arg(0))
			if err != nil {
				return nil, err
			}
			if session == nil {
				return fmt.Sprintf("No session named '%s'", args.Arg(0)), nil
			}
			return session, nil
		}},
		{Name: "create", Params: "[name] [kind]", Help: "Create a session and wait until it is ready", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() > 2 {
				return "Incorrect parameters", nil
			}
			return l.Create(ctx, args.Arg(0), args.Arg(1), nil)
		}},
		{Name: "open", Params: "<name> [kind]", Help: "Use the named session, creating it if needed", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() < 1 || args.Len() > 2 {
				return "Incorrect parameters", nil
			}
			return l.Open(ctx, args.Arg(0), args.Arg(1))
		}},
		{Name: "use", Params: "<id>", Help: "Select a session by id", Run: func(_ context.Context, args Args) (interface{}, error) {
			id, err := strconv.Atoi(args.Arg(0))
			if err != nil || id < 0 {
				return "Incorrect parameters", nil
			}
			l.ID = id
			return nil, nil
		}},
		{Name: "state", Help: "Show the session state", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return l.State(ctx)
		}},
		{Name: "show", Help: "Show the session", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return l.Show(ctx)
		}},
		{Name: "delete", Help: "Delete the session", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return l.DeleteSession(ctx)
		}},
		{Name: "run", Params: "<code>", Help: "Run code and wait for the result", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return livyRun(ctx, l, args, false)
		}},
		{Name: "submit", Params: "<code>", Help: "Submit code without waiting", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return livyRun(ctx, l, args, true)
		}},
		{Name: "stmt", Params: "<id>", Help: "Show a statement", Run: func(ctx context.Context, args Args) (interface{}, error) {
			id, err := strconv.Atoi(args.Arg(0))
			if err != nil {
				return "Incorrect parameters", nil
			}
			stmt, err := l.Statement(ctx, id)
			if err != nil {
				return nil, err
			}
			return statementOutput(stmt), nil
		}},
	}
}

func livyRun(ctx context.Context, l *client.Livy, args Args, batch bool) (interface{}, error) {
	if args.Raw == "" {
		return "Missing code", nil
	}
	stmt, err := l.Run(ctx, args.Raw, batch)
	if err != nil {
		return nil, err
	}
	if batch {
		return fmt.Sprintf("Statement %d submitted", stmt.ID), nil
	}
	return statementOutput(stmt), nil
}

// statementOutput prints the plain text result of a finished statement, or
// its traceback on error.
func statementOutput(stmt *client.LivyStatement) interface{} {
	if stmt.Output == nil {
		return stmt
	}
	if data, ok := stmt.Output["data"].(map[string]interface{}); ok {
		if text, ok := data["text/plain"].(string); ok {
			return text
		}
	}
	if stmt.Output["status"] == "error" {
		return fmt.Sprintf("%v: %v", stmt.Output["ename"], stmt.Output["evalue"])
	}
	return stmt
}
