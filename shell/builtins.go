package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/types"
	"github.com/pkg/errors"
)

const helpFormat = "    %-20s%-25s- %-s\n"

func (s *Shell) builtins() []Command {
	return []Command{
		{Name: "help", Aliases: []string{"h"}, Params: "[command]", Help: "Show help", Run: s.help},
		{Name: "echo", Params: "<text>", Help: "Print text", Run: func(_ context.Context, args Args) (interface{}, error) {
			return args.Raw, nil
		}},
		{Name: "curl", Params: "[on|off]", Help: "Trace requests as curl commands", Run: s.curl},
		{Name: "whoami", Help: "Show the current user", Run: func(context.Context, Args) (interface{}, error) {
			return s.Endpoint.User, nil
		}},
		{Name: "user", Params: "<name>", Help: "Set the user", Run: s.user},
		{Name: "passwd", Params: "[password]", Help: "Set the password", Run: s.passwd},
		{Name: "prefix", Params: "[http|https]", Help: "Show or set the url scheme", Run: s.prefix},
		{Name: "host", Params: "[host]", Help: "Show or set the host", Run: s.host},
		{Name: "port", Params: "[port]", Help: "Show or set the port", Run: s.port},
		{Name: "proxy", Params: "[scheme url]", Help: "Show or set a proxy", Run: s.proxy},
		{Name: "get", Params: "<url>", Help: "GET an url or a path below the api root", Run: s.get},
		{},
		{Name: "save", Params: "<profile>", Help: "Save the connection settings", Run: s.save},
		{Name: "load", Params: "<profile>", Help: "Load saved connection settings", Run: s.load},
		{Name: "profiles", Help: "List saved profiles", Run: s.listProfiles},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "Leave the shell", Run: func(context.Context, Args) (interface{}, error) {
			return nil, ErrQuit
		}},
		{},
	}
}

func (s *Shell) help(_ context.Context, args Args) (interface{}, error) {
	if args.Len() > 0 {
		cmd, ok := s.lookup(args.Arg(0))
		if !ok {
			return fmt.Sprintf("Invalid command '%s'", args.Arg(0)), nil
		}
		names := strings.Join(append([]string{cmd.Name}, cmd.Aliases...), "|")
		return fmt.Sprintf("%s %s\n    %s", names, cmd.Params, cmd.Help), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nCommands:\n", s.Banner)
	for _, cmd := range s.commands {
		if cmd.Name == "" {
			b.WriteString("\n")
			continue
		}
		names := strings.Join(append([]string{cmd.Name}, cmd.Aliases...), "|")
		fmt.Fprintf(&b, helpFormat, names, cmd.Params, cmd.Help)
	}
	return b.String(), nil
}

func (s *Shell) curl(_ context.Context, args Args) (interface{}, error) {
	switch strings.ToLower(args.Arg(0)) {
	case "":
	case "on":
		s.Endpoint.Curl = true
	case "off":
		s.Endpoint.Curl = false
	default:
		return "Incorrect parameters", nil
	}
	if s.Endpoint.Curl {
		return "curl is ON", nil
	}
	return "curl is OFF", nil
}

func (s *Shell) user(_ context.Context, args Args) (interface{}, error) {
	if args.Len() != 1 {
		return "Incorrect parameters", nil
	}
	s.Endpoint.User = args.Arg(0)
	s.Endpoint.Token = ""
	return nil, nil
}

func (s *Shell) passwd(_ context.Context, args Args) (interface{}, error) {
	password := args.Raw
	if password == "" {
		p, err := s.prompter.Prompt("Password", "", true)
		if err != nil {
			return nil, errors.Wrap(err, "error reading password")
		}
		password = p
	}
	s.Endpoint.Password = password
	s.Endpoint.Token = ""
	return nil, nil
}

func (s *Shell) prefix(_ context.Context, args Args) (interface{}, error) {
	switch args.Arg(0) {
	case "":
		return s.Endpoint.Prefix, nil
	case "http", "https":
		s.Endpoint.Prefix = args.Arg(0)
		return nil, nil
	}
	return "Incorrect parameters", nil
}

func (s *Shell) host(_ context.Context, args Args) (interface{}, error) {
	if args.Len() == 0 {
		return s.Endpoint.Host, nil
	}
	s.Endpoint.Host = args.Arg(0)
	return nil, nil
}

func (s *Shell) port(_ context.Context, args Args) (interface{}, error) {
	if args.Len() == 0 {
		return strconv.Itoa(s.Endpoint.Port), nil
	}
	port, err := strconv.Atoi(args.Arg(0))
	if err != nil || port <= 0 || port > 65535 {
		return "Incorrect parameters", nil
	}
	s.Endpoint.Port = port
	return nil, nil
}

func (s *Shell) proxy(_ context.Context, args Args) (interface{}, error) {
	switch args.Len() {
	case 0:
		return s.Endpoint.ProxyJSON(), nil
	case 1, 2:
		scheme := args.Arg(0)
		if scheme != "http" && scheme != "https" {
			return "Incorrect parameters", nil
		}
		s.Endpoint.SetProxy(scheme, args.Arg(1))
		return s.Endpoint.ProxyJSON(), nil
	}
	return "Incorrect parameters", nil
}

func (s *Shell) get(ctx context.Context, args Args) (interface{}, error) {
	if args.Len() != 1 {
		return "Incorrect parameters", nil
	}
	u := args.Arg(0)
	if strings.HasPrefix(u, "/") {
		u = s.Endpoint.WebURL() + u
	}
	return s.Endpoint.Get(ctx, u, client.RequestOptions{Auth: s.Endpoint.Auth()})
}

var errNoProfiles = errors.New("profile store is not available")

func (s *Shell) save(_ context.Context, args Args) (interface{}, error) {
	if args.Len() != 1 {
		return "Missing profile name", nil
	}
	if s.profiles == nil {
		return nil, errNoProfiles
	}
	p := &types.Profile{
		Name:    args.Arg(0),
		Service: s.Service,
		Prefix:  s.Endpoint.Prefix,
		Host:    s.Endpoint.Host,
		Port:    s.Endpoint.Port,
		User:    s.Endpoint.User,
	}
	if s.Cluster != nil {
		p.Cluster = s.Cluster()
	}
	saved, err := s.profiles.SaveProfile(p)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Saved profile '%s' (%s)", saved.Name, saved.ProfileID), nil
}

func (s *Shell) load(ctx context.Context, args Args) (interface{}, error) {
	if args.Len() != 1 {
		return "Missing profile name", nil
	}
	if s.profiles == nil {
		return nil, errNoProfiles
	}
	p, err := s.profiles.GetProfile(s.Service, args.Arg(0))
	if err != nil {
		return nil, err
	}

	s.Endpoint.Prefix = p.Prefix
	s.Endpoint.Host = p.Host
	s.Endpoint.Port = p.Port
	if p.User != "" && p.User != s.Endpoint.User {
		s.Endpoint.User = p.User
		s.Endpoint.Password = ""
	}
	s.Endpoint.Token = ""
	if s.SetCluster != nil && p.Cluster != "" {
		s.SetCluster(p.Cluster)
	}
	if s.OnConnect != nil {
		s.OnConnect(ctx)
	}
	return fmt.Sprintf("Loaded profile '%s': %s", p.Name, p.BaseURL()), nil
}

func (s *Shell) listProfiles(context.Context, Args) (interface{}, error) {
	if s.profiles == nil {
		return nil, errNoProfiles
	}
	profiles, err := s.profiles.ListProfiles(s.Service)
	if err != nil {
		return nil, err
	}
	t := &Table{Header: []string{"NAME", "URL", "USER", "CLUSTER"}}
	for _, p := range profiles {
		t.Append(p.Name, p.BaseURL(), p.User, p.Cluster)
	}
	return t, nil
}
