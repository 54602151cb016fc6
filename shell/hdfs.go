package shell

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/pkg/errors"
)

func NewHDFS(h *client.WebHDFS, opts Options) *Shell {
	s := New(config.NameHDFS, "WebHDFS shell", h.Endpoint, HDFSCommands(h), opts)
	s.Location = func() string { return h.Cwd }
	s.OnConnect = func(ctx context.Context) { h.Cd(ctx, "") }
	return s
}

func HDFSCommands(h *client.WebHDFS) []Command {
	return []Command{
		{Name: "lls", Params: "[dir]", Help: "List a local directory", Run: localList},
		{Name: "ls", Params: "[path]", Help: "List a directory", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return hdfsList(ctx, h, args.Arg(0), false)
		}},
		{Name: "dir", Params: "[path]", Help: "List the subdirectories of a directory", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return hdfsList(ctx, h, args.Arg(0), true)
		}},
		{Name: "pwd", Help: "Show the working directory", Run: func(context.Context, Args) (interface{}, error) {
			return h.Cwd, nil
		}},
		{Name: "cd", Params: "[path]", Help: "Change the working directory", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() > 1 {
				return "Incorrect parameters", nil
			}
			target := args.Arg(0)
			if target != "" && target != ".." && !h.IsDir(ctx, target) {
				return fmt.Sprintf("%s is not a directory", h.Resolve(target)), nil
			}
			h.Cd(ctx, target)
			return nil, nil
		}},
		{Name: "home", Help: "Show the home directory", Run: func(ctx context.Context, _ Args) (interface{}, error) {
			return h.Home(ctx), nil
		}},
		{Name: "cat", Params: "<file>", Help: "Print a file", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 1 {
				return "Missing filename", nil
			}
			return h.Cat(ctx, args.Arg(0))
		}},
		{Name: "stat", Params: "<file>", Help: "Show the status of a file", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 1 {
				return "Missing filename", nil
			}
			return h.Stat(ctx, args.Arg(0))
		}},
		{Name: "mkdir", Params: "<dir> [perm]", Help: "Create a directory", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() < 1 || args.Len() > 2 {
				return "Incorrect parameters", nil
			}
			return h.Mkdir(ctx, args.Arg(0), args.Arg(1))
		}},
		{Name: "put", Params: "<local> [remote]", Help: "Upload a local file", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() < 1 || args.Len() > 2 {
				return "Incorrect parameters", nil
			}
			data, err := os.ReadFile(args.Arg(0))
			if err != nil {
				return nil, errors.Wrapf(err, "error reading %s", args.Arg(0))
			}
			return h.Upload(ctx, args.Arg(0), args.Arg(1), data)
		}},
		{Name: "get", Params: "<remote> [local]", Help: "Download a file", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return hdfsGet(ctx, h, args)
		}},
		{Name: "cp", Params: "<src> <dst>", Help: "Copy a file", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 2 {
				return "Incorrect parameters", nil
			}
			return h.Copy(ctx, args.Arg(0), args.Arg(1))
		}},
		{Name: "append", Params: "<local> <remote>", Help: "Append a local file to a file", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 2 {
				return "Incorrect parameters", nil
			}
			data, err := os.ReadFile(args.Arg(0))
			if err != nil {
				return nil, errors.Wrapf(err, "error reading %s", args.Arg(0))
			}
			return h.Append(ctx, args.Arg(1), data)
		}},
		{Name: "chmod", Params: "<perm> <file>", Help: "Change permissions", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 2 {
				return "Incorrect parameters", nil
			}
			return h.Chmod(ctx, args.Arg(1), args.Arg(0))
		}},
		{Name: "chown", Params: "<user[:group]> <file>", Help: "Change owner", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 2 {
				return "Incorrect parameters", nil
			}
			return h.Chown(ctx, args.Arg(1), args.Arg(0))
		}},
		{Name: "rm", Params: "<file>", Help: "Delete a file", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 1 {
				return "Missing filename", nil
			}
			return h.Remove(ctx, args.Arg(0))
		}},
		{Name: "rename", Params: "<old> <new>", Help: "Rename a file", Run: func(ctx context.Context, args Args) (interface{}, error) {
			if args.Len() != 2 {
				return "Incorrect parameters", nil
			}
			return h.Rename(ctx, args.Arg(0), args.Arg(1))
		}},
	}
}

// hdfsList prints one long format line per entry, only directories when
// dirsOnly is set.
func hdfsList(ctx context.Context, h *client.WebHDFS, p string, dirsOnly bool) (interface{}, error) {
	files, err := h.List(ctx, p)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(files))
	for _, fs := range files {
		if dirsOnly && !fs.IsDir() {
			continue
		}
		lines = append(lines, client.FormatFileStatus(fs))
	}
	return strings.Join(lines, "\n"), nil
}

func hdfsGet(ctx context.Context, h *client.WebHDFS, args Args) (interface{}, error) {
	if args.Len() < 1 || args.Len() > 2 {
		return "Incorrect parameters", nil
	}
	res, err := h.Cat(ctx, args.Arg(0))
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return res, nil
	}

	local := args.Arg(1)
	if local == "" {
		local = path.Base(h.Resolve(args.Arg(0)))
	} else if info, err := os.Stat(local); err == nil && info.IsDir() {
		local = filepath.Join(local, path.Base(h.Resolve(args.Arg(0))))
	}
	if err := os.WriteFile(local, res.Raw, 0o644); err != nil {
		return nil, errors.Wrapf(err, "error writing %s", local)
	}
	return nil, nil
}

func localList(_ context.Context, args Args) (interface{}, error) {
	dir := args.Arg(0)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "error listing %s", dir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "\n"), nil
}
