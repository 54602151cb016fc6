package client

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/pkg/errors"
)

// WebHDFS operation names keyed by shell verb.
var hdfsOps = map[string]string{
	"ls":     "LISTSTATUS",
	"cat":    "OPEN",
	"mkdir":  "MKDIRS",
	"put":    "CREATE",
	"home":   "GETHOMEDIRECTORY",
	"append": "APPEND",
	"chmod":  "SETPERMISSION",
	"chown":  "SETOWNER",
	"rename": "RENAME",
	"stat":   "GETFILESTATUS",
	"rm":     "DELETE",
}

// HDFSOp returns the WebHDFS op for a shell verb.
func HDFSOp(verb string) string {
	return hdfsOps[verb]
}

// WebHDFS wraps the WebHDFS REST API and tracks a working directory.
type WebHDFS struct {
	*Endpoint
	Cwd string
	// Root overrides WebURL, e.g. for WebHDFS behind a Knox gateway
	Root string
	// Gateway sends credentials instead of the user.name parameter
	Gateway bool
}

func NewWebHDFS(svc config.Service) *WebHDFS {
	return &WebHDFS{Endpoint: NewEndpoint(svc, config.RootPaths[config.NameHDFS]), Cwd: "/"}
}

type FileStatus struct {
	PathSuffix       string `json:"pathSuffix"`
	Type             string `json:"type"`
	Length           int64  `json:"length"`
	Owner            string `json:"owner"`
	Group            string `json:"group"`
	Permission       string `json:"permission"`
	ModificationTime int64  `json:"modificationTime"`
	Replication      int    `json:"replication"`
	BlockSize        int64  `json:"blockSize"`
}

func (fs FileStatus) IsDir() bool {
	return fs.Type == "DIRECTORY"
}

var permBits = []string{"---", "--x", "-w-", "-wx", "r--", "r-x", "rw-", "rwx"}

// Permission renders an octal permission such as 755 as rwxr-xr-x.
func Permission(octal string) string {
	var b strings.Builder
	for _, c := range octal {
		if c >= '0' && c <= '7' {
			b.WriteString(permBits[c-'0'])
		} else {
			b.WriteString("---")
		}
	}
	return b.String()
}

// FormatFileStatus renders one ls line.
func FormatFileStatus(fs FileStatus) string {
	kind := "-"
	if fs.IsDir() {
		kind = "d"
	}
	perm := fs.Permission
	if perm == "" {
		perm = "000"
	}
	owner, group, name := fs.Owner, fs.Group, fs.PathSuffix
	if owner == "" {
		owner = "<no user>"
	}
	if group == "" {
		group = "<no group>"
	}
	if name == "" {
		name = "<no name>"
	}
	modified := time.UnixMilli(fs.ModificationTime).Format("2006-01-02 15:04")
	return fmt.Sprintf("%s%-10s  %-10s %-10s %8d %s %s", kind, Permission(perm), owner, group, fs.Length, modified, name)
}

func (h *WebHDFS) root() string {
	if h.Root != "" {
		return h.Root
	}
	return h.WebURL()
}

// Resolve turns p into an absolute path relative to the working directory.
func (h *WebHDFS) Resolve(p string) string {
	if p == "" {
		return h.Cwd
	}
	if strings.HasPrefix(p, "/") {
		return path.Clean(p)
	}
	return path.Join(h.Cwd, p)
}

func (h *WebHDFS) opts(verb string, params map[string]string) RequestOptions {
	all := map[string]string{"op": HDFSOp(verb)}
	for k, v := range params {
		if v != "" {
			all[k] = v
		}
	}
	opts := RequestOptions{Params: all}
	if h.Gateway {
		opts.Auth = h.Auth()
	} else {
		opts.User = h.User
	}
	return opts
}

func (h *WebHDFS) url(p string) string {
	return h.root() + h.Resolve(p)
}

// Home asks the namenode for the user's home directory, falling back to
// /user/<user> and then to /.
func (h *WebHDFS) Home(ctx context.Context) string {
	res, err := h.Get(ctx, h.root(), h.opts("home", nil))
	if err == nil {
		var body struct {
			Path string `json:"Path"`
		}
		if res.Decode(&body) == nil && body.Path != "" {
			return body.Path
		}
	}
	if h.User != "" {
		return "/user/" + h.User
	}
	return "/"
}

// Cd changes the working directory. ".." goes to the parent and an empty
// path goes home.
func (h *WebHDFS) Cd(ctx context.Context, p string) string {
	switch p {
	case "":
		h.Cwd = h.Home(ctx)
	case "..":
		h.Cwd = path.Dir(h.Cwd)
	default:
		h.Cwd = h.Resolve(p)
	}
	return h.Cwd
}

func (h *WebHDFS) List(ctx context.Context, p string) ([]FileStatus, error) {
	res, err := h.Get(ctx, h.url(p), h.opts("ls", nil))
	if err != nil {
		return nil, err
	}

	var body struct {
		FileStatuses struct {
			FileStatus []FileStatus `json:"FileStatus"`
		} `json:"FileStatuses"`
	}
	if err := res.Decode(&body); err != nil {
		return nil, err
	}
	return body.FileStatuses.FileStatus, nil
}

func (h *WebHDFS) Stat(ctx context.Context, p string) (*FileStatus, error) {
	res, err := h.Get(ctx, h.url(p), h.opts("stat", nil))
	if err != nil {
		return nil, err
	}

	var body struct {
		FileStatus *FileStatus `json:"FileStatus"`
	}
	if err := res.Decode(&body); err != nil {
		return nil, err
	}
	if body.FileStatus == nil {
		return nil, errors.Errorf("no status for %s", h.Resolve(p))
	}
	return body.FileStatus, nil
}

// Exists reports false when the namenode answers Not Found.
func (h *WebHDFS) Exists(ctx context.Context, p string) (bool, error) {
	_, err := h.Stat(ctx, p)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Result.Outcome == OutcomeNotFound {
		return false, nil
	}
	return err == nil, err
}

func (h *WebHDFS) IsDir(ctx context.Context, p string) bool {
	fs, err := h.Stat(ctx, p)
	return err == nil && fs.IsDir()
}

func (h *WebHDFS) Cat(ctx context.Context, p string) (*Result, error) {
	opts := h.opts("cat", nil)
	opts.Text = true
	return h.Get(ctx, h.url(p), opts)
}

func (h *WebHDFS) Mkdir(ctx context.Context, p, perm string) (*Result, error) {
	if perm == "" {
		perm = "777"
	}
	return h.Put(ctx, h.url(p), h.opts("mkdir", map[string]string{"permission": perm}))
}

// Create writes data to p, replacing an existing file.
func (h *WebHDFS) Create(ctx context.Context, p string, data []byte) (*Result, error) {
	opts := h.opts("put", map[string]string{"overwrite": "true"})
	opts.Body = data
	opts.Text = true
	opts.Expected = []int{201}
	return h.Put(ctx, h.url(p), opts)
}

func (h *WebHDFS) Append(ctx context.Context, p string, data []byte) (*Result, error) {
	opts := h.opts("append", nil)
	opts.Body = data
	opts.Text = true
	return h.Post(ctx, h.url(p), opts)
}

func (h *WebHDFS) Chmod(ctx context.Context, p, perm string) (*Result, error) {
	opts := h.opts("chmod", map[string]string{"permission": perm})
	opts.Text = true
	return h.Put(ctx, h.url(p), opts)
}

// Chown accepts owner or owner:group.
func (h *WebHDFS) Chown(ctx context.Context, p, owner string) (*Result, error) {
	group := ""
	if strings.Count(owner, ":") == 1 {
		parts := strings.SplitN(owner, ":", 2)
		owner, group = parts[0], parts[1]
	}
	opts := h.opts("chown", map[string]string{"owner": owner, "group": group})
	opts.Text = true
	return h.Put(ctx, h.url(p), opts)
}

func (h *WebHDFS) Rename(ctx context.Context, src, dst string) (*Result, error) {
	return h.Put(ctx, h.url(src), h.opts("rename", map[string]string{"destination": h.Resolve(dst)}))
}

func (h *WebHDFS) Remove(ctx context.Context, p string) (*Result, error) {
	return h.Delete(ctx, h.url(p), h.opts("rm", nil))
}

// Upload creates remote from data. When remote is a directory the local
// file's base name is appended.
func (h *WebHDFS) Upload(ctx context.Context, local, remote string, data []byte) (*Result, error) {
	if remote == "" {
		remote = path.Base(local)
	}
	target := h.Resolve(remote)
	if h.IsDir(ctx, target) {
		target = path.Join(target, path.Base(local))
	}
	return h.Create(ctx, target, data)
}

// Copy copies a file inside HDFS through the client. It refuses to copy a
// file onto itself or over an existing file.
func (h *WebHDFS) Copy(ctx context.Context, src, dst string) (*Result, error) {
	srcPath, dstPath := h.Resolve(src), h.Resolve(dst)
	if srcPath == dstPath {
		return nil, errors.New("Cannot copy a file to itself")
	}
	if h.IsDir(ctx, dstPath) {
		dstPath = path.Join(dstPath, path.Base(srcPath))
	}

	exists, err := h.Exists(ctx, dstPath)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Errorf("file %s already exist, cannot overwrite", dstPath)
	}

	content, err := h.Cat(ctx, srcPath)
	if err != nil {
		return nil, err
	}
	if !content.OK() {
		return content, nil
	}
	return h.Create(ctx, dstPath, content.Raw)
}
