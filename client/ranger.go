package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Ranger wraps the Ranger public REST API.
type Ranger struct {
	*Endpoint
}

func NewRanger(svc config.Service) *Ranger {
	return &Ranger{Endpoint: NewEndpoint(svc, config.RootPaths[config.NameRanger])}
}

// Ranger resource kinds.
const (
	KindRepository = "repository"
	KindPolicy     = "policy"
)

type (
	// PermMap grants a permission list to users and groups.
	PermMap struct {
		UserList  []string `json:"userList" yaml:"userList"`
		GroupList []string `json:"groupList" yaml:"groupList"`
		PermList  []string `json:"permList" yaml:"permList"`
	}

	HBasePolicy struct {
		RepositoryType string    `json:"repositoryType"`
		RepositoryName string    `json:"repositoryName"`
		PolicyName     string    `json:"policyName"`
		Tables         string    `json:"tables"`
		ColumnFamilies string    `json:"columnFamilies"`
		Columns        string    `json:"columns"`
		Description    string    `json:"description"`
		IsEnabled      bool      `json:"isEnabled"`
		IsAuditEnabled bool      `json:"isAuditEnabled"`
		IsRecursive    bool      `json:"isRecursive"`
		TableType      string    `json:"tableType"`
		ColumnType     string    `json:"columnType"`
		PermMapList    []PermMap `json:"permMapList"`
	}
)

func (r *Ranger) kindURL(kind string) (string, error) {
	switch kind {
	case KindRepository, KindPolicy:
		return r.WebURL() + "/" + kind, nil
	}
	return "", errors.Errorf("Invalid parameter '%s'", kind)
}

func (r *Ranger) jsonOptions(body []byte) RequestOptions {
	opts := r.authed()
	opts.Headers = map[string]string{"Content-Type": "application/json"}
	opts.Body = body
	return opts
}

// List shows every resource of a kind, or one resource when id is set.
func (r *Ranger) List(ctx context.Context, kind, id string) (*Result, error) {
	u, err := r.kindURL(kind)
	if err != nil {
		return nil, err
	}
	if id != "" {
		u += "/" + id
	}
	return r.Get(ctx, u, r.authed())
}

func (r *Ranger) Create(ctx context.Context, kind string, payload []byte) (*Result, error) {
	u, err := r.kindURL(kind)
	if err != nil {
		return nil, err
	}
	return r.Post(ctx, u, r.jsonOptions(payload))
}

// Update replaces a resource after checking that the id exists.
func (r *Ranger) Update(ctx context.Context, kind, id string, payload []byte) (*Result, error) {
	old, err := r.List(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	var current struct {
		ID json.Number `json:"id"`
	}
	if err := old.Decode(&current); err != nil || current.ID.String() != id {
		return nil, errors.Errorf("Invalid repository/policy id: '%s'", id)
	}

	u, _ := r.kindURL(kind)
	return r.Put(ctx, u+"/"+id, r.jsonOptions(payload))
}

func (r *Ranger) Remove(ctx context.Context, kind, id string) (*Result, error) {
	u, err := r.kindURL(kind)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("Missing id")
	}
	opts := r.authed()
	opts.Text = true
	opts.Expected = []int{http.StatusNoContent}
	return r.Delete(ctx, u+"/"+id, opts)
}

func (r *Ranger) CreateHBasePolicy(ctx context.Context, policy HBasePolicy) (*Result, error) {
	policy.RepositoryType = "hbase"
	if policy.TableType == "" {
		policy.TableType = "Inclusion"
	}
	if policy.ColumnType == "" {
		policy.ColumnType = "Inclusion"
	}
	payload, err := jsonBody(policy)
	if err != nil {
		return nil, err
	}
	return r.Create(ctx, KindPolicy, payload)
}

// User looks a user up through the xusers service, which lives outside the
// public api root.
func (r *Ranger) User(ctx context.Context, name string) (*Result, error) {
	u := r.BaseURL() + escapePath("/service/xusers/users/userName/%s", name)
	return r.Get(ctx, u, r.authed())
}

// LoadPayload reads a repository or policy document. YAML files are
// converted to JSON, JSON files are passed through after validation.
func LoadPayload(name string, data []byte) ([]byte, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrapf(err, "error parsing %s", name)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Wrapf(err, "error converting %s", name)
		}
		return b, nil
	}

	if !json.Valid(data) {
		return nil, errors.Errorf("%s is not a valid JSON document", name)
	}
	return data, nil
}
