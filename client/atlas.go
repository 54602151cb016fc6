package client

import (
	"context"

	"github.com/hadoopsh/hadoopsh/pkg/config"
)

// Atlas wraps the Atlas v2 REST API.
type Atlas struct {
	*Endpoint
}

func NewAtlas(svc config.Service) *Atlas {
	e := NewEndpoint(svc, config.RootPaths[config.NameAtlas])
	e.Headers["Accept"] = "application/json"
	return &Atlas{Endpoint: e}
}

// AtlasCondition is one attribute filter of a basic search.
type AtlasCondition struct {
	AttributeName  string `json:"attributeName"`
	Operator       string `json:"operator"`
	AttributeValue string `json:"attributeValue"`
}

func (a *Atlas) Types(ctx context.Context) (*Result, error) {
	return a.Get(ctx, a.WebURL()+"/types/typedefs", a.authed())
}

func (a *Atlas) Type(ctx context.Context, name string) (*Result, error) {
	return a.Get(ctx, a.WebURL()+escapePath("/types/typedef/name/%s", name), a.authed())
}

// TypeAttrs lists the attribute names defined by a type.
func (a *Atlas) TypeAttrs(ctx context.Context, name string) ([]string, error) {
	res, err := a.Type(ctx, name)
	if err != nil {
		return nil, err
	}

	var body struct {
		AttributeDefs []struct {
			Name string `json:"name"`
		} `json:"attributeDefs"`
	}
	if err := res.Decode(&body); err != nil {
		return nil, err
	}

	attrs := make([]string, 0, len(body.AttributeDefs))
	for _, def := range body.AttributeDefs {
		attrs = append(attrs, def.Name)
	}
	return attrs, nil
}

func (a *Atlas) Entity(ctx context.Context, guid string) (*Result, error) {
	return a.Get(ctx, a.WebURL()+escapePath("/entity/guid/%s", guid), a.authed())
}

func (a *Atlas) DeleteEntity(ctx context.Context, guid string) (*Result, error) {
	return a.Delete(ctx, a.WebURL()+escapePath("/entity/guid/%s", guid), a.authed())
}

func (a *Atlas) AddEntity(ctx context.Context, typeName string, attrs map[string]string) (*Result, error) {
	payload, err := jsonBody(map[string]interface{}{
		"entity": map[string]interface{}{"typeName": typeName, "attributes": attrs},
	})
	if err != nil {
		return nil, err
	}
	opts := a.authed()
	opts.Headers = map[string]string{"Content-Type": "application/json"}
	opts.Body = payload
	return a.Post(ctx, a.WebURL()+"/entity", opts)
}

// SearchRequest builds a basic search body. A single condition is sent as
// is, several are combined with AND.
func SearchRequest(typeName string, attrs []string, conditions []AtlasCondition) map[string]interface{} {
	data := map[string]interface{}{
		"typeName":               typeName,
		"excludeDeletedEntities": "true",
		"attributes":             attrs,
	}
	switch len(conditions) {
	case 0:
	case 1:
		data["entityFilters"] = conditions[0]
	default:
		data["entityFilters"] = map[string]interface{}{"condition": "AND", "criterion": conditions}
	}
	return data
}

// Search runs a basic search returning every attribute of typeName.
func (a *Atlas) Search(ctx context.Context, typeName string, filters map[string]string) (*Result, error) {
	attrs, err := a.TypeAttrs(ctx, typeName)
	if err != nil {
		return nil, err
	}

	conditions := make([]AtlasCondition, 0, len(filters))
	for _, k := range sortedKeys(filters) {
		conditions = append(conditions, AtlasCondition{AttributeName: k, Operator: "=", AttributeValue: filters[k]})
	}

	payload, err := jsonBody(SearchRequest(typeName, attrs, conditions))
	if err != nil {
		return nil, err
	}
	opts := a.authed()
	opts.Headers = map[string]string{"Content-Type": "application/json"}
	opts.Body = payload
	return a.Post(ctx, a.WebURL()+"/search/basic", opts)
}
