package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanger(t *testing.T) {
	f := newFakeServer(t)
	f.handle("GET", "/service/public/api/policy", 200, `{"vXPolicies":[]}`)
	f.handle("GET", "/service/public/api/policy/12", 200, `{"id":12,"policyName":"p"}`)
	f.handle("PUT", "/service/public/api/policy/12", 200, `{"id":12}`)
	f.handle("DELETE", "/service/public/api/repository/3", 204, "")
	f.handle("GET", "/service/xusers/users/userName/alice", 200, `{"name":"alice"}`)

	r := NewRanger(f.service("admin", "pw"))
	ctx := context.Background()

	res, err := r.List(ctx, KindPolicy, "")
	require.NoError(t, err)
	assert.True(t, res.OK())

	_, err = r.List(ctx, "service", "")
	assert.EqualError(t, err, "Invalid parameter 'service'")

	res, err = r.Update(ctx, KindPolicy, "12", []byte(`{"policyName":"q"}`))
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "application/json", f.last().Header.Get("Content-Type"))
	assert.Equal(t, `{"policyName":"q"}`, f.last().Body)

	_, err = r.Update(ctx, KindPolicy, "13", []byte(`{}`))
	assert.EqualError(t, err, "Invalid repository/policy id: '13'")

	res, err = r.Remove(ctx, KindRepository, "3")
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "", res.Value())

	res, err = r.User(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "alice"}, res.Value())
}

func TestRangerHBasePolicy(t *testing.T) {
	f := newFakeServer(t)
	f.handle("POST", "/service/public/api/policy", 200, `{"id":1}`)

	r := NewRanger(f.service("admin", "pw"))
	_, err := r.CreateHBasePolicy(context.Background(), HBasePolicy{
		RepositoryName: "hbasedev",
		PolicyName:     "p1",
		Tables:         "*",
		IsEnabled:      true,
		PermMapList:    []PermMap{{UserList: []string{"alice"}, GroupList: []string{}, PermList: []string{"Read"}}},
	})
	require.NoError(t, err)

	var posted map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(f.last().Body), &posted))
	assert.Equal(t, "hbase", posted["repositoryType"])
	assert.Equal(t, "Inclusion", posted["tableType"])
	assert.Equal(t, "Inclusion", posted["columnType"])
	assert.Equal(t, true, posted["isEnabled"])
}

func TestLoadPayload(t *testing.T) {
	b, err := LoadPayload("policy.yaml", []byte("policyName: p1\nisEnabled: true\nresources:\n  - a\n  - b\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"policyName":"p1","isEnabled":true,"resources":["a","b"]}`, string(b))

	b, err = LoadPayload("repo.json", []byte(`{"name":"r"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"r"}`, string(b))

	_, err = LoadPayload("repo.json", []byte(`{"name":`))
	assert.EqualError(t, err, "repo.json is not a valid JSON document")
}

func TestAtlasSearchRequest(t *testing.T) {
	one := SearchRequest("hdfs_path", []string{"path"}, []AtlasCondition{{"name", "=", "x"}})
	assert.Equal(t, AtlasCondition{"name", "=", "x"}, one["entityFilters"])

	two := SearchRequest("hdfs_path", nil, []AtlasCondition{{"a", "=", "1"}, {"b", "=", "2"}})
	filters := two["entityFilters"].(map[string]interface{})
	assert.Equal(t, "AND", filters["condition"])
	assert.Len(t, filters["criterion"], 2)

	none := SearchRequest("hdfs_path", nil, nil)
	_, ok := none["entityFilters"]
	assert.False(t, ok)
	assert.Equal(t, "true", none["excludeDeletedEntities"])
}

func TestAtlasSearch(t *testing.T) {
	f := newFakeServer(t)
	f.handle("GET", "/api/atlas/v2/types/typedef/name/hdfs_path", 200,
		`{"name":"hdfs_path","attributeDefs":[{"name":"path"},{"name":"qualifiedName"}]}`)
	f.handle("POST", "/api/atlas/v2/search/basic", 200, `{"entities":[]}`)

	a := NewAtlas(f.service("admin", "pw"))
	res, err := a.Search(context.Background(), "hdfs_path", map[string]string{"qualifiedName": "q"})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.JSONEq(t,
		`{"typeName":"hdfs_path","excludeDeletedEntities":"true","attributes":["path","qualifiedName"],
		  "entityFilters":{"attributeName":"qualifiedName","operator":"=","attributeValue":"q"}}`,
		f.last().Body)
}

func TestAtlasAddEntity(t *testing.T) {
	f := newFakeServer(t)
	f.handle("POST", "/api/atlas/v2/entity", 200, `{"guidAssignments":{}}`)

	a := NewAtlas(f.service("admin", "pw"))
	_, err := a.AddEntity(context.Background(), "hdfs_path", map[string]string{"path": "/data"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"entity":{"typeName":"hdfs_path","attributes":{"path":"/data"}}}`, f.last().Body)
}

func TestClouderaManagerGateway(t *testing.T) {
	f := newFakeServer(t)
	f.handle("GET", "/api/v41/clusters", 200, `{"items":[{"name":"Cluster 1"}]}`)
	f.handle("GET", "/api/v41/clusters/Cluster 1/services/knox/roles", 200, `{"items":[{"hostRef":{"hostname":"knox.example.com"}}]}`)
	f.handle("GET", "/api/v41/clusters/Cluster 1/services/atlas/roles", 200, `{"items":[{"hostRef":{"hostname":"atlas.example.com"}}]}`)

	cm := NewClouderaManager(f.service("admin", "admin"))
	gw, err := cm.Gateway(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://knox.example.com:8443/gateway/cdp-proxy-api/knoxtoken/api/v1/token", gw.TokenURL)
	assert.Equal(t, "https://atlas.example.com:31000/api/atlas", gw.AtlasURL)
	assert.Equal(t, "https://knox.example.com:8443/gateway/cdp-proxy/atlas/api/atlas", gw.AtlasKnoxURL)
	assert.Equal(t, "https://knox.example.com:8443/gateway/cdp-proxy/ranger", gw.RangerKnoxURL)

	_, err = cm.RoleHost(context.Background(), "ranger")
	assert.Error(t, err)
}

func TestMapR(t *testing.T) {
	f := newFakeServer(t)
	f.handle("GET", "/rest/service/list", 200,
		`{"status":"OK","data":[{"name":"nfs","displayname":"NFS Gateway","state":2,"logpath":"/opt/mapr/logs/nfs.log"}]}`)
	f.handle("GET", "/rest/disk/list", 200, `{"data":[{"diskname":"/dev/sdb","totalspace":102400,"status":0}]}`)

	m := NewMapR(f.service("mapr", "mapr"))
	services, err := m.Services(context.Background(), "node1")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Running", MapRState(services[0].State))
	assert.Equal(t, "node1", f.last().Query.Get("node"))

	disks, err := m.Disks(context.Background(), "node1")
	require.NoError(t, err)
	require.Len(t, disks, 1)
	assert.Equal(t, "node1", f.last().Query.Get("host"))
	assert.Equal(t, "", disks[0].FSType)

	assert.Equal(t, "Stand by", MapRState(5))
	assert.Equal(t, "Unknown(9)", MapRState(9))
}

func TestKnoxRoutesThroughGateway(t *testing.T) {
	f := newFakeServer(t)
	f.handle("GET", "/gateway/sandbox/api/v1/version", 200, `{"ServerVersion":{"version":"1.0.0"}}`)
	f.handle("GET", "/gateway/sandbox/webhdfs/v1/tmp", 200, `{"FileStatuses":{"FileStatus":[]}}`)
	f.handle("GET", "/gateway/sandbox/templeton/v1/ddl/database", 200, `{"databases":["default"]}`)
	f.handle("GET", "/gateway/sandbox/ws/v1/cluster/info", 200, `{"clusterInfo":{}}`)

	svc := f.service("guest", "guest-password")
	svc.Cluster = "sandbox"
	k := NewKnox(svc)
	ctx := context.Background()

	_, err := k.Version(ctx)
	require.NoError(t, err)

	_, err = k.HDFS().List(ctx, "/tmp")
	require.NoError(t, err)
	req := f.last()
	assert.Empty(t, req.Query.Get("user.name"))
	assert.NotEmpty(t, req.Header.Get("Authorization"))

	res, err := k.HCat().Database(ctx, "")
	require.NoError(t, err)
	assert.True(t, res.OK())

	res, err = k.ResourceManager().Info(ctx)
	require.NoError(t, err)
	assert.True(t, res.OK())

	k.Cluster = "other"
	assert.Equal(t, f.URL+"/gateway/other/api/v1", k.APIURL())
}

func TestWebHCat(t *testing.T) {
	f := newFakeServer(t)
	f.handle("POST", "/templeton/v1/ddl", 200, `{"stdout":"","exitcode":0}`)
	f.handle("GET", "/templeton/v1/ddl/database/sales/table/orders", 200, `{"columns":[]}`)

	w := NewWebHCat(f.service("hive", ""))
	_, err := w.RunDDL(context.Background(), "show tables")
	require.NoError(t, err)
	req := f.last()
	assert.Equal(t, "exec=show+tables", req.Body)
	assert.Equal(t, "hive", req.Query.Get("user.name"))

	res, err := w.Table(context.Background(), "sales", "orders")
	require.NoError(t, err)
	assert.True(t, res.OK())
}

func TestResourceManagerApps(t *testing.T) {
	f := newFakeServer(t)
	f.handle("GET", "/ws/v1/cluster/apps", 200, `{"apps":null}`)

	rm := NewResourceManager(f.service("yarn", ""))
	_, err := rm.Apps(context.Background(), "", map[string]string{"state": "RUNNING"})
	require.NoError(t, err)
	assert.Equal(t, "RUNNING", f.last().Query.Get("state"))
	assert.Equal(t, "yarn", f.last().Query.Get("user.name"))
}

func TestFetchTokenAndInspect(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "KNOXSSO",
		ExpiresAt: jwt.NewNumericDate(expires),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	f := newFakeServer(t)
	f.routes["GET /token"] = func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": signed, "token_type": "Bearer"})
	}

	token, err := FetchToken(context.Background(), f.URL+"/token", "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, signed, token)

	_, err = FetchToken(context.Background(), f.URL+"/token", "alice", "wrong")
	assert.Error(t, err)

	info, err := InspectToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Subject)
	assert.Equal(t, "KNOXSSO", info.Issuer)
	assert.True(t, info.ExpiresAt.Equal(expires))
	assert.False(t, info.Expired)

	_, err = InspectToken("not-a-token")
	assert.Error(t, err)
}

func TestEndpointLoginUsesCookie(t *testing.T) {
	f := newFakeServer(t)
	f.handle("GET", "/token", 200, `{"access_token":"abc"}`)
	f.routes["GET /api/atlas/v2/types/typedefs"] = func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SSOCookieName)
		if err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"entityDefs":[]}`))
	}

	svc := f.service("alice", "pw")
	svc.UseSSO = true
	svc.TokenURL = f.URL + "/token"
	a := NewAtlas(svc)
	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, TokenCookie{Name: SSOCookieName, Token: "abc"}, a.Auth())

	res, err := a.Types(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK())
}

func TestEndpointURLsAndProxy(t *testing.T) {
	e := NewEndpoint(config.Service{Prefix: "https", Host: "h", Port: 8443}, "/gateway")
	assert.Equal(t, "https://h:8443", e.BaseURL())
	assert.Equal(t, "https://h:8443/gateway", e.WebURL())
	assert.Nil(t, e.Auth())

	e.User, e.Password = "u", "p"
	assert.Equal(t, BasicAuth{User: "u", Password: "p"}, e.Auth())

	e.SetProxy("https", "http://proxy:3128")
	assert.JSONEq(t, `{"http":"","https":"http://proxy:3128"}`, e.ProxyJSON())
	assert.NotSame(t, defaultClient, e.client())
}
