package config

// Default connection settings and REST roots for every wrapped service.
const (
	NameAmbari          = "ambari"
	NameHDFS            = "hdfs"
	NameHCat            = "hcat"
	NameRanger          = "ranger"
	NameKnox            = "knox"
	NameLivy            = "livy"
	NameCatalog         = "catalog"
	NameClouderaManager = "cm"
	NameAtlas           = "atlas"
	NameResourceManager = "rm"
	NameMapR            = "mapr"
)

var ServiceNames = []string{
	NameAmbari,
	NameHDFS,
	NameHCat,
	NameRanger,
	NameKnox,
	NameLivy,
	NameCatalog,
	NameClouderaManager,
	NameAtlas,
	NameResourceManager,
	NameMapR,
}

var DefaultServices = map[string]Service{
	NameAmbari:          {Prefix: "http", Host: "localhost", Port: 8080},
	NameHDFS:            {Prefix: "http", Host: "localhost", Port: 50070},
	NameHCat:            {Prefix: "http", Host: "localhost", Port: 50111},
	NameRanger:          {Prefix: "http", Host: "localhost", Port: 6080},
	NameKnox:            {Prefix: "https", Host: "localhost", Port: 8443, Cluster: "default"},
	NameLivy:            {Prefix: "http", Host: "localhost", Port: 8998},
	NameCatalog:         {Prefix: "http", Host: "localhost", Port: 5000},
	NameClouderaManager: {Prefix: "http", Host: "localhost", Port: 7180, User: "admin", Password: "admin"},
	NameAtlas:           {Prefix: "https", Host: "localhost", Port: 31000},
	NameResourceManager: {Prefix: "http", Host: "localhost", Port: 8088},
	NameMapR:            {Prefix: "https", Host: "localhost", Port: 8443},
}

// RootPaths are the REST roots appended to prefix://host:port
var RootPaths = map[string]string{
	NameAmbari:          "/api/v1",
	NameHDFS:            "/webhdfs/v1",
	NameHCat:            "/templeton/v1",
	NameRanger:          "/service/public/api",
	NameKnox:            "/gateway",
	NameLivy:            "/sessions",
	NameCatalog:         "/api/catalog",
	NameClouderaManager: "/api/v41",
	NameAtlas:           "/api/atlas/v2",
	NameResourceManager: "/ws/v1/cluster",
	NameMapR:            "/rest",
}

const (
	DefaultStopState    = "INSTALLED"
	DefaultPollInterval = "1s"
	DefaultLivyKind     = "pyspark"
)
