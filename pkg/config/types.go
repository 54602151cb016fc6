package config

type (
	// hadoopsh configuration. Each of the below fields can also be set
	// through an environment variable with the same name, prefixed, and in uppercase. E.g.
	// `Livy.PollInterval` can be set with `HADOOPSH_LIVY_POLL_INTERVAL`.
	Config struct {
		// LogLevel is the zerolog level used when HADOOPSH_LOG_LEVEL is unset
		LogLevel string `json:"log_level" key:"log_level" yaml:"log_level" mapstructure:"log_level"`
		// ProfileDB is the path of the sqlite file holding saved profiles
		ProfileDB string `json:"profile_db" key:"profile_db" yaml:"profile_db" mapstructure:"profile_db"`
		// Services holds connection settings keyed by shell name (ambari, hdfs, ...)
		Services map[string]Service `json:"services" key:"services" yaml:"services" mapstructure:"services"`

		Ambari Ambari `json:"ambari" key:"ambari" yaml:"ambari" mapstructure:"ambari"`
		Livy   Livy   `json:"livy" key:"livy" yaml:"livy" mapstructure:"livy"`
	}

	Service struct {
		Prefix   string `json:"prefix" key:"prefix" yaml:"prefix" mapstructure:"prefix"`
		Host     string `json:"host" key:"host" yaml:"host" mapstructure:"host"`
		Port     int    `json:"port" key:"port" yaml:"port" mapstructure:"port"`
		User     string `json:"user" key:"user" yaml:"user" mapstructure:"user"`
		Password string `json:"password" key:"password" yaml:"password" mapstructure:"password"`
		// Cluster is the Knox topology name, or the cluster a shell starts in
		Cluster string `json:"cluster" key:"cluster" yaml:"cluster" mapstructure:"cluster"`
		// UseSSO presents a Knox token as the hadoop-jwt cookie instead of basic auth
		UseSSO   bool   `json:"use_sso" key:"use_sso" yaml:"use_sso" mapstructure:"use_sso"`
		TokenURL string `json:"token_url" key:"token_url" yaml:"token_url" mapstructure:"token_url"`
		Curl     bool   `json:"curl" key:"curl" yaml:"curl" mapstructure:"curl"`
	}

	Ambari struct {
		// StopState is the state a stopped service is put into. Ambari uses
		// INSTALLED, some stacks expose a distinct STOPPED state.
		StopState string `json:"stop_state" key:"stop_state" yaml:"stop_state" mapstructure:"stop_state"`
	}

	Livy struct {
		// PollInterval is the delay between status queries, e.g. "1s"
		PollInterval string `json:"poll_interval" key:"poll_interval" yaml:"poll_interval" mapstructure:"poll_interval"`
		// PollTimeout bounds a wait; empty means wait until the state changes
		PollTimeout string `json:"poll_timeout" key:"poll_timeout" yaml:"poll_timeout" mapstructure:"poll_timeout"`
		Kind        string `json:"kind" key:"kind" yaml:"kind" mapstructure:"kind"`
	}
)
