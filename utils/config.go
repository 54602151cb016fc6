package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"k8s.io/utils/strings/slices"
)

const configName = "hadoopsh"

// ConfigDir is ~/.hadoopsh, home of the config file, the log and the
// profile database.
func ConfigDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "could not find home directory")
	}
	return filepath.Join(home, ".hadoopsh"), nil
}

func setDefaults(v *viper.Viper) {
	for name, svc := range config.DefaultServices {
		key := "services." + name
		v.SetDefault(key+".prefix", svc.Prefix)
		v.SetDefault(key+".host", svc.Host)
		v.SetDefault(key+".port", svc.Port)
		v.SetDefault(key+".user", svc.User)
		v.SetDefault(key+".password", svc.Password)
		v.SetDefault(key+".cluster", svc.Cluster)
		v.SetDefault(key+".use_sso", svc.UseSSO)
		v.SetDefault(key+".token_url", svc.TokenURL)
		v.SetDefault(key+".curl", svc.Curl)
	}
	v.SetDefault("ambari.stop_state", config.DefaultStopState)
	v.SetDefault("livy.poll_interval", config.DefaultPollInterval)
	v.SetDefault("livy.poll_timeout", "")
	v.SetDefault("livy.kind", config.DefaultLivyKind)
	v.SetDefault("log_level", "warn")
	v.SetDefault("profile_db", "")
}

// InitConfig loads the configuration. With an empty path the default file
// ~/.hadoopsh/hadoopsh.{json,yaml} is used if it exists. Every key can be
// overridden from the environment, e.g. HADOOPSH_SERVICES_AMBARI_HOST.
func InitConfig(path string) (*config.Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HADOOPSH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config file: %v. Make sure that config exists and that it's formatted correctly!", err)
		}
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName(configName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error loading config file: %v. Make sure that config exists and that it's formatted correctly!", err)
			}
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "error decoding config")
	}

	if err := isServicesValid(cfg); err != nil {
		return nil, err
	}
	fillServiceDefaults(&cfg)

	if cfg.ProfileDB == "" {
		if dir, err := ConfigDir(); err == nil {
			cfg.ProfileDB = filepath.Join(dir, "profiles.db")
		}
	}
	return &cfg, nil
}

func isServicesValid(cfg config.Config) error {
	var invalid []string
	for name := range cfg.Services {
		if !slices.Contains(config.ServiceNames, name) {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("Invalid services: %v", strings.Join(invalid, ", "))
	}
	return nil
}

// fillServiceDefaults completes partially configured services.
func fillServiceDefaults(cfg *config.Config) {
	if cfg.Services == nil {
		cfg.Services = map[string]config.Service{}
	}
	for name, def := range config.DefaultServices {
		svc := cfg.Services[name]
		if svc.Prefix == "" {
			svc.Prefix = def.Prefix
		}
		if svc.Host == "" {
			svc.Host = def.Host
		}
		if svc.Port == 0 {
			svc.Port = def.Port
		}
		if svc.Cluster == "" {
			svc.Cluster = def.Cluster
		}
		cfg.Services[name] = svc
	}
}

// CreateConfig writes a config file holding the defaults to path.
func CreateConfig(path string) error {
	cfg := config.Config{
		LogLevel: "warn",
		Services: config.DefaultServices,
		Ambari:   config.Ambari{StopState: config.DefaultStopState},
		Livy:     config.Livy{PollInterval: config.DefaultPollInterval, Kind: config.DefaultLivyKind},
	}

	b, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("err: %v, could not marshal config struct to file", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("err: %v, could not create directory for %s", err, path)
	}
	err = os.WriteFile(path, b, 0o644)
	if err != nil {
		return fmt.Errorf("err: %v, could not write file to path %s", err, path)
	}

	return err
}
