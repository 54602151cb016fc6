package cmd

import (
	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/hadoopsh/hadoopsh/pkg/flags"
	"github.com/hadoopsh/hadoopsh/utils"
	"github.com/spf13/cobra"
)

var configFile string

// connection overrides, applied only when the flag was set
var (
	hostOverride     string
	portOverride     int
	prefixOverride   string
	userOverride     string
	passwordOverride string
	clusterOverride  string
	curlOverride     bool
	ssoOverride      bool
)

var rootCmd = &cobra.Command{
	Use:   "hadoopsh",
	Short: "Interactive shells for the REST APIs of a Hadoop cluster",
	Long: `hadoopsh wraps the REST APIs of Ambari, WebHDFS, WebHCat, Ranger, Knox,
Livy, Atlas, Cloudera Manager, the YARN resource manager and MapR.

Run "hadoopsh <service>" for an interactive shell, or
"hadoopsh <service> <command> [args...]" to run a single command.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, flags.ConfigFlag.Full, flags.ConfigFlag.Short, "", "path to a hadoopsh config file (default ~/.hadoopsh/hadoopsh.{json,yaml})")
	pf.StringVarP(&hostOverride, flags.HostFlag.Full, flags.HostFlag.Short, "", "service host")
	pf.IntVarP(&portOverride, flags.PortFlag.Full, flags.PortFlag.Short, 0, "service port")
	pf.StringVar(&prefixOverride, flags.PrefixFlag.Full, "", "url scheme, http or https")
	pf.StringVarP(&userOverride, flags.UserFlag.Full, flags.UserFlag.Short, "", "user name")
	pf.StringVarP(&passwordOverride, flags.PasswordFlag.Full, flags.PasswordFlag.Short, "", "password")
	pf.StringVarP(&clusterOverride, flags.ClusterFlag.Full, flags.ClusterFlag.Short, "", "cluster or Knox topology")
	pf.BoolVar(&curlOverride, flags.CurlFlag.Full, false, "print every request as a curl command")
	pf.BoolVar(&ssoOverride, flags.SSOFlag.Full, false, "authenticate with a Knox SSO token")
}

// loadConfig reads the config file and applies the configured log level.
func loadConfig() (*config.Config, error) {
	cfg, err := utils.InitConfig(configFile)
	if err != nil {
		return nil, err
	}
	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		logger := utils.GetLogger()
		logger.Warn().Err(err).Str("level", cfg.LogLevel).Msg("ignoring invalid log level")
	}
	return cfg, nil
}

// serviceConfig returns the settings of one service with the connection
// flags applied on top.
func serviceConfig(cmd *cobra.Command, cfg *config.Config, name string) config.Service {
	svc := cfg.Services[name]
	if name == config.NameHDFS {
		svc = utils.HDFSFromEnvironment(svc)
	}

	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}
	if changed(flags.HostFlag.Full) {
		svc.Host = hostOverride
	}
	if changed(flags.PortFlag.Full) {
		svc.Port = portOverride
	}
	if changed(flags.PrefixFlag.Full) {
		svc.Prefix = prefixOverride
	}
	if changed(flags.UserFlag.Full) {
		svc.User = userOverride
	}
	if changed(flags.PasswordFlag.Full) {
		svc.Password = passwordOverride
	}
	if changed(flags.ClusterFlag.Full) {
		svc.Cluster = clusterOverride
	}
	if changed(flags.CurlFlag.Full) {
		svc.Curl = curlOverride
	}
	if changed(flags.SSOFlag.Full) {
		svc.UseSSO = ssoOverride
	}
	return svc
}
