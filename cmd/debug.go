package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var debugCmd = &cobra.Command{
	Use:    "debug",
	Short:  "Tools for checking how hadoopsh is configured",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("run debug with one of its subcommands")
	},
}

var cfgCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration, passwords masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for name, svc := range cfg.Services {
			if svc.Password != "" {
				svc.Password = "****"
				cfg.Services[name] = svc
			}
		}
		// pretty print config for debugging to make sure it's been loaded correctly
		prettyCfg, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(prettyCfg))
		return nil
	},
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the environment variables hadoopsh reads",
	RunE: func(cmd *cobra.Command, args []string) error {
		var lines []string
		for _, kv := range os.Environ() {
			if strings.HasPrefix(kv, "HADOOPSH_") || strings.HasPrefix(kv, "HADOOP_CONF_DIR=") || strings.HasPrefix(kv, "HADOOP_HOME=") {
				if strings.Contains(kv, "PASSWORD=") {
					kv = kv[:strings.Index(kv, "=")+1] + "****"
				}
				lines = append(lines, kv)
			}
		}
		sort.Strings(lines)
		for _, l := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(cfgCmd)
	debugCmd.AddCommand(envCmd)
}
