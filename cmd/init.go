package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hadoopsh/hadoopsh/utils"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file holding the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFile
		if path == "" {
			dir, err := utils.ConfigDir()
			if err != nil {
				return err
			}
			path = filepath.Join(dir, "hadoopsh.json")
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file %s already exists, use --force to overwrite it", path)
		}
		if err := utils.CreateConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
}
