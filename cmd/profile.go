package cmd

import (
	"fmt"
	"io"

	"github.com/hadoopsh/hadoopsh/db"
	"github.com/hadoopsh/hadoopsh/pkg/flags"
	"github.com/hadoopsh/hadoopsh/types"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// Parent profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage connection profiles saved from the shells",
	Args:  cobra.NoArgs,
}

var listProfileCmd = &cobra.Command{
	Use:     "list",
	Short:   "List saved profiles",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := cmd.Flags().GetString(flags.ServiceFlag.Full)
		if err != nil {
			return fmt.Errorf("failed to get service flag: %w", err)
		}

		store, err := openProfiles()
		if err != nil {
			return err
		}
		profiles, err := store.ListProfiles(service)
		if err != nil {
			return err
		}

		if len(profiles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No profiles to show")
			return nil
		}
		renderProfiles(cmd.OutOrStdout(), profiles)
		return nil
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete <service> <name>",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openProfiles()
		if err != nil {
			return err
		}
		if err := store.DeleteProfile(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile '%s' of %s\n", args[1], args[0])
		return nil
	},
}

func openProfiles() (*db.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return db.NewDB(cfg.ProfileDB)
}

func renderProfiles(w io.Writer, profiles []types.Profile) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Service", "Name", "URL", "User", "Cluster", "ID"})
	table.SetAutoWrapText(false)
	for _, p := range profiles {
		table.Append([]string{p.Service, p.Name, p.BaseURL(), p.User, p.Cluster, p.ProfileID})
	}
	table.Render()
	fmt.Fprintf(w, "\n%d profiles found\n", len(profiles))
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(listProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)

	listProfileCmd.Flags().StringP(flags.ServiceFlag.Full, flags.ServiceFlag.Short, "", "only show profiles of this service")
}
