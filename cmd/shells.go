package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/db"
	"github.com/hadoopsh/hadoopsh/pkg/config"
	"github.com/hadoopsh/hadoopsh/shell"
	"github.com/hadoopsh/hadoopsh/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// shellBuilder creates the shell of one service from its settings.
type shellBuilder func(svc config.Service, cfg *config.Config, opts shell.Options) (*shell.Shell, error)

var shellCommands = []struct {
	name  string
	short string
	build shellBuilder
}{
	{config.NameAmbari, "Ambari cluster management shell", func(svc config.Service, cfg *config.Config, opts shell.Options) (*shell.Shell, error) {
		return shell.NewAmbari(client.NewAmbari(svc, cfg.Ambari), opts), nil
	}},
	{config.NameHDFS, "WebHDFS file system shell", func(svc config.Service, _ *config.Config, opts shell.Options) (*shell.Shell, error) {
		return shell.NewHDFS(client.NewWebHDFS(svc), opts), nil
	}},
	{config.NameHCat, "WebHCat metadata shell", func(svc config.Service, _ *config.Config, opts shell.Options) (*shell.Shell, error) {
		return shell.NewHCat(client.NewWebHCat(svc), opts), nil
	}},
	{config.NameRanger, "Ranger policy shell", func(svc config.Service, _ *config.Config, opts shell.Options) (*shell.Shell, error) {
		return shell.NewRanger(client.NewRanger(svc), opts), nil
	}},
	{config.NameKnox, "Knox gateway shell", func(svc config.Service, _ *config.Config, opts shell.Options) (*shell.Shell, error) {
		return shell.NewKnox(client.NewKnox(svc), opts), nil
	}},
	{config.NameLivy, "Livy spark session shell", func(svc config.Service, cfg *config.Config, opts shell.Options) (*shell.Shell, error) {
		l, err := client.NewLivy(svc, cfg.Livy)
		if err != nil {
			return nil, err
		}
		return shell.NewLivy(l, opts), nil
	}},
	{config.NameCatalog, "Application and dataset catalog shell", func(svc config.Service, _ *config.Config, opts shell.Options) (*shell.Shell, error) {
		return shell.NewCatalog(client.NewCatalog(svc), opts), nil
	}},
	{config.NameClouderaManager, "Cloudera Manager shell", func(svc config.Service, _ *config.Config, opts shell.Options) (*shell.Shell, error) {
		return shell.NewClouderaManager(client.NewClouderaManager(svc), opts), nil
	}},
	{config.NameAtlas, "Atlas metadata shell", func(svc config.Service, _ *config.Config, opts shell.Options) (*shell.Shell, error) {
		return shell.NewAtlas(client.NewAtlas(svc), opts), nil
	}},
	{config.NameResourceManager, "YARN resource manager shell", func(svc config.Service, _ *config.Config, opts shell.Options) (*shell.Shell, error) {
		return shell.NewResourceManager(client.NewResourceManager(svc), opts), nil
	}},
	{config.NameMapR, "MapR cluster shell", func(svc config.Service, _ *config.Config, opts shell.Options) (*shell.Shell, error) {
		return shell.NewMapR(client.NewMapR(svc), opts), nil
	}},
}

func newShellCmd(name, short string, build shellBuilder) *cobra.Command {
	c := &cobra.Command{
		Use:   name + " [command] [args...]",
		Short: short,
		Long:  short + ". Without a command an interactive shell is started, type 'help' for the command list.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := utils.GetLogger()

			opts := shell.Options{Out: cmd.OutOrStdout()}
			if store, err := db.NewDB(cfg.ProfileDB); err != nil {
				logger.Warn().Err(err).Msg("profile store unavailable")
			} else {
				opts.Profiles = store
			}
			if dir, err := utils.ConfigDir(); err == nil {
				opts.HistoryPath = filepath.Join(dir, "history_"+name)
			}

			s, err := build(serviceConfig(cmd, cfg, name), cfg, opts)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := s.Endpoint.Login(ctx); err != nil {
				return errors.Wrap(err, "sso login failed")
			}

			if len(args) > 0 {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
				defer stop()
				s.RunOnce(ctx, args)
				return nil
			}
			return s.Run(ctx)
		},
	}
	// everything after the shell command belongs to it, e.g. "hdfs chmod -R"
	c.Flags().SetInterspersed(false)
	return c
}

func init() {
	for _, sc := range shellCommands {
		rootCmd.AddCommand(newShellCmd(sc.name, sc.short, sc.build))
	}
}
