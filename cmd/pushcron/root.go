// Command pushcron sends scheduled OneSignal push notifications.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pushcron/internal/config"
	"pushcron/internal/jobs"
)

type commandContext struct {
	v         *viper.Viper
	cfg       *config.Config
	catalogue *jobs.Catalogue
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "pushcron",
		Short:         "Send scheduled OneSignal push notifications",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(ctx.v)
			if err != nil {
				return err
			}
			ctx.cfg = cfg
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("jobs", "", "path to the job catalogue (env PUSHCRON_JOBS_FILE, default jobs.yaml)")
	flags.String("env-file", "", "dotenv file merged into the environment (default .env)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: json or text")
	flags.String("history-db", "", "SQLite run history path (default pushcron.db)")
	if err := config.BindFlags(ctx.v, flags); err != nil {
		panic(err)
	}

	cmd.AddCommand(
		newSendCommand(ctx),
		newRunCommand(ctx),
		newValidateCommand(ctx),
		newHeartbeatCommand(ctx),
		newHistoryCommand(ctx),
		newMessageCommand(),
	)
	return cmd
}

func (c *commandContext) loadCatalogue() (*jobs.Catalogue, error) {
	if c.catalogue != nil {
		return c.catalogue, nil
	}
	catalogue, err := jobs.Load(c.cfg.JobsFile)
	if err != nil {
		return nil, err
	}
	c.catalogue = catalogue
	return catalogue, nil
}
