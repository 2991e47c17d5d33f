package main

import (
	"github.com/spf13/cobra"

	"pushcron/internal/di"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the in-process scheduler until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogue, err := ctx.loadCatalogue()
			if err != nil {
				return err
			}

			application, cleanup, err := di.InitializeApp(ctx.cfg, catalogue)
			if err != nil {
				return err
			}
			defer cleanup()

			return application.Run(cmd.Context())
		},
	}

	cmd.Flags().Bool("run-now", false, "send every job once at startup")
	cmd.Flags().String("listen", "", "address for the health API, e.g. :8080 (env PUSHCRON_LISTEN_ADDR)")
	_ = ctx.v.BindPFlag("run_now", cmd.Flags().Lookup("run-now"))
	_ = ctx.v.BindPFlag("listen_addr", cmd.Flags().Lookup("listen"))
	return cmd
}
