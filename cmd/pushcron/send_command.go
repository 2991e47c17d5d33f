package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pushcron/internal/di"
	"pushcron/internal/domain/model"
)

func newSendCommand(ctx *commandContext) *cobra.Command {
	var (
		jobName string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a job's notification once and exit non-zero on failure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (jobName == "") == !all {
				return errors.New("specify exactly one of --job or --all")
			}

			catalogue, err := ctx.loadCatalogue()
			if err != nil {
				return err
			}

			selected := catalogue.Jobs
			if !all {
				job, err := catalogue.Find(jobName)
				if err != nil {
					return err
				}
				selected = []model.Job{job}
			}

			delivery, cleanup, err := di.InitializeDelivery(ctx.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			var errs []error
			for _, job := range selected {
				run, err := delivery.Deliver(cmd.Context(), job)
				if err != nil {
					fmt.Fprintf(out, "%s: failed: %v\n", job.Name, err)
					errs = append(errs, fmt.Errorf("job %s: %w", job.Name, err))
					continue
				}
				fmt.Fprintf(out, "%s: sent notification %s (%d recipients)\n", job.Name, run.NotificationID, run.Recipients)
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringVarP(&jobName, "job", "j", "", "name of the job to send")
	cmd.Flags().BoolVar(&all, "all", false, "send every job in the catalogue")
	return cmd
}
