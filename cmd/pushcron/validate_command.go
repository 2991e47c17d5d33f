package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pushcron/internal/adapter/credentials"
	"pushcron/internal/adapter/messagefile"
	"pushcron/internal/jobs"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var (
		next             int
		checkCredentials bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the job catalogue and show upcoming fire times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if next < 0 {
				return fmt.Errorf("--next must be zero or positive, got %d", next)
			}
			catalogue, err := ctx.loadCatalogue()
			if err != nil {
				return err
			}
			loc, err := catalogue.Location(ctx.cfg.Timezone)
			if err != nil {
				return err
			}

			messages := messagefile.New()
			creds := credentials.NewEnv()
			now := time.Now().In(loc)

			var (
				problems []error
				rows     [][]string
			)
			for _, job := range catalogue.Jobs {
				status := "ok"
				if _, err := messages.Load(cmd.Context(), job.MessagePath); err != nil {
					status = "invalid message"
					problems = append(problems, fmt.Errorf("job %s: %w", job.Name, err))
				}
				if checkCredentials {
					if _, err := creds.Credentials(job.App); err != nil {
						status = "missing credentials"
						problems = append(problems, fmt.Errorf("job %s: %w", job.Name, err))
					}
				}

				fires, err := jobs.NextFires(job.Schedule, now, next)
				if err != nil {
					return err
				}
				rows = append(rows, []string{job.Name, job.App, job.Schedule, formatFires(fires), status})
			}
			if catalogue.Heartbeat != "" {
				fires, err := jobs.NextFires(catalogue.Heartbeat, now, next)
				if err != nil {
					return err
				}
				rows = append(rows, []string{"heartbeat", "-", catalogue.Heartbeat, formatFires(fires), "ok"})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Job", "App", "Schedule", "Next (" + loc.String() + ")", "Status"},
				rows,
				nil,
			))
			return errors.Join(problems...)
		},
	}

	cmd.Flags().IntVarP(&next, "next", "n", 3, "number of upcoming fire times to show")
	cmd.Flags().BoolVar(&checkCredentials, "check-credentials", false, "also require each app's credentials in the environment")
	return cmd
}

func formatFires(fires []time.Time) string {
	parts := make([]string, 0, len(fires))
	for _, t := range fires {
		parts = append(parts, t.Format("2006-01-02 15:04"))
	}
	return strings.Join(parts, "\n")
}
