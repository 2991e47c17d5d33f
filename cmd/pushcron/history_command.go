package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pushcron/internal/di"
	"pushcron/internal/domain/model"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent delivery runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.cfg.HistoryDB == "" {
				return errors.New("run history is disabled (empty PUSHCRON_HISTORY_DB)")
			}
			store, cleanup, err := di.InitializeHistory(ctx.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Job", "Status", "Notification", "Recipients", "Duration", "Error"},
				runRows(runs),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum number of runs to show")
	return cmd
}

func runRows(runs []model.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Job,
			string(run.Status),
			run.NotificationID,
			strconv.Itoa(run.Recipients),
			run.Duration.String(),
			truncateCell(run.Error, 60),
		})
	}
	return rows
}

func truncateCell(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
