package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"pushcron/internal/adapter/messagefile"
	"pushcron/internal/jobs"
)

func newMessageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Manage notification message files",
	}
	cmd.AddCommand(newMessageInitCommand(), newMessageShowCommand())
	return cmd
}

func newMessageInitCommand() *cobra.Command {
	var (
		app   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init PATH",
		Short: "Write a template message file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			if err := messagefile.Save(path, messagefile.Template(jobs.NormalizeApp(app))); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&app, "app", "APP", "credential prefix used for the default heading")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newMessageShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show PATH",
		Short: "Validate a message file and print what would be sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := messagefile.New().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			platforms := make([]string, 0, len(n.Platforms))
			for _, p := range n.Platforms {
				platforms = append(platforms, string(p))
			}
			rows := [][]string{
				{"Name", n.Name},
				{"Heading", n.Heading},
				{"Message", n.Message},
				{"URL", orNone(n.URL)},
				{"Segment", n.Segment},
				{"Image URL", orNone(n.BigPicture)},
				{"Rate button", fmt.Sprintf("%t", n.ShowRateButton)},
				{"Platforms", orNone(fmt.Sprint(platforms))},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}

func orNone(value string) string {
	if value == "" || value == "[]" {
		return "None"
	}
	return value
}
