package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pushcron/internal/di"
)

func newHeartbeatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat",
		Short: "Increment the keep-alive counter file and print its value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			heartbeat, err := di.InitializeHeartbeat(ctx.cfg)
			if err != nil {
				return err
			}
			value, err := heartbeat.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}
