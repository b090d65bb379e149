package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Send a message to the supportive chat endpoint",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.client()
			if err != nil {
				return err
			}
			resp, err := c.Chat(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Reply)
			if resp.Fallback {
				fmt.Fprintln(out, "(rule-based reply; generation backend unavailable)")
			}
			return nil
		},
	}
}
