package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDiagnoseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose <text>",
		Short: "Diagnose risk from free text and list remedies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.client()
			if err != nil {
				return err
			}
			resp, err := c.Diagnose(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Diagnosis: %s (confidence %.2f)\n\n", displayDiagnosis(resp.Diagnosis), resp.Confidence)
			fmt.Fprintln(out, resp.Remedies.Intro)
			for _, suggestion := range resp.Remedies.Suggestions {
				fmt.Fprintf(out, "  - %s\n", suggestion)
			}
			return nil
		},
	}
}
