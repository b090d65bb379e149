package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status and active backend tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.client()
			if err != nil {
				return err
			}
			status, err := c.Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			runningKind := statusWarn
			runningText := "stopped"
			if status.Running {
				runningKind = statusOK
				runningText = fmt.Sprintf("running (pid %d)", status.PID)
			}
			fmt.Fprintln(out, renderStatusLine("Daemon", runningKind, runningText, colorize))
			fmt.Fprintln(out, renderStatusLine("Analyzer", tierKind(status.Analyzer == "full"), status.Analyzer, colorize))
			fmt.Fprintln(out, renderStatusLine("Classifier", tierKind(status.Classifier == "model"), status.Classifier, colorize))
			fmt.Fprintln(out, renderStatusLine("Generator", tierKind(status.Generator != "static"), status.Generator, colorize))
			textModel := "not loaded"
			if status.TextModel {
				textModel = "loaded"
			}
			fmt.Fprintln(out, renderStatusLine("Text model", tierKind(status.TextModel), textModel, colorize))
			fmt.Fprintln(out, renderStatusLine("History", statusInfo, status.HistoryPath, colorize))

			if len(status.Dependencies) > 0 {
				fmt.Fprintln(out)
				rows := make([][]string, 0, len(status.Dependencies))
				for _, dep := range status.Dependencies {
					available := "yes"
					if !dep.Available {
						available = "no"
					}
					rows = append(rows, []string{dep.Name, dep.Command, available, dep.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Dependency", "Command", "Available", "Detail"}, rows))
			}
			return nil
		},
	}
}

func tierKind(strongest bool) statusKind {
	if strongest {
		return statusOK
	}
	return statusWarn
}
