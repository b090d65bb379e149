package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze media for emotional state and risk",
	}
	analyzeCmd.AddCommand(newAnalyzeMediaCommand(ctx, "image"))
	analyzeCmd.AddCommand(newAnalyzeMediaCommand(ctx, "video"))
	return analyzeCmd
}

func newAnalyzeMediaCommand(ctx *commandContext, kind string) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <path>", kind),
		Short: fmt.Sprintf("Upload and analyze a %s file", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.client()
			if err != nil {
				return err
			}
			resp, err := c.Analyze(cmd.Context(), kind, args[0])
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("analysis failed: %s", resp.Error)
			}

			out := cmd.OutOrStdout()
			result := resp.AnalysisResult
			if result != nil {
				labels := make([]string, 0, len(result.Emotions))
				for label := range result.Emotions {
					labels = append(labels, label)
				}
				sort.Strings(labels)
				rows := make([][]string, 0, len(labels))
				for _, label := range labels {
					rows = append(rows, []string{label, fmt.Sprintf("%.3f", result.Emotions[label])})
				}
				fmt.Fprintln(out, renderTable([]string{"Emotion", "Weight"}, rows, 2))
				fmt.Fprintf(out, "Diagnosis: %s (confidence %.2f)\n", displayDiagnosis(result.Diagnosis), result.Confidence)
			}
			if resp.Advice != "" {
				fmt.Fprintf(out, "\n%s\n", resp.Advice)
			}
			return nil
		},
	}
}
