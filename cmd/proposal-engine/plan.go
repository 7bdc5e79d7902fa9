package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/proposal-engine/internal/render"
)

var planCmd = &cobra.Command{
	Use:   "plan <generated_text_file>",
	Short: "Print the paragraph plan for generated text as YAML",
	Long: `Plan shows how generated text will be laid out: one entry per line with
its section index and whether it is set as a bold heading.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading generated text: %w", err)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(render.BuildPlan(string(data))); err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
