package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proposal-engine/internal/naming"
	"github.com/pdiddy/proposal-engine/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <generated_text_file>",
	Short: "Render previously generated proposal text to PDF",
	Long: `Render lays out text that was already generated (for example saved from a
previous run or written by hand) without calling the model. The output name is
derived from the text's keywords unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading generated text: %w", err)
		}
		content := string(data)

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = naming.OutputPath(cfg.Output.Dir, content)
		}

		if err := render.New(cfg.Render, logger).Render(content, out); err != nil {
			return fmt.Errorf("rendering PDF: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(
			fmt.Sprintf("Detailed proposal has been saved to '%s'", out)))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output PDF path (default: derived from keywords in --output-dir)")

	rootCmd.AddCommand(renderCmd)
}
