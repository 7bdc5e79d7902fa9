package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proposal-engine/internal/extract"
	"github.com/pdiddy/proposal-engine/internal/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <client_request_file>",
	Short: "Print the prompt that would be sent to the model",
	Long: `Prompt extracts the client request and prints the full generation prompt
without calling the model. Useful for trying the prompt against other tools.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		text, err := extract.New(logger).Extract(args[0])
		if err != nil {
			return fmt.Errorf("reading client request: %w", err)
		}
		p, err := prompt.Build(text)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), p)
		return err
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
