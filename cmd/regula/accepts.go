package main

import (
	"github.com/aretw0/regula/internal/cli"
	"github.com/spf13/cobra"
)

var acceptsCmd = &cobra.Command{
	Use:   "accepts <file> <input>",
	Short: "Check whether an automaton accepts an input string",
	Long:  `Reads the input one symbol per character. Exits non-zero when the input is rejected.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dfa, _ := cmd.Flags().GetBool("dfa")

		spec, err := cli.LoadAutomaton(args[0])
		if err != nil {
			return err
		}
		eng, err := cli.NewEngine(appConfig, logger, nil)
		if err != nil {
			return err
		}
		return cli.Accepts(cmd.Context(), eng, cmd.OutOrStdout(), spec, dfa, args[1])
	},
}

func init() {
	rootCmd.AddCommand(acceptsCmd)
	acceptsCmd.Flags().Bool("dfa", false, "Read the automaton as a DFA")
}
