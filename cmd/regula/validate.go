package main

import (
	"github.com/aretw0/regula/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an automaton definition for structural problems",
	Long: `Reads an automaton from a YAML or JSON file ("-" for stdin) and reports
missing states, symbols outside the alphabet and, with --dfa, nondeterminism.`,
	Args: cobra.ExactArgs(1),
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
		return cli.Validate(eng, cmd.OutOrStdout(), spec, dfa)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("dfa", false, "Validate as a DFA")
}
