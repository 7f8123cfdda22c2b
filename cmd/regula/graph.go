package main

import (
	"github.com/aretw0/regula/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export an automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the automaton. Final states are
drawn as double circles. With --dfa --trace <input>, the states visited while
reading the input are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dfa, _ := cmd.Flags().GetBool("dfa")

		spec, err := cli.LoadAutomaton(args[0])
		if err != nil {
			return err
		}

		var trace *string
		if cmd.Flags().Changed("trace") {
			t, _ := cmd.Flags().GetString("trace")
			trace = &t
		}
		return cli.Graph(cmd.OutOrStdout(), spec, dfa, trace)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("dfa", false, "Read the automaton as a DFA")
	graphCmd.Flags().String("trace", "", "Highlight the run of the DFA on this input")
}
