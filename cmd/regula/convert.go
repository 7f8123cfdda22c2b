package main

import (
	"github.com/aretw0/regula/internal/cli"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Run a conversion and print the result with its derivation steps",
}

func newConversionCmd(use, short string, kind domain.ConversionKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, _ := cmd.Flags().GetString("entry")
			format, _ := cmd.Flags().GetString("format")
			steps, _ := cmd.Flags().GetBool("steps")
			if entry == "" && len(args) == 0 {
				return cmd.Usage()
			}

			opts := cli.ConvertOptions{Kind: kind, Entry: entry, Format: format, Steps: steps}
			if len(args) > 0 {
				opts.Source = args[0]
			}

			eng, err := cli.NewEngine(appConfig, logger, nil)
			if err != nil {
				return err
			}
			return cli.Convert(cmd.Context(), eng, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().String("entry", "", "Read the input from this catalog entry")
	cmd.Flags().StringP("format", "f", cli.FormatAuto, "Output format: auto, json, markdown or pretty")
	cmd.Flags().Bool("steps", true, "Include the derivation steps")
	return cmd
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.AddCommand(
		newConversionCmd("regex-to-dfa <regex>", "Build a DFA from a regular expression", domain.ConversionRegexToDFA),
		newConversionCmd("nfa-to-dfa <file>", "Determinize an NFA by subset construction", domain.ConversionNFAToDFA),
		newConversionCmd("dfa-to-regex <file>", "Derive a regular expression from a DFA", domain.ConversionDFAToRegex),
		newConversionCmd("nfa-to-regex <file>", "Derive a regular expression from an NFA", domain.ConversionNFAToRegex),
	)
}
