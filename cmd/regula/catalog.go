package main

import (
	"fmt"

	"github.com/aretw0/regula/internal/cli"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List or show entries of the catalog directory",
	Long: `A catalog is a directory of Markdown, YAML or JSON documents, each holding a
named regex or automaton. Use --catalog or the "catalog" config key to select it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.Catalog == "" {
			return fmt.Errorf("no catalog configured (use --catalog or the catalog config key)")
		}
		eng, err := cli.NewEngine(appConfig, logger, nil)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			return cli.ListCatalog(cmd.Context(), eng.Catalog(), cmd.OutOrStdout())
		}
		entry, err := eng.Catalog().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return cli.PrintJSON(cmd.OutOrStdout(), entry)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
