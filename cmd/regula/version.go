package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/regula"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of regula",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "regula version %s\n", strings.TrimSpace(regula.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
