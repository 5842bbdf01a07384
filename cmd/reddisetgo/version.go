package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/reddisetgo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of reddisetgo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "reddisetgo version %s\n", strings.TrimSpace(reddisetgo.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
