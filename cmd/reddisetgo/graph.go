package main

import (
	"github.com/aretw0/reddisetgo/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the demo menu as a Mermaid flowchart",
	Long: `Prints the menu and its transitions as a Mermaid diagram.
With --overlay the saved session highlights the steps it already completed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overlay, _ := cmd.Flags().GetBool("overlay")
		return cli.PrintGraph(cmd.Context(), baseOptions(cmd), overlay)
	},
}

func init() {
	graphCmd.Flags().Bool("overlay", false, "Highlight the saved session on the graph")
	rootCmd.AddCommand(graphCmd)
}
