package main

import (
	"github.com/aretw0/reddisetgo/internal/cli"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage saved session snapshots",
	Long:  `List, show and remove the session snapshots written after each demo.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListSessions(cmd.Context(), baseOptions(cmd))
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ShowSession(cmd.Context(), baseOptions(cmd), args[0])
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <name>...",
	Short: "Remove one or more saved sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RemoveSessions(cmd.Context(), baseOptions(cmd), args)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}
