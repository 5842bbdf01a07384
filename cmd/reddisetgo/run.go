package main

import (
	"context"

	"github.com/aretw0/reddisetgo/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive demo menu",
	Long: `Shows the chain menu and runs the selected demos until you pick Quit or input ends.
Exits 1 after Quit, 130 when interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions(cmd)
		opts.Resume, _ = cmd.Flags().GetBool("resume")
		opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		opts.NoBanner, _ = cmd.Flags().GetBool("no-banner")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		err := cli.RunSession(sigCtx, opts)
		if code := cli.ExitCode(err, sigCtx.Signal()); code != cli.ExitOK {
			return &exitError{code: code, err: err}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("resume", false, "Restore the account from the saved session snapshot")
	runCmd.Flags().String("metrics-addr", "", "Serve /metrics, /healthz and /session on this address")
	runCmd.Flags().Bool("no-banner", false, "Do not print the banner")

	// 'run' is the default when no command is given.
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
	rootCmd.Args = runCmd.Args
	rootCmd.RunE = runCmd.RunE
}
