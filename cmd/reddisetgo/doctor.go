package main

import (
	"context"

	"github.com/aretw0/reddisetgo/internal/cli"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check near-cli and install it when missing, without the menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		err := cli.RunDoctor(sigCtx, baseOptions(cmd))
		if code := cli.ExitCode(err, sigCtx.Signal()); code != cli.ExitOK {
			return &exitError{code: code, err: err}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
