package main

import (
	"fmt"
	"os"

	"github.com/aretw0/reddisetgo/internal/cli"
	"github.com/aretw0/reddisetgo/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reddisetgo",
	Short: "reddisetgo demos blockchain command line tools",
	Long: `reddisetgo walks you through near-cli on the NEAR test network:
it checks the tool, installs it when missing, logs a test account in and lists its keys.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries the exit status decided by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	code := cli.ExitFailure
	if ee, ok := err.(*exitError); ok {
		code = ee.code
		err = ee.err
	}
	if err != nil && code == cli.ExitFailure {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(code)
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (missing file means defaults)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().String("store", "", "Session store: memory, file or redis (overrides store.kind)")
	rootCmd.PersistentFlags().String("session", "", "Session snapshot name (overrides store.session)")
}

// baseOptions reads the persistent flags.
func baseOptions(cmd *cobra.Command) cli.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	store, _ := cmd.Flags().GetString("store")
	session, _ := cmd.Flags().GetString("session")
	return cli.RunOptions{
		ConfigPath: configPath,
		Debug:      debug,
		Store:      store,
		Session:    session,
	}
}
