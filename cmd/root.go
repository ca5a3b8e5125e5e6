// Package cmd implements the pagesmoke command line interface.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var shutdownSignals = []os.Signal{os.Interrupt}

var rootCmd = &cobra.Command{
	Use:   "pagesmoke",
	Short: "Browser smoke tests for the agile board application",
	Long: `pagesmoke drives a browser through the agile board application's pages and checks that each one renders.

Configuration is read from the environment. A .env file in the working directory is loaded first when present.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(os.Stderr, "failed to load .env:", err)
			os.Exit(1)
		}
	},
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
