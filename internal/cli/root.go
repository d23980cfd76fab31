package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "analyticsctl",
	Short: "Operate the wellness analytics service from the command line",
	Long: `analyticsctl computes wellness metrics, inspects the report audit log
and mints development tokens, using the same configuration as the API server.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
