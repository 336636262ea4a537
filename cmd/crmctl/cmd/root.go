// Package cmd holds the crmctl operator commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "Operator tooling for the waste CRM",
	Long: `crmctl runs maintenance tasks against the waste CRM.

Examples:
  crmctl migrate
  crmctl quote structure.json
  echo '{"flatRate": 450}' | crmctl quote -
  crmctl token --role ADMIN`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(tokenCmd)
}
