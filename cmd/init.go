package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pod-search/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pod-search configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to point pod-search at your archive and search service, and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
