package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docbrowser/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docbrowser configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to point docbrowser at a documents API and writes a .docbrowser.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
