package cmd

import (
	"os"

	"github.com/apkgrab/apkgrab/pkg/config"
	"github.com/spf13/cobra"
)

var (
	flagTempFolder string

	// DevCfg holds the resolved developer configuration, available to all
	// subcommands after PersistentPreRunE completes.
	DevCfg *config.DevConfig
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "apkgrab",
		Short: "APK retrieval tool",
		Long:  "apkgrab fetches Android application packages from pluggable download sources into a local workspace.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDevConfig(flagTempFolder)
			if err != nil {
				return err
			}
			DevCfg = cfg
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagTempFolder, "temp-folder", "", "download workspace directory (default \"apks\")")

	root.AddCommand(newInitCmd())
	root.AddCommand(newFetchCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
