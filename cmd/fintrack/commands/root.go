package commands

import (
	"github.com/spf13/cobra"

	"fintrack/internal/app"
)

var (
	dataDir    string
	configPath string
	retention  int
	verbose    bool

	appCtx *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:           "fintrack",
		Short:         "Daily finance ledger with encrypted persistence and backups",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			} else if cfg.DataDir == "" {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("retention") {
				cfg.Retention = retention
			}
			cfg.Verbose = verbose

			appCtx, err = app.Initialize(cfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx != nil {
				return appCtx.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "data directory")
	root.PersistentFlags().StringVar(&configPath, "config", "fintrack.toml", "config file (TOML, optional)")
	root.PersistentFlags().IntVar(&retention, "retention", 20, "backup records kept per category")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		addCmd(), listCmd(), backupCmd(), reconcileCmd(),
		decryptCmd(), restoreCmd(), exportCmd(),
	)
	return root.Execute()
}
