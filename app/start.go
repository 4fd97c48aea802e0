package app

import (
	"github.com/spf13/cobra"

	"github.com/devportfolio/devportfolio/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")
	startCmd.Flags().BoolVar(&fastShutdown, "fast-shutdown", false, "Skip the graceful checkalive phase on shutdown")

	backendCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd, backendCmd)
}

var (
	devMode      bool
	fastShutdown bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the portfolio web service",
		PreRun: func(_ *cobra.Command, _ []string) {
			if devMode {
				cfg.DevMode = true
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := daemon.New(&cfg)
			if err != nil {
				return err
			}

			d.SetFastShutDown(fastShutdown)

			return d.Start()
		},
	}

	backendCmd = &cobra.Command{
		Use:   "backend",
		Short: "Start the portfolio store backend",
		PreRun: func(_ *cobra.Command, _ []string) {
			if devMode {
				cfg.DevMode = true
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			b, err := daemon.NewBackend(&cfg)
			if err != nil {
				return err
			}

			return b.Start()
		},
	}
)
