// Package app implements the main application commands.
package app

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/logger"
)

var (
	configPath string // directory holding main.toml
	envFile    string

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "devportfolio",
		Short: "devportfolio serves and edits a developer portfolio",
		Long: `devportfolio serves a developer portfolio site API, stores the portfolio
in a backend database and edits it from the command line.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory of main.toml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
}

// loadConfig loads the dotenv file, reads the config and sets up logging.
func loadConfig() error {
	// a missing .env is fine, the environment may already be set
	if err := godotenv.Load(envFile); err != nil {
		log.Debug().Err(err).Str("file", envFile).Msg("no dotenv file loaded")
	}

	c, err := config.ReadConfig(configPath)
	if err != nil {
		return err
	}

	cfg = c

	return logger.Init(cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("")
	}

	return err
}
