package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devportfolio/devportfolio/internal/auth"
	"github.com/devportfolio/devportfolio/internal/db"
	"github.com/devportfolio/devportfolio/internal/db/models"
)

func init() { //nolint: gochecknoinits
	totpCmd.Flags().StringVar(&totpUsername, "username", "", "Admin account, defaults to Admin.Username")
	totpCmd.Flags().BoolVar(&totpDisable, "disable", false, "Remove the second factor instead")

	adminCmd.AddCommand(totpCmd)
}

var (
	totpUsername string
	totpDisable  bool

	totpCmd = &cobra.Command{
		Use:   "totp",
		Short: "Enable or disable the TOTP second factor of a web service admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username := totpUsername
			if username == "" {
				username = cfg.Admin.Username
			}

			gdb, err := db.Open(&cfg.DB, cfg.DevMode, &models.User{})
			if err != nil {
				return err
			}

			provider := auth.NewLocalProvider(gdb)

			user, err := provider.GetUserByUsername(username)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if totpDisable {
				if err = provider.DisableTOTP(user.ID); err != nil {
					return err
				}

				fmt.Fprintf(out, "second factor disabled for %s\n", user.Username)

				return nil
			}

			key, err := provider.EnableTOTP(user.ID, cfg.Title)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "second factor enabled for %s\n", user.Username)
			fmt.Fprintf(out, "secret: %s\n", key.Secret())
			fmt.Fprintf(out, "url:    %s\n", key.URL())

			return nil
		},
	}
)
