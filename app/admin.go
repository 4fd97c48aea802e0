package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/devportfolio/devportfolio/internal/db/kv"
	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/portfolio/admin"
	"github.com/devportfolio/devportfolio/internal/portfolio/cache"
	"github.com/devportfolio/devportfolio/internal/portfolio/loader"
	"github.com/devportfolio/devportfolio/internal/portfolio/remote"
)

func init() { //nolint: gochecknoinits
	adminCmd.PersistentFlags().StringVar(&loginCode, "code", "", "TOTP code for the admin login")

	pullCmd.Flags().BoolVar(&pullJSON, "json", false, "Print the snapshot as JSON")
	importCmd.Flags().BoolVar(&importNoSave, "no-save", false, "Only update the local cache")

	adminCmd.AddCommand(pullCmd, exportCmd, importCmd, saveCmd)
	rootCmd.AddCommand(adminCmd)
}

var (
	loginCode    string
	pullJSON     bool
	importNoSave bool

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Edit the portfolio through the web service",
	}

	pullCmd = &cobra.Command{
		Use:   "pull",
		Short: "Load the portfolio from the web service into the local cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd, func(w *workspace) error {
				return w.pull(cmd.OutOrStdout(), pullJSON)
			})
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export [file]",
		Short: "Write the portfolio as an export document, to stdout without a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(w *workspace) error {
				if len(args) == 0 {
					return w.editor.Export(cmd.OutOrStdout())
				}

				f, err := os.Create(args[0])
				if err != nil {
					return err
				}

				if err = w.editor.Export(f); err != nil {
					_ = f.Close()
					return err
				}

				return f.Close()
			})
		},
	}

	importCmd = &cobra.Command{
		Use:   "import <file>",
		Short: "Import an export document and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return withWorkspace(cmd, func(w *workspace) error {
				n, err := w.editor.Import(f)
				printNotice(cmd.OutOrStdout(), n)

				if err != nil {
					return err
				}

				if importNoSave {
					return w.cache.WriteSnapshot(w.editor.Snapshot())
				}

				return w.save(cmd)
			})
		},
	}

	saveCmd = &cobra.Command{
		Use:   "save",
		Short: "Push the loaded portfolio to the web service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd, func(w *workspace) error {
				return w.save(cmd)
			})
		},
	}
)

// workspace is one admin session: the local cache, the loader that filled
// it and the editor over the loaded snapshot.
type workspace struct {
	cache  *cache.Cache
	loader *loader.Loader
	editor *admin.Editor
}

// withWorkspace opens the local cache, logs in, runs one load cycle and
// hands the result to fn.
func withWorkspace(cmd *cobra.Command, fn func(w *workspace) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	storage, err := kv.Open(&cfg.Client.Cache, cfg.DevMode)
	if err != nil {
		return err
	}
	defer closeStorage(storage)

	c, err := cache.New(storage)
	if err != nil {
		return err
	}

	baseURL := cfg.Client.URL
	if baseURL == "" {
		baseURL = cfg.Webserver.URL
	}

	rc, err := remote.New(baseURL, cfg.Client.Timeout)
	if err != nil {
		return err
	}

	if cfg.Client.Username != "" {
		if err := rc.Login(ctx, cfg.Client.Username, cfg.Client.Password, loginCode); err != nil {
			log.Warn().Err(err).Str("username", cfg.Client.Username).Msg("admin login failed")
		}
	}

	l := loader.New(c, rc)

	st := l.Load(ctx)

	initial := portfolio.Default()
	if st.Snapshot != nil {
		initial = *st.Snapshot
	}

	return fn(&workspace{
		cache:  c,
		loader: l,
		editor: admin.New(initial, c, rc, admin.WithPublisher(l)),
	})
}

// pull stores the loaded snapshot, skill ids included, in the local cache
// and prints it.
func (w *workspace) pull(out io.Writer, asJSON bool) error {
	st := w.loader.State()
	s := w.editor.Snapshot()

	if err := w.cache.WriteSnapshot(s); err != nil {
		log.Warn().Err(err).Msg("failed to write pulled snapshot to cache")
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(s)
	}

	if st.Err != nil {
		fmt.Fprintf(out, "remote unavailable: %v\n", st.Err)
	}

	fmt.Fprintf(out, "phase:    %s\n", st.Phase)
	fmt.Fprintf(out, "name:     %s\n", s.PersonalInfo.Name)
	fmt.Fprintf(out, "projects: %d\n", len(s.Projects))
	fmt.Fprintf(out, "skills:   %d\n", len(s.Skills))

	return nil
}

// save pushes the edited snapshot and reports the outcome.
func (w *workspace) save(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := w.editor.SaveAll(ctx)
	printNotice(cmd.OutOrStdout(), out.Notice)

	return out.Err
}

func printNotice(w io.Writer, n admin.Notice) {
	fmt.Fprintf(w, "%s %s\n", n.Title, n.Description)
}

func closeStorage(s fiber.Storage) {
	if err := s.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close cache storage")
	}
}
