package cli

import (
	"errors"
	"fmt"
	"strings"

	"interior-cli/internal/model"
	"interior-cli/internal/publish"
	"interior-cli/internal/session"
	"interior-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <project-id>",
		Short: "Open a project in the interactive screen",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			d := newDesktop()
			err := tui.Run(cmd.Context(), tui.Options{
				ProjectID:      id,
				Client:         app.client(),
				Opener:         d,
				Sharer:         d,
				Logger:         app.log,
				MaxUploadBytes: app.cfg.MaxUploadBytes,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Print a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := app.newSession(cmd)
			if err := load(cmd, sess, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, sess.Record())
		},
	}
}

func newUpdateCmd(app *App) *cobra.Command {
	var sets []string
	var files []string

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Change fields and replace files, then print the confirmed project",
		Long: strings.TrimSpace(`
Loads the project, applies every --set and --file, and submits them in one request.
Slot URLs are not editable with --set; replace the file with --file instead.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sets) == 0 && len(files) == 0 {
				return writeErr(cmd, errors.New("nothing to update (use --set and/or --file)"))
			}
			fields, err := parseSets(sets)
			if err != nil {
				return writeErr(cmd, err)
			}
			staged, err := parseFiles(files, app.cfg.MaxUploadBytes)
			if err != nil {
				return writeErr(cmd, err)
			}

			sess := app.newSession(cmd)
			if err := load(cmd, sess, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.BeginEdit(); err != nil {
				return writeErr(cmd, err)
			}
			for _, kv := range fields {
				if err := sess.SetField(kv[0], kv[1]); err != nil {
					return writeErr(cmd, fmt.Errorf("--set %s: %w", kv[0], err))
				}
			}
			for slot, f := range staged {
				if err := sess.ReplaceFile(slot, f); err != nil {
					return writeErr(cmd, err)
				}
			}
			// Submit reports failures on stderr through the notifier.
			if err := sess.Submit(cmd.Context()); err != nil {
				return err
			}
			return writeOut(cmd, app, sess.Record())
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment key=value (repeatable)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "Slot replacement Slot=path (repeatable)")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var to string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Write the project as a markdown brief",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := app.newSession(cmd)
			if err := load(cmd, sess, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteProject(sess.Record(), to, publish.WriteOptions{Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("exported project", zap.String("projectId", sess.ProjectID()), zap.Strings("written", res.Written))
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().StringVar(&to, "to", ".", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing brief")
	return cmd
}

func load(cmd *cobra.Command, sess *session.Session, id string) error {
	if strings.TrimSpace(id) == "" {
		return session.ErrMissingID
	}
	return loadError(sess.Load(cmd.Context(), id))
}

// parseSets splits key=value pairs, keeping their order.
func parseSets(sets []string) ([][2]string, error) {
	out := make([][2]string, 0, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, usageError{flag: "--set", value: s, want: "key=value"}
		}
		out = append(out, [2]string{k, v})
	}
	return out, nil
}

func parseFiles(files []string, maxBytes int64) (map[model.Slot]model.PendingFile, error) {
	out := make(map[model.Slot]model.PendingFile, len(files))
	for _, s := range files {
		name, path, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(path) == "" {
			return nil, usageError{flag: "--file", value: s, want: "Slot=path"}
		}
		slot, ok := model.ParseSlot(name)
		if !ok {
			return nil, unknownSlotError{name: strings.TrimSpace(name)}
		}
		f, err := model.StatFile(path, maxBytes)
		if err != nil {
			return nil, err
		}
		out[slot] = f
	}
	return out, nil
}
