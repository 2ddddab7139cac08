package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"interior-cli/internal/api"
	"interior-cli/internal/config"
	"interior-cli/internal/format"
	"interior-cli/internal/logging"
	"interior-cli/internal/platform"
	"interior-cli/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	BaseURL    string
	PrettyJSON bool
	Format     string

	cfg *config.Config
	log *zap.Logger
}

// newDesktop is swapped in tests so view/share never reach the real desktop.
var newDesktop = platform.New

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "interior",
		Short:        "View and edit interior design projects",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open a project in the interactive screen
  interior 65a1f0c2e4b0a1b2c3d4e5f6

  # Print a project
  interior show 65a1f0c2e4b0a1b2c3d4e5f6 --format text

  # Change fields and replace a floor plan
  interior update 65a1f0c2e4b0a1b2c3d4e5f6 --set title="Villa A" --file Floor_Plan_1=./plan.png
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return writeErr(cmd, err)
		}
		if v := strings.TrimRight(strings.TrimSpace(app.BaseURL), "/"); v != "" {
			cfg.BaseURL = v
			if err := cfg.Validate(); err != nil {
				return writeErr(cmd, err)
			}
		}
		switch app.Format {
		case "", "json", "text":
		default:
			return writeErr(cmd, fmt.Errorf("unknown format: %s", app.Format))
		}
		log, err := logging.New(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return writeErr(cmd, fmt.Errorf("log file: %w", err))
		}
		app.cfg = cfg
		app.log = log.Named("cli")
		app.log.Debug("command", zap.String("path", cmd.CommandPath()), zap.Strings("args", args))
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.log != nil {
			_ = app.log.Sync()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", "", "API base URL including /api (default: $INTERIOR_API_BASE or the hosted API)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("INTERIOR_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newUpdateCmd(app))
	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newShareCmd(app))
	cmd.AddCommand(newSlotsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) client() *api.Client {
	return api.New(app.cfg.BaseURL,
		api.WithTimeout(app.cfg.Timeout),
		api.WithLogger(app.log.Named("api")),
	)
}

// newSession builds a session whose notifications go to the command's stderr.
func (app *App) newSession(cmd *cobra.Command) *session.Session {
	d := newDesktop()
	return session.New(app.client(),
		session.WithNotifier(stderrNotifier{w: cmd.ErrOrStderr()}),
		session.WithOpener(d),
		session.WithSharer(d),
		session.WithLogger(app.log.Named("session")),
	)
}

type stderrNotifier struct{ w io.Writer }

func (n stderrNotifier) Notify(sev session.Severity, msg string) {
	fmt.Fprintf(n.w, "%s: %s\n", sev, msg)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
