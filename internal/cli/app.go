// Package cli wires the rbconsole command tree: it loads the profile, opens
// the state store, builds the API client and hands each page controller the
// shared session and notifier.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/console"
	"rbconsole/internal/platform/config"
	"rbconsole/internal/platform/logger"
	"rbconsole/internal/presets"
	"rbconsole/internal/storage"
	"rbconsole/internal/widgets"
)

type globalFlags struct {
	api        string
	configPath string
	storage    string
	debug      bool
	output     string
}

// App holds what every command needs once the persistent pre-run has
// resolved the profile.
type App struct {
	flags  globalFlags
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	profile *config.Profile
	logger  *slog.Logger
	store   *storage.Store
	client  *apiclient.Client
	session *console.Session
	theme   widgets.Theme
	format  widgets.Format
	notices *console.Recorder
	notify  console.Notifier
}

// NewRootCmd builds the command tree writing to the given streams.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	app := &App{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "rbconsole",
		Short:         "Terminal console for the compliance API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.close()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&app.flags.api, "api", "", "compliance API base URL (overrides api_url)")
	pf.StringVar(&app.flags.configPath, "config", "", "profile path (default ~/.rbconsole/config.yaml)")
	pf.StringVar(&app.flags.storage, "storage", "", "state storage: file, memory, redis or postgres")
	pf.BoolVar(&app.flags.debug, "debug", false, "enable debug logging")
	pf.StringVarP(&app.flags.output, "output", "o", "table", "output format: table or json")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newIngestCmd(app),
		newAssetsCmd(app),
		newResultsCmd(app),
		newPresetsCmd(app),
		newComplianceCmd(app),
		newControlsCmd(app),
		newEvaluateCmd(app),
		newExceptionsCmd(app),
		newVendorsCmd(app),
		newLicenseCmd(app),
		newRulePacksCmd(app),
		newDashboardCmd(app),
		newThemeCmd(app),
		newDarkModeCmd(app),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, console.ErrStale) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func (a *App) setup(ctx context.Context) error {
	path := a.flags.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultProfilePath(); err != nil {
			return fmt.Errorf("resolve profile path: %w", err)
		}
	}
	profile, err := config.LoadProfile(path)
	if err != nil {
		return err
	}
	if a.flags.api != "" {
		profile.APIURL = a.flags.api
	}
	if a.flags.storage != "" {
		profile.Storage = a.flags.storage
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("profile %s: %w", path, err)
	}
	a.profile = profile

	level := "warn"
	if a.flags.debug {
		level = "debug"
	}
	a.logger = logger.NewWithWriter(a.stderr, level, "text")

	if a.format, err = widgets.ParseFormat(a.flags.output); err != nil {
		return err
	}

	if a.store, err = storage.Open(ctx, profile, storage.WithLogger(a.logger)); err != nil {
		return fmt.Errorf("open %s storage: %w", profile.Storage, err)
	}
	a.theme = a.resolveTheme(ctx)

	if a.format == widgets.FormatJSON {
		a.notices = &console.Recorder{}
		a.notify = a.notices
	} else {
		a.notify = widgets.NewToaster(a.stderr, a.theme)
	}

	a.session = console.NewSession(func(context.Context) {
		fmt.Fprintln(a.stderr, "Session expired. Run `rbconsole login` to sign in again.")
	}, a.logger)

	a.client = apiclient.New(profile.APIURL,
		apiclient.WithTokenStore(a.store),
		apiclient.WithOnUnauthorized(a.session.Unauthorized),
		apiclient.WithTimeout(profile.Timeout),
		apiclient.WithLogger(a.logger),
	)
	a.logger.DebugContext(ctx, "console ready", "api_url", profile.APIURL, "storage", profile.Storage)
	return nil
}

// resolveTheme prefers the stored theme, then the profile. Dark mode on
// top of the light theme switches to dark.
func (a *App) resolveTheme(ctx context.Context) widgets.Theme {
	name, err := a.store.Theme(ctx)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to read theme", "error", err)
	}
	if name == "" {
		name = a.profile.Theme
	}
	theme, err := widgets.ParseTheme(name)
	if err != nil {
		a.logger.WarnContext(ctx, "ignoring stored theme", "error", err)
		theme = widgets.ThemeLight
	}
	if dark, err := a.store.DarkMode(ctx); err == nil && dark && theme == widgets.ThemeLight {
		theme = widgets.ThemeDark
	}
	return theme
}

func (a *App) close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *App) deps() console.Deps {
	return console.Deps{Session: a.session, Notifier: a.notify, Logger: a.logger}
}

func (a *App) presetService() *presets.Service {
	return presets.New(a.store, presets.WithLogger(a.logger))
}

// emit writes v as JSON in JSON mode, or calls table otherwise.
func (a *App) emit(v any, table func(w io.Writer) error) error {
	if a.format == widgets.FormatJSON {
		out := struct {
			Data    any      `json:"data"`
			Notices []string `json:"notices,omitempty"`
		}{Data: v}
		if a.notices != nil {
			out.Notices = a.notices.Messages()
		}
		return widgets.JSON(a.stdout, out)
	}
	if table == nil {
		return nil
	}
	return table(a.stdout)
}
