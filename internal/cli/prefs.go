package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"rbconsole/internal/widgets"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "theme", Short: "Colour theme of the console"}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the active theme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.emit(map[string]string{"theme": string(app.theme)}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, app.theme)
				return err
			})
		},
	}

	set := &cobra.Command{
		Use:       "set light|dark|plain",
		Short:     "Persist a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(widgets.ThemeLight), string(widgets.ThemeDark), string(widgets.ThemePlain)},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := widgets.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := app.store.SetTheme(cmd.Context(), string(t)); err != nil {
				return err
			}
			app.notify.Info("Theme set to " + string(t))
			return app.emit(map[string]string{"theme": string(t)}, nil)
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored theme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.store.ClearTheme(cmd.Context())
		},
	}

	cmd.AddCommand(get, set, reset)
	return cmd
}

func newDarkModeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dark-mode [on|off]",
		Short: "Show or toggle dark mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				on, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				if err := app.store.SetDarkMode(ctx, on); err != nil {
					return err
				}
			}
			on, err := app.store.DarkMode(ctx)
			if err != nil {
				return err
			}
			return app.emit(map[string]bool{"dark_mode": on}, func(w io.Writer) error {
				state := "off"
				if on {
					state = "on"
				}
				_, err := fmt.Fprintf(w, "dark mode %s\n", state)
				return err
			})
		},
	}
}

func parseSwitch(v string) (bool, error) {
	switch v {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("want on or off, got %q", v)
	}
	return b, nil
}
