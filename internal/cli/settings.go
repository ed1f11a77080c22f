package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"rbconsole/internal/console"
	"rbconsole/internal/models"
	"rbconsole/internal/widgets"
)

func newLicenseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "license", Short: "Show or install the product license"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the installed license",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lic, err := console.NewSettings(app.client, app.deps()).License(cmd.Context())
			if err != nil {
				return err
			}
			return app.emit(lic, func(w io.Writer) error { return renderLicense(w, lic) })
		},
	}

	upload := &cobra.Command{
		Use:   "upload FILE",
		Short: "Install a license file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, closeFile, err := openFile(args[0])
			if err != nil {
				return err
			}
			defer closeFile()
			lic, err := console.NewSettings(app.client, app.deps()).UploadLicense(cmd.Context(), f)
			if err != nil {
				return err
			}
			return app.emit(lic, func(w io.Writer) error { return renderLicense(w, lic) })
		},
	}

	cmd.AddCommand(show, upload)
	return cmd
}

func renderLicense(w io.Writer, lic models.License) error {
	valid := "no"
	if lic.Valid {
		valid = "yes"
	}
	return widgets.Drawer(w, "License", []widgets.Field{
		{Key: "Org", Value: lic.Org},
		{Key: "Edition", Value: lic.Edition},
		{Key: "Expiry", Value: lic.Expiry},
		{Key: "Seats", Value: fmt.Sprint(lic.Seats)},
		{Key: "Features", Value: strings.Join(lic.Features, ", ")},
		{Key: "Valid", Value: valid},
	})
}

func newRulePacksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "rulepacks", Short: "Rule pack versions, upload and rollback"}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current and available versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := console.NewSettings(app.client, app.deps()).RulePacks(cmd.Context())
			if err != nil {
				return err
			}
			return app.emit(st, func(w io.Writer) error { return renderRulePacks(w, st) })
		},
	}

	var apply bool
	upload := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a rule pack archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, closeFile, err := openFile(args[0])
			if err != nil {
				return err
			}
			defer closeFile()
			page := console.NewSettings(app.client, app.deps())
			ch, err := page.UploadRulePack(cmd.Context(), f, apply)
			if err != nil {
				return err
			}
			return app.emit(ch, func(w io.Writer) error { return renderSettings(w, page) })
		},
	}
	upload.Flags().BoolVar(&apply, "apply", false, "make the uploaded pack current")

	rollback := &cobra.Command{
		Use:   "rollback VERSION",
		Short: "Switch back to an available version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := console.NewSettings(app.client, app.deps())
			ch, err := page.Rollback(cmd.Context(), args[0])
			if err != nil {
				return inline(err)
			}
			return app.emit(ch, func(w io.Writer) error { return renderSettings(w, page) })
		},
	}

	cmd.AddCommand(status, upload, rollback)
	return cmd
}

func renderSettings(w io.Writer, page *console.SettingsController) error {
	v, err := page.View()
	if err != nil {
		return err
	}
	if v.RulePack == nil {
		return nil
	}
	return renderRulePacks(w, *v.RulePack)
}

func renderRulePacks(w io.Writer, st models.RulePackStatus) error {
	current := st.Current
	if current == "" {
		current = "(none)"
	}
	fmt.Fprintf(w, "Current: %s\n", current)
	if len(st.Available) == 0 {
		_, err := fmt.Fprintln(w, "No versions available for rollback.")
		return err
	}
	_, err := fmt.Fprintf(w, "Available: %s\n", strings.Join(st.Available, ", "))
	return err
}
