package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/console"
	"rbconsole/internal/models"
	"rbconsole/internal/presets"
	"rbconsole/internal/widgets"
)

func (a *App) resultsPage() *console.ResultsController {
	return console.NewResults(a.client, a.presetService(), a.deps())
}

func newResultsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "results", Short: "Browse, inspect and export evaluation results"}

	var lf listFlags
	var preset string
	list := &cobra.Command{
		Use:   "list",
		Short: "List results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page := app.resultsPage()
			ctx := cmd.Context()
			var err error
			if preset != "" {
				err = page.ApplyPresetOver(ctx, preset, lf.filter)
			} else {
				err = page.Show(ctx, lf.filter, lf.page)
			}
			if err != nil {
				return err
			}
			return app.renderResults(page)
		},
	}
	lf.bind(list, "status", "severity", "cloud", "framework", "search", "env")
	list.Flags().StringVar(&preset, "preset", "", "apply a saved preset on top of the flags")

	show := &cobra.Command{
		Use:   "show CONTROL_ID:ASSET_ID",
		Short: "Show one result with evidence and fix guidance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.Contains(args[0], ":") {
				return fmt.Errorf("result id must be CONTROL_ID:ASSET_ID")
			}
			page := app.resultsPage()
			detail, err := page.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer page.Close()
			return app.emit(detail, func(w io.Writer) error { return renderResultDetail(w, app.theme, detail) })
		},
	}

	var ef listFlags
	var format, out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export results matching the filters as CSV or JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var buf bytes.Buffer
			dl, err := app.resultsPage().ExportFilter(cmd.Context(), ef.filter, strings.ToLower(format), &buf)
			if err != nil {
				return err
			}
			if out == "" {
				out = dl.Filename
			}
			if out == "-" {
				_, err = buf.WriteTo(app.stdout)
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			return app.emit(map[string]any{"file": out, "size": dl.Size}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Wrote %s\n", out)
				return err
			})
		},
	}
	ef.bind(export, "status", "severity", "cloud", "framework", "search", "env")
	export.Flags().StringVar(&format, "format", apiclient.FormatCSV, "csv or json")
	export.Flags().StringVar(&out, "out", "", "destination file, - for stdout (default: server filename)")

	cmd.AddCommand(list, show, export)
	return cmd
}

func (a *App) renderResults(page *console.ResultsController) error {
	v, err := page.View()
	if err != nil {
		return err
	}
	return a.emit(v, func(w io.Writer) error {
		if v.Waived > 0 {
			fmt.Fprintf(w, "%d results waived by exceptions on this page\n", v.Waived)
		}
		tbl := &widgets.Table{Headers: []string{"STATUS", "CONTROL", "ASSET", "SEVERITY", "CLOUD", "FRAMEWORKS"}, Empty: "No results."}
		for _, r := range v.Items {
			tbl.Append(widgets.StatusBadge(a.theme, r.Status), r.ControlID, r.AssetID, string(r.Severity), string(r.Cloud), strings.Join(r.Frameworks, ","))
		}
		if err := tbl.Render(w); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, widgets.PagerLine(a.theme, v.Page, v.PrevDisabled))
		return err
	})
}

func renderResultDetail(w io.Writer, t widgets.Theme, d models.ResultDetail) error {
	title := d.ControlID
	if d.ControlTitle != "" {
		title += " " + d.ControlTitle
	}
	return widgets.Drawer(w, title,
		[]widgets.Field{
			{Key: "Asset", Value: d.AssetID},
			{Key: "Status", Value: widgets.StatusBadge(t, d.Status)},
			{Key: "Severity", Value: string(d.Severity)},
			{Key: "Cloud", Value: string(d.Cloud)},
			{Key: "Frameworks", Value: strings.Join(d.Frameworks, ", ")},
			{Key: "Run", Value: d.RunID},
			{Key: "Evaluated", Value: d.EvaluatedAt},
		},
		widgets.Section{Title: "Evidence", Body: console.Pretty(d.Evidence)},
		widgets.Section{Title: "Fix", Body: console.Pretty(d.Fix)},
		widgets.Section{Title: "Asset", Body: console.Pretty(d.Asset)},
	)
}

func newPresetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "presets", Short: "Manage saved result filters"}

	var lf listFlags
	save := &cobra.Command{
		Use:   "save NAME",
		Short: "Save the status, severity, cloud and framework filters under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.presetService().Save(cmd.Context(), args[0], lf.filter)
			if err != nil {
				return err
			}
			app.notify.Info(fmt.Sprintf("Preset %q saved", p.Name))
			return app.emit(p, nil)
		},
	}
	lf.bind(save, "status", "severity", "cloud", "framework")

	apply := &cobra.Command{
		Use:   "apply NAME",
		Short: "List results with a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := app.resultsPage()
			if err := page.ApplyPreset(cmd.Context(), args[0]); err != nil {
				return err
			}
			return app.renderResults(page)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List presets, most recently used first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ps, err := app.presetService().List(cmd.Context())
			if err != nil {
				return err
			}
			return app.emit(ps, func(w io.Writer) error { return renderPresets(w, ps) })
		},
	}

	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.presetService().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.notify.Info(fmt.Sprintf("Preset %q deleted", args[0]))
			return app.emit(map[string]string{"deleted": args[0]}, nil)
		},
	}

	cmd.AddCommand(save, apply, list, del)
	return cmd
}

func renderPresets(w io.Writer, ps []presets.Preset) error {
	tbl := &widgets.Table{Headers: []string{"NAME", "STATUS", "SEVERITY", "CLOUD", "FRAMEWORK", "LAST USED"}, Empty: "No presets."}
	for _, p := range ps {
		tbl.Append(p.Name, p.Filter.Status, p.Filter.Severity, p.Filter.Cloud, p.Filter.Framework, p.LastUsed.Local().Format(time.DateTime))
	}
	return tbl.Render(w)
}
