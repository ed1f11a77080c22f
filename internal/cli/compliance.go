package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/console"
	"rbconsole/internal/models"
	"rbconsole/internal/widgets"
)

func newComplianceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "compliance", Short: "Framework requirement matrix and evidence packs"}

	var framework string
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show the requirement matrix of a framework",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page := console.NewCompliance(app.client, app.deps())
			v, err := page.Select(cmd.Context(), framework)
			if err != nil {
				return err
			}
			return app.emit(v, func(w io.Writer) error { return renderCompliance(w, v) })
		},
	}
	summary.Flags().StringVar(&framework, "framework", models.Frameworks[0], "one of "+strings.Join(models.Frameworks, ", "))

	var packFramework, out string
	pack := &cobra.Command{
		Use:   "evidence-pack",
		Short: "Download the evidence pack PDF of a framework",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page := console.NewCompliance(app.client, app.deps())
			ctx := cmd.Context()
			if _, err := page.Select(ctx, packFramework); err != nil {
				return err
			}
			name := out
			if name == "" {
				name = "evidence_" + packFramework + ".pdf"
			}
			f, err := os.Create(name)
			if err != nil {
				return err
			}
			dl, err := page.EvidencePack(ctx, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(name)
				return err
			}
			return app.emit(map[string]any{"file": name, "size": dl.Size}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Wrote %s\n", name)
				return err
			})
		},
	}
	pack.Flags().StringVar(&packFramework, "framework", models.Frameworks[0], "framework id")
	pack.Flags().StringVarP(&out, "out", "f", "", "destination file (default evidence_<framework>.pdf)")

	cmd.AddCommand(summary, pack)
	return cmd
}

func renderCompliance(w io.Writer, v console.ComplianceView) error {
	fmt.Fprintf(w, "%s  score %d%%\n", v.Framework, v.Score)
	if t := v.Totals; t != nil {
		fmt.Fprintf(w, "%d requirements: %d pass, %d fail, %d waived, %d n/a\n", t.TotalRequirements, t.Pass, t.Fail, t.Waived, t.NA)
	}
	fmt.Fprintln(w)
	tbl := &widgets.Table{Headers: []string{"REQUIREMENT", "TITLE", "STATUS", "CONTROLS"}, Empty: "No requirements."}
	for _, r := range v.Requirements {
		tbl.Append(r.ID, r.Title, r.Status, strings.Join(r.MappedControls, ","))
	}
	return tbl.Render(w)
}

func newControlsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "controls", Short: "Browse the control catalogue"}

	var f apiclient.ControlFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List controls",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := console.NewControls(app.client, app.deps()).Search(cmd.Context(), f)
			if err != nil {
				return err
			}
			return app.emit(v.Controls, func(w io.Writer) error {
				tbl := &widgets.Table{Headers: []string{"CONTROL", "SEVERITY", "TITLE", "FRAMEWORKS"}, Empty: "No controls."}
				for _, c := range v.Controls {
					tbl.Append(c.ControlID, string(c.Severity), c.Title, strings.Join(c.Frameworks, ","))
				}
				return tbl.Render(w)
			})
		},
	}
	list.Flags().StringVar(&f.Search, "search", "", "free-text search")
	list.Flags().StringVar(&f.Severity, "severity", "", "LOW, MEDIUM, HIGH or CRITICAL")
	list.Flags().StringVar(&f.Framework, "framework", "", "framework id")
	cmd.AddCommand(list)
	return cmd
}
