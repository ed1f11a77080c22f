package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"rbconsole/internal/console"
	"rbconsole/internal/models"
	"rbconsole/internal/widgets"
)

func newEvaluateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "evaluate", Short: "Run evaluations and follow their progress"}

	var wait bool
	run := &cobra.Command{
		Use:   "run",
		Short: "Start an evaluation run and poll it until it finishes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page := console.NewEvaluate(app.client, app.deps())
			tick := func(r models.Run) {
				if app.format == widgets.FormatTable {
					fmt.Fprintf(app.stderr, "run %s: %s\n", r.RunID, r.Status)
				}
			}
			var v console.EvaluateView
			var err error
			if wait {
				v, err = page.Run(cmd.Context(), tick)
			} else {
				var r models.Run
				if r, err = page.Start(cmd.Context()); err == nil {
					v = console.EvaluateView{Run: &r}
				}
			}
			if err != nil {
				return err
			}
			return app.emit(v, func(w io.Writer) error { return renderRun(w, app.theme, v.Run) })
		},
	}
	run.Flags().BoolVar(&wait, "wait", true, "poll until the run completes")

	status := &cobra.Command{
		Use:   "status RUN_ID",
		Short: "Show a run, polling while it is in progress with --follow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := console.NewEvaluate(app.client, app.deps())
			follow, _ := cmd.Flags().GetBool("follow")
			var run *models.Run
			if follow {
				v, err := page.Watch(cmd.Context(), args[0], nil)
				if err != nil {
					return err
				}
				run = v.Run
			} else {
				r, err := page.Status(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				run = &r
			}
			return app.emit(run, func(w io.Writer) error { return renderRun(w, app.theme, run) })
		},
	}
	status.Flags().Bool("follow", false, "poll until the run completes")

	latest := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			run, err := console.NewEvaluate(app.client, app.deps()).Latest(cmd.Context())
			if err != nil {
				return err
			}
			return app.emit(run, func(w io.Writer) error { return renderRun(w, app.theme, run) })
		},
	}

	cmd.AddCommand(run, status, latest)
	return cmd
}

func renderRun(w io.Writer, t widgets.Theme, r *models.Run) error {
	if r == nil {
		_, err := fmt.Fprintln(w, "No evaluation has run yet.")
		return err
	}
	fields := []widgets.Field{
		{Key: "Status", Value: widgets.RunBadge(t, r.Status)},
		{Key: "Assets", Value: fmt.Sprint(r.AssetsCount)},
	}
	if r.ResultsCount > 0 {
		fields = append(fields, widgets.Field{Key: "Results", Value: fmt.Sprint(r.ResultsCount)})
	}
	if r.StartedAt != nil {
		fields = append(fields, widgets.Field{Key: "Started", Value: r.StartedAt.Format(time.RFC3339)})
	}
	if r.FinishedAt != nil {
		fields = append(fields, widgets.Field{Key: "Finished", Value: r.FinishedAt.Format(time.RFC3339)})
	}
	return widgets.Drawer(w, "Run "+r.RunID, fields)
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Latest run and result counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := console.NewDashboard(app.client, app.deps()).Load(cmd.Context())
			if err != nil {
				return err
			}
			return app.emit(v, func(w io.Writer) error {
				if err := renderRun(w, app.theme, v.Latest); err != nil {
					return err
				}
				for _, sec := range []struct {
					title  string
					counts map[string]int
				}{
					{"BY STATUS", v.Summary.ByStatus},
					{"BY SEVERITY", v.Summary.BySeverity},
					{"BY FRAMEWORK", v.Summary.ByFramework},
				} {
					if len(sec.counts) == 0 {
						continue
					}
					fmt.Fprintln(w)
					if err := countTable(sec.title, sec.counts).Render(w); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func countTable(title string, counts map[string]int) *widgets.Table {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tbl := &widgets.Table{Headers: []string{title, "COUNT"}}
	for _, k := range keys {
		tbl.Append(k, fmt.Sprint(counts[k]))
	}
	return tbl
}
