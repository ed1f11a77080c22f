package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"rbconsole/internal/console"
	"rbconsole/internal/listing"
	"rbconsole/internal/models"
	"rbconsole/internal/widgets"
)

// listFlags are shared by the assets and results list commands.
type listFlags struct {
	filter listing.Filter
	page   int
}

func (f *listFlags) bind(cmd *cobra.Command, fields ...string) {
	fl := cmd.Flags()
	for _, name := range fields {
		switch name {
		case "status":
			fl.StringVar(&f.filter.Status, "status", "", "PASS, FAIL, WAIVED or NA")
		case "severity":
			fl.StringVar(&f.filter.Severity, "severity", "", "LOW, MEDIUM, HIGH or CRITICAL")
		case "cloud":
			fl.StringVar(&f.filter.Cloud, "cloud", "", "aws, azure, gcp or iac")
		case "framework":
			fl.StringVar(&f.filter.Framework, "framework", "", "framework id, e.g. PCI_DSS")
		case "search":
			fl.StringVar(&f.filter.Search, "search", "", "free-text search")
		case "tag":
			fl.StringVar(&f.filter.Tag, "tag", "", "tag filter, key=value")
		case "type":
			fl.StringVar(&f.filter.Type, "type", "", "asset type")
		case "env":
			fl.StringVar(&f.filter.Env, "env", "", "environment, e.g. demo")
		}
	}
	fl.IntVar(&f.page, "page", 1, "page number")
}

func newAssetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "assets", Short: "Browse ingested assets"}

	var lf listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List assets by cloud, type and tag",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page := console.NewAssets(app.client, app.deps())
			if err := page.Show(cmd.Context(), lf.filter, lf.page); err != nil {
				return err
			}
			v, err := page.View()
			if err != nil {
				return err
			}
			return app.emit(v, func(w io.Writer) error { return renderAssets(w, app.theme, v) })
		},
	}
	lf.bind(list, "cloud", "type", "tag")

	show := &cobra.Command{
		Use:   "show ASSET_ID",
		Short: "Show one asset and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := console.NewAssets(app.client, app.deps())
			detail, err := page.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer page.Close()
			return app.emit(detail, func(w io.Writer) error { return renderAssetDetail(w, app.theme, detail) })
		},
	}
	cmd.AddCommand(list, show)
	return cmd
}

func renderAssets(w io.Writer, t widgets.Theme, v console.AssetsView) error {
	tbl := &widgets.Table{Headers: []string{"ASSET", "CLOUD", "TYPE", "REGION", "TAGS"}, Empty: "No assets."}
	for _, a := range v.Items {
		tbl.Append(a.AssetID, string(a.Cloud), a.Type, a.Region, formatTags(a.Tags))
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, widgets.PagerLine(t, v.Page, v.PrevDisabled))
	return err
}

func renderAssetDetail(w io.Writer, t widgets.Theme, d models.AssetDetail) error {
	a := d.Asset
	if err := widgets.Drawer(w, a.AssetID, []widgets.Field{
		{Key: "Cloud", Value: string(a.Cloud)},
		{Key: "Type", Value: a.Type},
		{Key: "Region", Value: a.Region},
		{Key: "Tags", Value: formatTags(a.Tags)},
	}); err != nil {
		return err
	}
	results := d.Results
	if len(results) == 0 {
		results = a.Results
	}
	if len(results) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tbl := &widgets.Table{Headers: []string{"CONTROL", "STATUS", "SEVERITY"}}
	for _, r := range results {
		tbl.Append(r.ControlID, widgets.StatusBadge(t, r.Status), string(r.Severity))
	}
	return tbl.Render(w)
}

func formatTags(tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+tags[k])
	}
	return strings.Join(parts, ",")
}
