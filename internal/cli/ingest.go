package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/console"
	"rbconsole/internal/models"
	"rbconsole/internal/widgets"
)

func newIngestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Upload inventories, pull live assets or load the demo dataset",
	}
	cmd.AddCommand(
		newIngestUploadCmd(app),
		newIngestPermissionsCmd(app),
		newIngestLiveCmd(app),
		newIngestDemoCmd(app),
	)
	return cmd
}

func (a *App) ingestPage(defaultCloud string) *console.IngestController {
	if defaultCloud == "" {
		defaultCloud = a.profile.DefaultCloud
	}
	return console.NewIngest(a.client, models.Cloud(defaultCloud), a.deps())
}

func parseCloud(v string) (models.Cloud, error) {
	c := models.Cloud(strings.ToLower(strings.TrimSpace(v)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown cloud %q (want aws, azure, gcp or iac)", v)
	}
	return c, nil
}

func newIngestUploadCmd(app *App) *cobra.Command {
	var defaultCloud string
	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload files and parse each detected cloud group once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaultCloud != "" {
				if _, err := parseCloud(defaultCloud); err != nil {
					return err
				}
			}
			files, closeAll, err := openFiles(args)
			if err != nil {
				return err
			}
			defer closeAll()

			view, err := app.ingestPage(defaultCloud).Upload(cmd.Context(), files)
			if err != nil {
				return err
			}
			return app.emit(view, func(w io.Writer) error { return renderIngest(w, view) })
		},
	}
	cmd.Flags().StringVar(&defaultCloud, "cloud", "", "cloud for files whose name has no cloud hint")
	return cmd
}

func openFiles(paths []string) ([]apiclient.File, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	files := make([]apiclient.File, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)
		files = append(files, apiclient.File{Name: filepath.Base(p), Content: f})
	}
	return files, closeAll, nil
}

func openFile(path string) (apiclient.File, func(), error) {
	files, closeAll, err := openFiles([]string{path})
	if err != nil {
		return apiclient.File{}, nil, err
	}
	return files[0], closeAll, nil
}

func newIngestPermissionsCmd(app *App) *cobra.Command {
	var cloud string
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Check the permissions live ingestion needs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := parseCloud(cloud)
			if err != nil {
				return err
			}
			lines, err := app.ingestPage("").CheckPermissions(cmd.Context(), c)
			if err != nil {
				return err
			}
			return app.emit(lines, func(w io.Writer) error {
				for _, l := range lines {
					fmt.Fprintln(w, l)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&cloud, "cloud", "aws", "aws, azure or gcp")
	return cmd
}

func newIngestLiveCmd(app *App) *cobra.Command {
	var cloud string
	cmd := &cobra.Command{
		Use:   "live",
		Short: "Pull assets straight from a cloud account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := parseCloud(cloud)
			if err != nil {
				return err
			}
			view, err := app.ingestPage("").StartLive(cmd.Context(), c)
			if err != nil {
				return err
			}
			return app.emit(view, func(w io.Writer) error { return renderIngest(w, view) })
		},
	}
	cmd.Flags().StringVar(&cloud, "cloud", "aws", "aws, azure or gcp")
	return cmd
}

func newIngestDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Load the demo dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := app.ingestPage("").LoadDemo(cmd.Context())
			if err != nil {
				return err
			}
			return app.emit(view, func(w io.Writer) error {
				if err := renderIngest(w, view); err != nil {
					return err
				}
				_, err := fmt.Fprintln(w, "Browse it with: rbconsole results list --env demo")
				return err
			})
		},
	}
}

func renderIngest(w io.Writer, v console.IngestView) error {
	if len(v.Groups) > 0 {
		tbl := &widgets.Table{Headers: []string{"CLOUD", "FILES", "INGESTED"}}
		for _, g := range v.Groups {
			tbl.Append(string(g.Cloud), strings.Join(g.Files, ", "), fmt.Sprint(g.Ingested))
		}
		if err := tbl.Render(w); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Ingested: %d\n", v.Ingested)
	if len(v.Errors) > 0 {
		fmt.Fprintf(w, "Errors (%d):\n", len(v.Errors))
		for _, e := range v.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
	return nil
}
