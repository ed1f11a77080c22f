package console

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/models"
)

// Filename hints per cloud, checked in order. IaC comes first so that
// "aws_cloudformation.yaml" parses as a template, not an inventory.
var cloudHints = []struct {
	cloud    models.Cloud
	keywords []string
	exts     []string
}{
	{models.CloudIaC, []string{"iac", "terraform", "tfstate", "tfplan", "cloudformation", "bicep"}, []string{".tf", ".tfstate", ".bicep"}},
	{models.CloudAWS, []string{"aws", "amazon", "s3", "ec2", "iam"}, nil},
	{models.CloudAzure, []string{"azure", "az_", "entra"}, nil},
	{models.CloudGCP, []string{"gcp", "google", "gcs", "gke"}, nil},
}

// DetectCloud guesses the parse target from a filename, falling back when no
// hint matches.
func DetectCloud(filename string, fallback models.Cloud) models.Cloud {
	base := strings.ToLower(filepath.Base(filename))
	ext := filepath.Ext(base)
	tokens := strings.FieldsFunc(strings.TrimSuffix(base, ext), func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	for _, h := range cloudHints {
		for _, e := range h.exts {
			if ext == e {
				return h.cloud
			}
		}
		for _, kw := range h.keywords {
			if strings.HasSuffix(kw, "_") {
				if strings.HasPrefix(base, kw) {
					return h.cloud
				}
				continue
			}
			for _, tok := range tokens {
				if tok == kw {
					return h.cloud
				}
			}
		}
	}
	return fallback
}

// ParseGroup is one parse request: every upload detected as the same cloud.
type ParseGroup struct {
	Cloud     models.Cloud
	Files     []string
	UploadIDs []string
	Ingested  int
	Errors    []string
}

// IngestView is what the ingest page renders.
type IngestView struct {
	Uploaded    models.UploadIDs
	Groups      []ParseGroup
	Ingested    int
	Errors      []string
	LiveCloud   models.Cloud
	Permissions []string
}

// IngestController drives file upload, live ingestion and the demo dataset.
type IngestController struct {
	page
	api          IngestAPI
	defaultCloud models.Cloud

	mu    sync.Mutex
	state IngestView
}

// NewIngest builds the controller; defaultCloud applies to files whose name
// carries no cloud hint.
func NewIngest(api IngestAPI, defaultCloud models.Cloud, d Deps) *IngestController {
	if !defaultCloud.IsValid() {
		defaultCloud = models.CloudAWS
	}
	return &IngestController{page: newPage("ingest", d), api: api, defaultCloud: defaultCloud}
}

// Upload sends every file once, then issues exactly one parse per detected
// cloud. Groups are parsed concurrently; the ingested total is their sum.
func (c *IngestController) Upload(ctx context.Context, files []apiclient.File) (IngestView, error) {
	var view IngestView
	err := c.run(ctx, "upload", func(ctx context.Context) error {
		if len(files) == 0 {
			return formErr("files", "Select at least one file")
		}
		ids, err := c.api.UploadFiles(ctx, files)
		if err != nil {
			return err
		}
		c.notify.Info(fmt.Sprintf("%d files uploaded", len(ids)))

		groups := c.group(ids)
		g, gctx := errgroup.WithContext(ctx)
		for i := range groups {
			grp := &groups[i]
			g.Go(func() error {
				out, err := c.api.Parse(gctx, grp.Cloud, grp.UploadIDs...)
				if err != nil {
					return fmt.Errorf("parse %s: %w", grp.Cloud, err)
				}
				grp.Ingested, grp.Errors = out.Ingested, out.Errors
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		view = IngestView{Uploaded: ids, Groups: groups}
		for _, grp := range groups {
			view.Ingested += grp.Ingested
			view.Errors = append(view.Errors, grp.Errors...)
		}
		c.logger.InfoContext(ctx, "files ingested", "files", len(ids), "groups", len(groups), "ingested", view.Ingested)
		c.notify.Info(ingestedMessage(view.Ingested))
		c.set(view)
		return nil
	})
	return view, err
}

// group buckets uploads by detected cloud, ordered by cloud then filename.
func (c *IngestController) group(ids models.UploadIDs) []ParseGroup {
	names := make([]string, 0, len(ids))
	for name := range ids {
		names = append(names, name)
	}
	sort.Strings(names)

	index := map[models.Cloud]int{}
	var groups []ParseGroup
	for _, name := range names {
		cloud := DetectCloud(name, c.defaultCloud)
		i, ok := index[cloud]
		if !ok {
			i = len(groups)
			index[cloud] = i
			groups = append(groups, ParseGroup{Cloud: cloud})
		}
		groups[i].Files = append(groups[i].Files, name)
		groups[i].UploadIDs = append(groups[i].UploadIDs, ids[name])
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].Cloud < groups[b].Cloud })
	return groups
}

// CheckPermissions lists each permission as "perm: granted" or "perm: missing".
func (c *IngestController) CheckPermissions(ctx context.Context, cloud models.Cloud) ([]string, error) {
	var lines []string
	err := c.run(ctx, "permission check", func(ctx context.Context) error {
		if !cloud.SupportsLive() {
			return formErr("cloud", fmt.Sprintf("Live ingestion is not available for %s", cloud))
		}
		report, err := c.api.ValidatePermissions(ctx, cloud)
		if err != nil {
			return err
		}
		lines = PermissionLines(report)
		if report.OK() {
			c.notify.Info(fmt.Sprintf("All %s permissions granted", cloud))
		} else {
			c.notify.Error(fmt.Sprintf("%d %s permissions missing", len(report.Missing), cloud))
		}
		c.mu.Lock()
		c.state.LiveCloud, c.state.Permissions = cloud, lines
		c.mu.Unlock()
		return nil
	})
	return lines, err
}

// PermissionLines renders a report, missing permissions first.
func PermissionLines(r models.PermissionReport) []string {
	lines := make([]string, 0, len(r.Missing)+len(r.Granted)+1)
	for _, p := range r.Missing {
		lines = append(lines, p+": missing")
	}
	for _, p := range r.Granted {
		lines = append(lines, p+": granted")
	}
	if r.Note != "" {
		lines = append(lines, r.Note)
	}
	return lines
}

// StartLive pulls assets straight from the cloud account. Per-asset errors
// are reported next to the success count and do not fail the action.
func (c *IngestController) StartLive(ctx context.Context, cloud models.Cloud) (IngestView, error) {
	var view IngestView
	err := c.run(ctx, "live ingest", func(ctx context.Context) error {
		if !cloud.SupportsLive() {
			return formErr("cloud", fmt.Sprintf("Live ingestion is not available for %s", cloud))
		}
		out, err := c.api.StartLive(ctx, cloud)
		if err != nil {
			return err
		}
		view = IngestView{LiveCloud: cloud, Ingested: out.Ingested, Errors: out.Errors}
		c.notify.Info(ingestedMessage(out.Ingested))
		if len(out.Errors) > 0 {
			c.notify.Error(fmt.Sprintf("%d assets failed", len(out.Errors)))
		}
		c.set(view)
		return nil
	})
	return view, err
}

// LoadDemo seeds the backend with the demo dataset.
func (c *IngestController) LoadDemo(ctx context.Context) (IngestView, error) {
	var view IngestView
	err := c.run(ctx, "demo load", func(ctx context.Context) error {
		out, err := c.api.LoadDemo(ctx)
		if err != nil {
			return err
		}
		view = IngestView{Ingested: out.Ingested, Errors: out.Errors}
		c.notify.Info(ingestedMessage(out.Ingested))
		c.set(view)
		return nil
	})
	return view, err
}

func (c *IngestController) set(v IngestView) {
	c.mu.Lock()
	c.state = v
	c.mu.Unlock()
}

// View returns the last outcome.
func (c *IngestController) View() (IngestView, error) {
	if err := c.view(); err != nil {
		return IngestView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, nil
}

func ingestedMessage(n int) string {
	return fmt.Sprintf("Ingested %d assets", n)
}
