package console

import (
	"context"
	"io"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/listing"
	"rbconsole/internal/models"
	"rbconsole/internal/presets"
)

// The interfaces below are the slices of the API client each page uses.
// *apiclient.Client satisfies all of them.

type IngestAPI interface {
	UploadFiles(ctx context.Context, files []apiclient.File) (models.UploadIDs, error)
	Parse(ctx context.Context, cloud models.Cloud, uploadIDs ...string) (models.IngestOutcome, error)
	ValidatePermissions(ctx context.Context, cloud models.Cloud) (models.PermissionReport, error)
	StartLive(ctx context.Context, cloud models.Cloud) (models.IngestOutcome, error)
	LoadDemo(ctx context.Context) (models.IngestOutcome, error)
}

type AssetsAPI interface {
	ListAssets(ctx context.Context, q listing.Query) (models.Page[models.Asset], error)
	GetAsset(ctx context.Context, assetID string) (models.AssetDetail, error)
}

type ResultsAPI interface {
	ListResults(ctx context.Context, q listing.Query) (models.Page[models.Result], error)
	GetResult(ctx context.Context, id string) (models.ResultDetail, error)
	ExportResults(ctx context.Context, format string, filter listing.Filter, w io.Writer) (apiclient.Download, error)
}

// PresetStore is implemented by *presets.Service.
type PresetStore interface {
	Save(ctx context.Context, name string, f listing.Filter) (presets.Preset, error)
	Apply(ctx context.Context, name string) (listing.Filter, error)
	List(ctx context.Context) ([]presets.Preset, error)
	Delete(ctx context.Context, name string) error
}

type ComplianceAPI interface {
	ComplianceSummary(ctx context.Context, framework string) (models.ComplianceMatrix, error)
	EvidencePack(ctx context.Context, framework string, w io.Writer) (apiclient.Download, error)
}

type ControlsAPI interface {
	ListControls(ctx context.Context, f apiclient.ControlFilter) ([]models.Control, error)
}

type EvaluateAPI interface {
	StartEvaluation(ctx context.Context) (models.Run, error)
	GetRun(ctx context.Context, runID string) (models.Run, error)
	LatestRun(ctx context.Context) (*models.Run, error)
	WaitForRun(ctx context.Context, runID string, onTick func(models.Run)) (models.Run, error)
}

type DashboardAPI interface {
	LatestRun(ctx context.Context) (*models.Run, error)
	ResultsSummary(ctx context.Context) (models.ResultsSummary, error)
}

type ExceptionsAPI interface {
	ListExceptions(ctx context.Context, activeOnly bool) ([]models.Exception, error)
	CreateException(ctx context.Context, in models.ExceptionCreate) (models.Exception, error)
	DeleteException(ctx context.Context, id string) error
}

type VendorsAPI interface {
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	CreateVendor(ctx context.Context, v models.Vendor) (models.Vendor, error)
	BulkCreateVendors(ctx context.Context, vendors []models.Vendor) ([]models.Vendor, error)
}

type SettingsAPI interface {
	GetLicense(ctx context.Context) (models.License, error)
	UploadLicense(ctx context.Context, f apiclient.File) (models.License, error)
	RulePackStatus(ctx context.Context) (models.RulePackStatus, error)
	UploadRulePack(ctx context.Context, f apiclient.File, apply bool) (models.RulePackChange, error)
	RollbackRulePack(ctx context.Context, version string) (models.RulePackChange, error)
}

var (
	_ IngestAPI     = (*apiclient.Client)(nil)
	_ AssetsAPI     = (*apiclient.Client)(nil)
	_ ResultsAPI    = (*apiclient.Client)(nil)
	_ ComplianceAPI = (*apiclient.Client)(nil)
	_ ControlsAPI   = (*apiclient.Client)(nil)
	_ EvaluateAPI   = (*apiclient.Client)(nil)
	_ DashboardAPI  = (*apiclient.Client)(nil)
	_ ExceptionsAPI = (*apiclient.Client)(nil)
	_ VendorsAPI    = (*apiclient.Client)(nil)
	_ SettingsAPI   = (*apiclient.Client)(nil)
	_ PresetStore   = (*presets.Service)(nil)
)
