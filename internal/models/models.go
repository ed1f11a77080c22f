// Package models holds the serialized shapes of backend-owned entities.
// Nothing here is created or mutated locally; these types only describe what
// the compliance API returns and accepts.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Status is the outcome of evaluating one control against one asset.
type Status string

const (
	StatusPass   Status = "PASS"
	StatusFail   Status = "FAIL"
	StatusWaived Status = "WAIVED"
	StatusNA     Status = "NA"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPass, StatusFail, StatusWaived, StatusNA}

func (s Status) IsValid() bool {
	switch s {
	case StatusPass, StatusFail, StatusWaived, StatusNA:
		return true
	}
	return false
}

// ParseStatus accepts any casing; empty input is the "all statuses" filter.
func ParseStatus(v string) (Status, bool) {
	if v == "" {
		return "", true
	}
	s := Status(strings.ToUpper(strings.TrimSpace(v)))
	return s, s.IsValid()
}

// Severity of a control.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ParseSeverity accepts any casing; empty input is the "all severities" filter.
func ParseSeverity(v string) (Severity, bool) {
	if v == "" {
		return "", true
	}
	s := Severity(strings.ToUpper(strings.TrimSpace(v)))
	return s, s.IsValid()
}

// Cloud identifies an ingestion source.
type Cloud string

const (
	CloudAWS   Cloud = "aws"
	CloudAzure Cloud = "azure"
	CloudGCP   Cloud = "gcp"
	CloudIaC   Cloud = "iac"
)

// Clouds are the targets offered for file parsing. Live ingestion excludes IaC.
var Clouds = []Cloud{CloudAWS, CloudAzure, CloudGCP, CloudIaC}

func (c Cloud) IsValid() bool {
	switch c {
	case CloudAWS, CloudAzure, CloudGCP, CloudIaC:
		return true
	}
	return false
}

// SupportsLive reports whether the backend has a live connector for c.
func (c Cloud) SupportsLive() bool {
	return c == CloudAWS || c == CloudAzure || c == CloudGCP
}

// Risk rating of a vendor.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

func (r Risk) IsValid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// Asset is a normalized cloud or IaC resource.
type Asset struct {
	AssetID string            `json:"asset_id"`
	Cloud   Cloud             `json:"cloud"`
	Type    string            `json:"type"`
	Region  string            `json:"region,omitempty"`
	Tags    map[string]string `json:"tags,omitempty"`
	Results []Result          `json:"results,omitempty"`
}

// AssetDetail is the /assets/:id payload.
type AssetDetail struct {
	Asset   Asset    `json:"asset"`
	Results []Result `json:"results"`
}

// Result is the outcome of one control on one asset.
type Result struct {
	ControlID    string          `json:"control_id"`
	ControlTitle string          `json:"control_title,omitempty"`
	AssetID      string          `json:"asset_id"`
	Status       Status          `json:"status"`
	Severity     Severity        `json:"severity,omitempty"`
	Cloud        Cloud           `json:"cloud,omitempty"`
	Frameworks   []string        `json:"frameworks,omitempty"`
	Category     string          `json:"category,omitempty"`
	RunID        string          `json:"run_id,omitempty"`
	EvaluatedAt  string          `json:"evaluated_at,omitempty"`
	Evidence     json.RawMessage `json:"evidence,omitempty"`
	Fix          json.RawMessage `json:"fix,omitempty"`
}

// ID is the composite key used by GET /results/:id.
func (r Result) ID() string {
	return ResultID(r.ControlID, r.AssetID)
}

// ResultID joins a control and asset id the way the backend expects.
func ResultID(controlID, assetID string) string {
	return controlID + ":" + assetID
}

// ResultDetail is the /results/:id payload: the result plus the asset it ran on.
type ResultDetail struct {
	Result
	Asset json.RawMessage `json:"asset,omitempty"`
}

// Control is a compliance rule definition.
type Control struct {
	ControlID  string   `json:"control_id"`
	Title      string   `json:"title"`
	Severity   Severity `json:"severity"`
	Frameworks []string `json:"frameworks"`
	LogicHash  string   `json:"logic_hash,omitempty"`
}

// Exception is a time-bound waiver suppressing FAIL results for matching assets.
type Exception struct {
	ID        string         `json:"id"`
	ControlID string         `json:"control_id"`
	Selector  map[string]any `json:"selector"`
	Reason    string         `json:"reason"`
	ExpiresAt string         `json:"expires_at"`
	CreatedBy string         `json:"created_by,omitempty"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
}

// ExceptionCreate is the POST /exceptions body.
type ExceptionCreate struct {
	ControlID string         `json:"control_id"`
	Selector  map[string]any `json:"selector"`
	Reason    string         `json:"reason"`
	ExpiresAt string         `json:"expires_at"`
}

// Vendor is an entry of the third-party registry.
type Vendor struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Risk      Risk   `json:"risk"`
	DPASigned bool   `json:"dpa_signed"`
	PII       bool   `json:"pii"`
}

// Frameworks offered by the compliance page, in display order.
var Frameworks = []string{
	"PCI_DSS", "GDPR", "DPDP", "ISO27001", "NIST_800_53", "HIPAA",
	"FEDRAMP_LOW", "FEDRAMP_MODERATE", "FEDRAMP_HIGH", "SOC2", "CIS", "CCPA",
}

// ResultRef is a result cited as evidence for a requirement.
type ResultRef struct {
	ControlID string `json:"control_id"`
	AssetID   string `json:"asset_id"`
	Status    Status `json:"status"`
}

// Requirement is one line of a framework matrix.
type Requirement struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Status         string      `json:"status"`
	MappedControls []string    `json:"mapped_controls"`
	Evidence       []ResultRef `json:"evidence,omitempty"`
}

// ComplianceTotals counts requirements by status.
type ComplianceTotals struct {
	TotalRequirements int `json:"total_requirements"`
	Pass              int `json:"pass"`
	Fail              int `json:"fail"`
	NA                int `json:"na"`
	Waived            int `json:"waived"`
}

// ComplianceMatrix is the framework summary.
type ComplianceMatrix struct {
	Framework    string            `json:"framework"`
	Score        int               `json:"score"`
	Requirements []Requirement     `json:"requirements"`
	Totals       *ComplianceTotals `json:"totals,omitempty"`
	RunID        string            `json:"run_id,omitempty"`
}

// ResultsSummary counts results of one run by status, severity and framework.
type ResultsSummary struct {
	ByStatus    map[string]int `json:"by_status"`
	BySeverity  map[string]int `json:"by_severity"`
	ByFramework map[string]int `json:"by_framework"`
	RunID       string         `json:"run_id"`
}

// Page is one page of a list endpoint. Totals are zero when the backend
// returned a bare array.
type Page[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalItems int    `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	RunID      string `json:"run_id,omitempty"`
}

// License describes the installed product license.
type License struct {
	Org      string   `json:"org"`
	Edition  string   `json:"edition"`
	Expiry   string   `json:"expiry"`
	Seats    int      `json:"seats"`
	Features []string `json:"features"`
	Valid    bool     `json:"valid"`
}

// RulePackStatus lists the active rule pack and the versions kept for rollback.
type RulePackStatus struct {
	Current   string   `json:"current"`
	Available []string `json:"available"`
}

// HasVersion reports whether v can be rolled back to.
func (s RulePackStatus) HasVersion(v string) bool {
	for _, a := range s.Available {
		if a == v {
			return true
		}
	}
	return false
}

// RulePackChange is returned by upload and rollback.
type RulePackChange struct {
	Version      string   `json:"version"`
	ControlCount int      `json:"control_count"`
	Frameworks   []string `json:"frameworks"`
}

// RunStatus of an evaluation run.
type RunStatus string

const (
	RunQueued    RunStatus = "queued"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Terminal reports whether polling can stop.
func (s RunStatus) Terminal() bool {
	return s == RunCompleted || s == RunFailed
}

// Run is an evaluation run.
type Run struct {
	RunID         string     `json:"run_id"`
	Status        RunStatus  `json:"status"`
	AssetsCount   int        `json:"assets_count"`
	ControlsCount int        `json:"controls_count,omitempty"`
	ResultsCount  int        `json:"results_count,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

// UploadIDs maps an uploaded filename to the id the backend assigned.
type UploadIDs map[string]string

// IngestOutcome is the normalized result of parse, live and demo ingestion.
type IngestOutcome struct {
	Ingested int      `json:"ingested"`
	Errors   []string `json:"errors,omitempty"`
}

// PermissionReport is the normalized result of a live permission check.
type PermissionReport struct {
	Granted []string `json:"granted"`
	Missing []string `json:"missing"`
	Note    string   `json:"note,omitempty"`
}

// OK reports whether nothing is missing.
func (p PermissionReport) OK() bool {
	return len(p.Missing) == 0
}

// Token is an issued access token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}
