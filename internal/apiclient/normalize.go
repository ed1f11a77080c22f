package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"rbconsole/internal/models"
)

// Every loosely typed endpoint goes through one of these adapters. Each
// recognizes the payload variants the backend has shipped and rejects the rest
// with ErrUnrecognizedShape.

func shapeErr(endpoint string, body []byte) error {
	trimmed := bytes.TrimSpace(body)
	var obj map[string]json.RawMessage
	if json.Unmarshal(trimmed, &obj) == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("%w: %s returned keys [%s]", ErrUnrecognizedShape, endpoint, strings.Join(keys, ", "))
	}
	kind := "non-object"
	if len(trimmed) > 0 && trimmed[0] == '[' {
		kind = "array"
	}
	return fmt.Errorf("%w: %s returned %s body", ErrUnrecognizedShape, endpoint, kind)
}

func decodeObject(endpoint string, body []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, shapeErr(endpoint, body)
	}
	return obj, nil
}

// count reads a number, or the length of a list or map.
func count(raw json.RawMessage) (int, bool) {
	var n float64
	if json.Unmarshal(raw, &n) == nil {
		return int(n), true
	}
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil {
		return len(list), true
	}
	var m map[string]json.RawMessage
	if json.Unmarshal(raw, &m) == nil {
		return len(m), true
	}
	return 0, false
}

// normalizeIngest accepts {"ingested": n}, {"assets": n} and {"files": n|[...]},
// each with an optional "errors" list.
func normalizeIngest(endpoint string, body []byte) (models.IngestOutcome, error) {
	obj, err := decodeObject(endpoint, body)
	if err != nil {
		return models.IngestOutcome{}, err
	}
	out := models.IngestOutcome{}
	if raw, ok := obj["errors"]; ok {
		out.Errors = stringList(raw)
	}
	for _, key := range []string{"ingested", "assets", "files"} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		n, ok := count(raw)
		if !ok {
			return models.IngestOutcome{}, shapeErr(endpoint, body)
		}
		out.Ingested = n
		return out, nil
	}
	return models.IngestOutcome{}, shapeErr(endpoint, body)
}

func stringList(raw json.RawMessage) []string {
	var items []any
	if json.Unmarshal(raw, &items) != nil {
		var one string
		if json.Unmarshal(raw, &one) == nil && one != "" {
			return []string{one}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		default:
			b, _ := json.Marshal(v)
			out = append(out, string(b))
		}
	}
	return out
}

// normalizePermissions accepts a flat {perm: bool} map, {"granted": [...],
// "missing": [...]}, and {"permissions": {perm: bool} | "text"}.
func normalizePermissions(endpoint string, body []byte) (models.PermissionReport, error) {
	obj, err := decodeObject(endpoint, body)
	if err != nil {
		return models.PermissionReport{}, err
	}

	_, hasGranted := obj["granted"]
	_, hasMissing := obj["missing"]
	if hasGranted || hasMissing {
		var lists struct {
			Granted []string `json:"granted"`
			Missing []string `json:"missing"`
		}
		if err := json.Unmarshal(body, &lists); err != nil {
			return models.PermissionReport{}, shapeErr(endpoint, body)
		}
		return models.PermissionReport{Granted: lists.Granted, Missing: lists.Missing}, nil
	}

	if raw, ok := obj["permissions"]; ok && len(obj) == 1 {
		var note string
		if json.Unmarshal(raw, &note) == nil {
			return models.PermissionReport{Note: note}, nil
		}
		return flatPermissions(endpoint, raw)
	}
	return flatPermissions(endpoint, body)
}

func flatPermissions(endpoint string, raw []byte) (models.PermissionReport, error) {
	var flat map[string]bool
	if err := json.Unmarshal(raw, &flat); err != nil {
		return models.PermissionReport{}, shapeErr(endpoint, raw)
	}
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	report := models.PermissionReport{}
	for _, k := range keys {
		if flat[k] {
			report.Granted = append(report.Granted, k)
		} else {
			report.Missing = append(report.Missing, k)
		}
	}
	return report, nil
}

// normalizeToken accepts the OAuth form {access_token, token_type} and {token}.
func normalizeToken(endpoint string, body []byte) (models.Token, error) {
	var t struct {
		AccessToken string `json:"access_token"`
		Token       string `json:"token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &t); err != nil {
		return models.Token{}, shapeErr(endpoint, body)
	}
	tok := models.Token{AccessToken: t.AccessToken, TokenType: t.TokenType, ExpiresIn: t.ExpiresIn}
	if tok.AccessToken == "" {
		tok.AccessToken = t.Token
	}
	if tok.AccessToken == "" {
		return models.Token{}, shapeErr(endpoint, body)
	}
	if tok.TokenType == "" {
		tok.TokenType = "bearer"
	}
	return tok, nil
}

// normalizeCompliance accepts a top-level "score" or "summary.score_percent",
// and requirements under "requirements" or, in the matrix variant, "controls".
func normalizeCompliance(endpoint string, body []byte) (models.ComplianceMatrix, error) {
	var payload struct {
		Framework    string               `json:"framework"`
		Score        *float64             `json:"score"`
		Requirements []models.Requirement `json:"requirements"`
		Controls     []models.Requirement `json:"controls"`
		RunID        string               `json:"run_id"`
		Summary      *struct {
			models.ComplianceTotals
			ScorePercent *float64 `json:"score_percent"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.ComplianceMatrix{}, shapeErr(endpoint, body)
	}
	if payload.Score == nil && payload.Summary == nil && payload.Requirements == nil && payload.Controls == nil {
		return models.ComplianceMatrix{}, shapeErr(endpoint, body)
	}

	m := models.ComplianceMatrix{
		Framework:    payload.Framework,
		Requirements: payload.Requirements,
		RunID:        payload.RunID,
	}
	if m.Requirements == nil {
		m.Requirements = payload.Controls
	}
	switch {
	case payload.Score != nil:
		m.Score = int(*payload.Score)
	case payload.Summary != nil && payload.Summary.ScorePercent != nil:
		m.Score = int(*payload.Summary.ScorePercent)
	}
	if payload.Summary != nil {
		totals := payload.Summary.ComplianceTotals
		m.Totals = &totals
	}
	return m, nil
}

// normalizeList accepts a bare array or a page object with "items".
func normalizeList[T any](endpoint string, body []byte) (models.Page[T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return models.Page[T]{}, shapeErr(endpoint, body)
		}
		return models.Page[T]{Items: items}, nil
	}
	obj, err := decodeObject(endpoint, trimmed)
	if err != nil {
		return models.Page[T]{}, err
	}
	if _, ok := obj["items"]; !ok {
		return models.Page[T]{}, shapeErr(endpoint, body)
	}
	var page models.Page[T]
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return models.Page[T]{}, shapeErr(endpoint, body)
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

// normalizeRun treats {} as "no run yet" and returns nil.
func normalizeRun(endpoint string, body []byte) (*models.Run, error) {
	obj, err := decodeObject(endpoint, body)
	if err != nil {
		return nil, err
	}
	if len(obj) == 0 {
		return nil, nil
	}
	var run models.Run
	if err := json.Unmarshal(body, &run); err != nil || run.RunID == "" {
		return nil, shapeErr(endpoint, body)
	}
	return &run, nil
}

// normalizeRulePackStatus accepts "available" or "history" for the version
// list and strips the ".tar" the backend leaves on archive stems.
func normalizeRulePackStatus(endpoint string, body []byte) (models.RulePackStatus, error) {
	var payload struct {
		Current   *string  `json:"current"`
		Version   *string  `json:"version"`
		Available []string `json:"available"`
		History   []string `json:"history"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.RulePackStatus{}, shapeErr(endpoint, body)
	}
	if payload.Available == nil && payload.History == nil && payload.Current == nil && payload.Version == nil {
		obj, err := decodeObject(endpoint, body)
		if err != nil || len(obj) > 0 {
			return models.RulePackStatus{}, shapeErr(endpoint, body)
		}
	}

	st := models.RulePackStatus{Available: []string{}}
	switch {
	case payload.Current != nil:
		st.Current = strings.TrimSuffix(*payload.Current, ".tar")
	case payload.Version != nil:
		st.Current = strings.TrimSuffix(*payload.Version, ".tar")
	}
	versions := payload.Available
	if versions == nil {
		versions = payload.History
	}
	for _, v := range versions {
		st.Available = append(st.Available, strings.TrimSuffix(v, ".tar"))
	}
	return st, nil
}

// normalizeUploadIDs reads {"upload_ids": {filename: id}}.
func normalizeUploadIDs(endpoint string, body []byte) (models.UploadIDs, error) {
	var payload struct {
		UploadIDs models.UploadIDs `json:"upload_ids"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.UploadIDs == nil {
		return nil, shapeErr(endpoint, body)
	}
	return payload.UploadIDs, nil
}
