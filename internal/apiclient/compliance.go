package apiclient

import (
	"context"
	"io"
	"net/url"

	"rbconsole/internal/models"
)

// ComplianceSummary fetches the requirement matrix for framework.
func (c *Client) ComplianceSummary(ctx context.Context, framework string) (models.ComplianceMatrix, error) {
	cl := call{method: "GET", path: "/compliance/summary", query: url.Values{"framework": {framework}}}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return models.ComplianceMatrix{}, err
	}
	m, err := normalizeCompliance(cl.endpoint(), raw)
	if err != nil {
		return models.ComplianceMatrix{}, c.shape(ctx, err)
	}
	return m, nil
}

// EvidencePack streams the framework's evidence PDF to w.
func (c *Client) EvidencePack(ctx context.Context, framework string, w io.Writer) (Download, error) {
	return c.download(ctx, call{
		method: "GET",
		path:   "/compliance/evidence-pack",
		query:  url.Values{"framework": {framework}},
		accept: "application/pdf",
	}, "evidence_"+framework+".pdf", w)
}
