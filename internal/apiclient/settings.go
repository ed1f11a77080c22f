package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"rbconsole/internal/models"
)

func (c *Client) GetLicense(ctx context.Context) (models.License, error) {
	var out models.License
	err := c.decode(ctx, call{method: "GET", path: "/settings/license"}, &out)
	return out, err
}

// UploadLicense installs a license file and returns the resulting license.
func (c *Client) UploadLicense(ctx context.Context, f File) (models.License, error) {
	body, contentType, err := multipartBody("file", []File{f})
	if err != nil {
		return models.License{}, err
	}
	var out models.License
	err = c.decode(ctx, call{method: "POST", path: "/settings/license/upload", body: body, contentType: contentType}, &out)
	return out, err
}

// RulePackStatus reads /rules/status, falling back to /settings/rulepacks on
// backends that predate it.
func (c *Client) RulePackStatus(ctx context.Context) (models.RulePackStatus, error) {
	cl := call{method: "GET", path: "/rules/status"}
	raw, err := c.raw(ctx, cl)
	if StatusOf(err) == http.StatusNotFound {
		c.logger.DebugContext(ctx, "rules/status missing, using settings/rulepacks")
		cl = call{method: "GET", path: "/settings/rulepacks"}
		raw, err = c.raw(ctx, cl)
	}
	if err != nil {
		return models.RulePackStatus{}, err
	}
	st, err := normalizeRulePackStatus(cl.endpoint(), raw)
	if err != nil {
		return models.RulePackStatus{}, c.shape(ctx, err)
	}
	return st, nil
}

// UploadRulePack uploads a rule pack archive; apply activates it at once.
func (c *Client) UploadRulePack(ctx context.Context, f File, apply bool) (models.RulePackChange, error) {
	body, contentType, err := multipartBody("file", []File{f})
	if err != nil {
		return models.RulePackChange{}, err
	}
	var out models.RulePackChange
	err = c.decode(ctx, call{
		method:      "POST",
		path:        "/rules/upload",
		query:       url.Values{"apply": {strconv.FormatBool(apply)}},
		body:        body,
		contentType: contentType,
	}, &out)
	return out, err
}

// ErrUnknownVersion is returned by RollbackRulePack for a version the backend
// does not keep.
var ErrUnknownVersion = errors.New("rule pack version not found")

func (c *Client) RollbackRulePack(ctx context.Context, version string) (models.RulePackChange, error) {
	var out models.RulePackChange
	err := c.decode(ctx, call{
		method: "POST",
		path:   "/rules/rollback",
		query:  url.Values{"version": {version}},
	}, &out)
	if StatusOf(err) == http.StatusNotFound {
		return models.RulePackChange{}, errors.Join(ErrUnknownVersion, err)
	}
	return out, err
}
