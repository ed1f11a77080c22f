package apiclient

import (
	"context"
	"fmt"

	"rbconsole/internal/models"
)

// StartEvaluation triggers a run over every ingested asset.
func (c *Client) StartEvaluation(ctx context.Context) (models.Run, error) {
	var run models.Run
	cl := call{method: "POST", path: "/evaluate/run"}
	if err := c.decode(ctx, cl, &run); err != nil {
		return models.Run{}, err
	}
	if run.RunID == "" {
		return models.Run{}, c.shape(ctx, fmt.Errorf("%w: %s returned no run_id", ErrUnrecognizedShape, cl.endpoint()))
	}
	if run.Status == "" {
		run.Status = models.RunQueued
	}
	return run, nil
}

func (c *Client) GetRun(ctx context.Context, runID string) (models.Run, error) {
	cl := call{method: "GET", path: "/evaluate/runs/" + escape(runID)}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return models.Run{}, err
	}
	run, err := normalizeRun(cl.endpoint(), raw)
	if err != nil {
		return models.Run{}, c.shape(ctx, err)
	}
	if run == nil {
		return models.Run{}, c.shape(ctx, shapeErr(cl.endpoint(), raw))
	}
	return *run, nil
}

// LatestRun returns nil when nothing has been evaluated yet.
func (c *Client) LatestRun(ctx context.Context) (*models.Run, error) {
	cl := call{method: "GET", path: "/evaluate/runs/latest"}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return nil, err
	}
	run, err := normalizeRun(cl.endpoint(), raw)
	if err != nil {
		return nil, c.shape(ctx, err)
	}
	return run, nil
}
