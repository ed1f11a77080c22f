package apiclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/codeGROOVE-dev/retry"

	"rbconsole/internal/models"
)

var errRunPending = errors.New("run not finished")

// WaitForRun polls a run at a fixed interval until it reaches a terminal
// status. A failed request stops polling at once. When every attempt is used
// the last seen run is returned together with ErrPollExhausted. onTick, if
// set, sees each observed state.
func (c *Client) WaitForRun(ctx context.Context, runID string, onTick func(models.Run)) (models.Run, error) {
	var last models.Run
	err := retry.Do(
		func() error {
			run, err := c.GetRun(ctx, runID)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			last = run
			if onTick != nil {
				onTick(run)
			}
			if !run.Status.Terminal() {
				return errRunPending
			}
			return nil
		},
		retry.Attempts(c.pollAttempts),
		retry.Delay(c.pollDelay),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	switch {
	case err == nil:
		return last, nil
	case errors.Is(err, errRunPending):
		c.logger.WarnContext(ctx, "gave up waiting for run",
			"run_id", runID,
			"attempts", c.pollAttempts,
			"last_status", last.Status,
		)
		return last, fmt.Errorf("run %s still %s: %w", runID, last.Status, ErrPollExhausted)
	default:
		return last, err
	}
}
