package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/models"
)

// EvaluateView is the run being watched. Exhausted is set when polling gave
// up before a terminal status; Run then holds the last status seen.
type EvaluateView struct {
	Run       *models.Run
	Exhausted bool
}

// EvaluateController starts evaluation runs and polls them to completion.
type EvaluateController struct {
	page
	api EvaluateAPI

	mu    sync.Mutex
	state EvaluateView
}

func NewEvaluate(api EvaluateAPI, d Deps) *EvaluateController {
	return &EvaluateController{page: newPage("evaluate", d), api: api}
}

// Run starts an evaluation and waits for it. onTick sees every polled status.
func (c *EvaluateController) Run(ctx context.Context, onTick func(models.Run)) (EvaluateView, error) {
	var v EvaluateView
	err := c.run(ctx, "evaluation", func(ctx context.Context) error {
		run, err := c.api.StartEvaluation(ctx)
		if err != nil {
			return err
		}
		c.logger.InfoContext(ctx, "evaluation started", "run_id", run.RunID)
		c.set(EvaluateView{Run: &run})

		v, err = c.wait(ctx, run, onTick)
		return err
	})
	return v, err
}

// Start triggers a run without waiting for it.
func (c *EvaluateController) Start(ctx context.Context) (models.Run, error) {
	var run models.Run
	err := c.run(ctx, "evaluation", func(ctx context.Context) error {
		var err error
		if run, err = c.api.StartEvaluation(ctx); err != nil {
			return err
		}
		c.notify.Info(fmt.Sprintf("Evaluation %s queued", run.RunID))
		c.set(EvaluateView{Run: &run})
		return nil
	})
	return run, err
}

// Watch polls an existing run.
func (c *EvaluateController) Watch(ctx context.Context, runID string, onTick func(models.Run)) (EvaluateView, error) {
	var v EvaluateView
	err := c.run(ctx, "evaluation", func(ctx context.Context) error {
		if runID == "" {
			return formErr("run_id", "Run id is required")
		}
		var err error
		v, err = c.wait(ctx, models.Run{RunID: runID}, onTick)
		return err
	})
	return v, err
}

func (c *EvaluateController) wait(ctx context.Context, run models.Run, onTick func(models.Run)) (EvaluateView, error) {
	if run.Status.Terminal() {
		return c.finish(run), nil
	}
	last, err := c.api.WaitForRun(ctx, run.RunID, func(r models.Run) {
		c.set(EvaluateView{Run: &r})
		if onTick != nil {
			onTick(r)
		}
	})
	switch {
	case errors.Is(err, apiclient.ErrPollExhausted):
		v := EvaluateView{Run: &last, Exhausted: true}
		c.set(v)
		c.notify.Error(fmt.Sprintf("Evaluation still %s, check again later", last.Status))
		return v, nil
	case err != nil:
		return EvaluateView{}, err
	}
	return c.finish(last), nil
}

func (c *EvaluateController) finish(run models.Run) EvaluateView {
	v := EvaluateView{Run: &run}
	c.set(v)
	msg := fmt.Sprintf("Evaluation %s", run.Status)
	if run.Status == models.RunFailed {
		c.notify.Error(msg)
	} else {
		c.notify.Info(msg)
	}
	return v
}

// Status fetches a run once without polling.
func (c *EvaluateController) Status(ctx context.Context, runID string) (models.Run, error) {
	var run models.Run
	err := c.run(ctx, "run status", func(ctx context.Context) error {
		var err error
		run, err = c.api.GetRun(ctx, runID)
		if err == nil {
			c.set(EvaluateView{Run: &run})
		}
		return err
	})
	return run, err
}

// Latest returns the most recent run, or nil before the first evaluation.
func (c *EvaluateController) Latest(ctx context.Context) (*models.Run, error) {
	var run *models.Run
	err := c.run(ctx, "latest run", func(ctx context.Context) error {
		var err error
		run, err = c.api.LatestRun(ctx)
		return err
	})
	return run, err
}

func (c *EvaluateController) set(v EvaluateView) {
	c.mu.Lock()
	c.state = v
	c.mu.Unlock()
}

func (c *EvaluateController) View() (EvaluateView, error) {
	if err := c.view(); err != nil {
		return EvaluateView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, nil
}
