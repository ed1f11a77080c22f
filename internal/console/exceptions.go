package console

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"rbconsole/internal/models"
)

const dateLayout = "2006-01-02"

// selectorKeys are the fields the backend matches waivers on. A selector
// needs at least one of them.
var selectorKeys = []string{"asset_id", "type", "env", "cloud"}

// ExceptionForm is the create form as typed by the operator. Selector is
// raw JSON text.
type ExceptionForm struct {
	ControlID string
	Selector  string
	Reason    string
	ExpiresAt string
}

// ExceptionsView is the waiver list plus the form and its inline error.
type ExceptionsView struct {
	ActiveOnly bool
	Exceptions []models.Exception
	Form       ExceptionForm
	FormError  *FormError
}

// ExceptionsController lists, creates and deletes waivers.
type ExceptionsController struct {
	page
	api   ExceptionsAPI
	clock func() time.Time

	mu    sync.Mutex
	state ExceptionsView
}

func NewExceptions(api ExceptionsAPI, d Deps) *ExceptionsController {
	return &ExceptionsController{page: newPage("exceptions", d), api: api, clock: time.Now}
}

// Load fetches waivers, optionally only those not yet expired.
func (c *ExceptionsController) Load(ctx context.Context, activeOnly bool) ([]models.Exception, error) {
	var out []models.Exception
	err := c.run(ctx, "exception list", func(ctx context.Context) error {
		var err error
		out, err = c.api.ListExceptions(ctx, activeOnly)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.state.ActiveOnly, c.state.Exceptions = activeOnly, out
		c.mu.Unlock()
		return nil
	})
	return out, err
}

// Create validates form locally and submits it. On a validation error the
// form is kept as typed and the error is exposed inline.
func (c *ExceptionsController) Create(ctx context.Context, form ExceptionForm) (models.Exception, error) {
	c.mu.Lock()
	c.state.Form, c.state.FormError = form, nil
	c.mu.Unlock()

	var created models.Exception
	err := c.run(ctx, "exception create", func(ctx context.Context) error {
		in, ferr := c.validate(form)
		if ferr != nil {
			c.mu.Lock()
			c.state.FormError = ferr
			c.mu.Unlock()
			return ferr
		}
		var err error
		created, err = c.api.CreateException(ctx, in)
		if err != nil {
			return err
		}
		c.logger.InfoContext(ctx, "exception created", "id", created.ID, "control_id", created.ControlID)
		c.notify.Info(fmt.Sprintf("Exception created for %s", in.ControlID))

		c.mu.Lock()
		c.state.Form = ExceptionForm{}
		c.mu.Unlock()
		return c.refresh(ctx)
	})
	return created, err
}

// Delete removes a waiver and refreshes the list.
func (c *ExceptionsController) Delete(ctx context.Context, id string) error {
	return c.run(ctx, "exception delete", func(ctx context.Context) error {
		if err := c.api.DeleteException(ctx, id); err != nil {
			return err
		}
		c.notify.Info("Exception deleted")
		return c.refresh(ctx)
	})
}

func (c *ExceptionsController) refresh(ctx context.Context) error {
	c.mu.Lock()
	activeOnly := c.state.ActiveOnly
	c.mu.Unlock()
	out, err := c.api.ListExceptions(ctx, activeOnly)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Exceptions = out
	c.mu.Unlock()
	return nil
}

func (c *ExceptionsController) validate(f ExceptionForm) (models.ExceptionCreate, *FormError) {
	in := models.ExceptionCreate{
		ControlID: strings.TrimSpace(f.ControlID),
		Reason:    strings.TrimSpace(f.Reason),
		ExpiresAt: strings.TrimSpace(f.ExpiresAt),
	}
	if in.ControlID == "" {
		return in, formErr("control_id", "Control is required")
	}
	if err := json.Unmarshal([]byte(f.Selector), &in.Selector); err != nil || in.Selector == nil {
		return in, formErr("selector", "Selector must be valid JSON")
	}
	if !hasSelectorKey(in.Selector) {
		return in, formErr("selector", "Selector must include one of "+strings.Join(selectorKeys, ", "))
	}
	if in.Reason == "" {
		return in, formErr("reason", "Reason is required")
	}
	expires, err := time.Parse(dateLayout, in.ExpiresAt)
	if err != nil {
		return in, formErr("expires_at", "Expiry must be a date (YYYY-MM-DD)")
	}
	today, _ := time.Parse(dateLayout, c.clock().Format(dateLayout))
	if expires.Before(today) {
		return in, formErr("expires_at", "Expiry must not be in the past")
	}
	return in, nil
}

func hasSelectorKey(sel map[string]any) bool {
	for _, k := range selectorKeys {
		if v, ok := sel[k]; ok && v != nil && v != "" {
			return true
		}
	}
	return false
}

func (c *ExceptionsController) View() (ExceptionsView, error) {
	if err := c.view(); err != nil {
		return ExceptionsView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, nil
}
