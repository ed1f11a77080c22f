package console

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"rbconsole/internal/models"
)

// VendorsView is the registry plus the bulk form text and its inline error.
type VendorsView struct {
	Vendors   []models.Vendor
	BulkText  string
	FormError *FormError
}

type VendorsController struct {
	page
	api VendorsAPI

	mu    sync.Mutex
	state VendorsView
}

func NewVendors(api VendorsAPI, d Deps) *VendorsController {
	return &VendorsController{page: newPage("vendors", d), api: api}
}

func (c *VendorsController) Load(ctx context.Context) ([]models.Vendor, error) {
	var out []models.Vendor
	err := c.run(ctx, "vendor list", func(ctx context.Context) error {
		var err error
		out, err = c.api.ListVendors(ctx)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.state.Vendors = out
		c.mu.Unlock()
		return nil
	})
	return out, err
}

// Add registers one vendor. An empty risk defaults to medium.
func (c *VendorsController) Add(ctx context.Context, v models.Vendor) (models.Vendor, error) {
	var created models.Vendor
	err := c.run(ctx, "vendor add", func(ctx context.Context) error {
		v.Name = strings.TrimSpace(v.Name)
		if v.Name == "" {
			return formErr("name", "Name is required")
		}
		if v.Risk != "" && !v.Risk.IsValid() {
			return formErr("risk", fmt.Sprintf("Risk must be low, medium or high, got %q", v.Risk))
		}
		var err error
		created, err = c.api.CreateVendor(ctx, v)
		if err != nil {
			return err
		}
		c.notify.Info(fmt.Sprintf("Vendor %s added", created.Name))
		return c.refresh(ctx)
	})
	return created, err
}

// Bulk registers a JSON array of vendors. Invalid JSON is reported inline and
// the text is kept.
func (c *VendorsController) Bulk(ctx context.Context, text string) ([]models.Vendor, error) {
	c.mu.Lock()
	c.state.BulkText, c.state.FormError = text, nil
	c.mu.Unlock()

	var created []models.Vendor
	err := c.run(ctx, "vendor bulk", func(ctx context.Context) error {
		var vendors []models.Vendor
		if err := json.Unmarshal([]byte(text), &vendors); err != nil {
			ferr := formErr("bulk", "Invalid JSON")
			c.mu.Lock()
			c.state.FormError = ferr
			c.mu.Unlock()
			return ferr
		}
		var err error
		created, err = c.api.BulkCreateVendors(ctx, vendors)
		if err != nil {
			return err
		}
		c.notify.Info(fmt.Sprintf("%d vendors added", len(created)))
		c.mu.Lock()
		c.state.BulkText = ""
		c.mu.Unlock()
		return c.refresh(ctx)
	})
	return created, err
}

func (c *VendorsController) refresh(ctx context.Context) error {
	out, err := c.api.ListVendors(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Vendors = out
	c.mu.Unlock()
	return nil
}

func (c *VendorsController) View() (VendorsView, error) {
	if err := c.view(); err != nil {
		return VendorsView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, nil
}
