package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/models"
)

// SettingsView covers the license and rule pack pages.
type SettingsView struct {
	License  *models.License
	RulePack *models.RulePackStatus
	Change   *models.RulePackChange
}

// SettingsController manages the product license and rule packs.
type SettingsController struct {
	page
	api SettingsAPI

	mu    sync.Mutex
	state SettingsView
}

func NewSettings(api SettingsAPI, d Deps) *SettingsController {
	return &SettingsController{page: newPage("settings", d), api: api}
}

func (c *SettingsController) License(ctx context.Context) (models.License, error) {
	var lic models.License
	err := c.run(ctx, "license", func(ctx context.Context) error {
		var err error
		lic, err = c.api.GetLicense(ctx)
		if err == nil {
			c.setLicense(lic)
		}
		return err
	})
	return lic, err
}

// UploadLicense installs a license file and shows the licensed org.
func (c *SettingsController) UploadLicense(ctx context.Context, f apiclient.File) (models.License, error) {
	var lic models.License
	err := c.run(ctx, "license upload", func(ctx context.Context) error {
		var err error
		lic, err = c.api.UploadLicense(ctx, f)
		if err != nil {
			return err
		}
		c.setLicense(lic)
		c.notify.Info("License uploaded")
		if lic.Org != "" {
			c.notify.Info("Org: " + lic.Org)
		}
		return nil
	})
	return lic, err
}

func (c *SettingsController) setLicense(lic models.License) {
	c.mu.Lock()
	c.state.License = &lic
	c.mu.Unlock()
}

func (c *SettingsController) RulePacks(ctx context.Context) (models.RulePackStatus, error) {
	var st models.RulePackStatus
	err := c.run(ctx, "rule pack status", func(ctx context.Context) error {
		var err error
		st, err = c.api.RulePackStatus(ctx)
		if err == nil {
			c.mu.Lock()
			c.state.RulePack = &st
			c.mu.Unlock()
		}
		return err
	})
	return st, err
}

// UploadRulePack installs a pack; apply makes it current right away.
func (c *SettingsController) UploadRulePack(ctx context.Context, f apiclient.File, apply bool) (models.RulePackChange, error) {
	var ch models.RulePackChange
	err := c.run(ctx, "rule pack upload", func(ctx context.Context) error {
		var err error
		ch, err = c.api.UploadRulePack(ctx, f, apply)
		if err != nil {
			return err
		}
		c.notify.Info(fmt.Sprintf("Rule pack %s uploaded: %d controls (%s)", ch.Version, ch.ControlCount, strings.Join(ch.Frameworks, ", ")))
		return c.afterChange(ctx, ch)
	})
	return ch, err
}

// Rollback switches to a previously installed version. The version must be
// one of the available ones; status is fetched first when not yet loaded.
func (c *SettingsController) Rollback(ctx context.Context, version string) (models.RulePackChange, error) {
	var ch models.RulePackChange
	err := c.run(ctx, "rule pack rollback", func(ctx context.Context) error {
		c.mu.Lock()
		st := c.state.RulePack
		c.mu.Unlock()
		if st == nil {
			loaded, err := c.api.RulePackStatus(ctx)
			if err != nil {
				return err
			}
			st = &loaded
			c.mu.Lock()
			c.state.RulePack = st
			c.mu.Unlock()
		}
		if !st.HasVersion(version) {
			return formErr("version", fmt.Sprintf("Version %q is not available for rollback", version))
		}
		var err error
		ch, err = c.api.RollbackRulePack(ctx, version)
		if errors.Is(err, apiclient.ErrUnknownVersion) {
			return formErr("version", fmt.Sprintf("Version %q is not available for rollback", version))
		}
		if err != nil {
			return err
		}
		c.notify.Info(fmt.Sprintf("Rolled back to %s", ch.Version))
		return c.afterChange(ctx, ch)
	})
	return ch, err
}

func (c *SettingsController) afterChange(ctx context.Context, ch models.RulePackChange) error {
	st, err := c.api.RulePackStatus(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Change, c.state.RulePack = &ch, &st
	c.mu.Unlock()
	return nil
}

func (c *SettingsController) View() (SettingsView, error) {
	if err := c.view(); err != nil {
		return SettingsView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, nil
}
