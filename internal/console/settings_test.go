package console

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/console/mocks"
	"rbconsole/internal/models"
)

func TestLicenseUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSettingsAPI(ctrl)
	rec := &Recorder{}
	page := NewSettings(api, Deps{Notifier: rec})

	file := apiclient.File{Name: "acme.lic", Content: strings.NewReader("LICENSE")}
	api.EXPECT().UploadLicense(gomock.Any(), file).Return(models.License{Org: "Acme", Edition: "enterprise", Valid: true}, nil)

	lic, err := page.UploadLicense(context.Background(), file)
	require.NoError(t, err)
	assert.True(t, lic.Valid)
	assert.Equal(t, []string{"License uploaded", "Org: Acme"}, rec.Messages())

	v, err := page.View()
	require.NoError(t, err)
	require.NotNil(t, v.License)
	assert.Equal(t, "enterprise", v.License.Edition)
}

func TestRollbackOnlyToAvailableVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSettingsAPI(ctrl)
	rec := &Recorder{}
	page := NewSettings(api, Deps{Notifier: rec})
	ctx := context.Background()

	status := models.RulePackStatus{Current: "2024.06", Available: []string{"2024.05", "2024.04"}}
	api.EXPECT().RulePackStatus(gomock.Any()).Return(status, nil).Times(1)

	_, err := page.Rollback(ctx, "2023.01")
	var ferr *FormError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "version", ferr.Field)

	// the status fetched for the check is kept for the next rollback
	v, err := page.View()
	require.NoError(t, err)
	require.NotNil(t, v.RulePack)
	assert.Equal(t, "2024.06", v.RulePack.Current)

	after := models.RulePackStatus{Current: "2024.05", Available: []string{"2024.06", "2024.04"}}
	gomock.InOrder(
		api.EXPECT().RollbackRulePack(gomock.Any(), "2024.05").
			Return(models.RulePackChange{Version: "2024.05", ControlCount: 120}, nil),
		api.EXPECT().RulePackStatus(gomock.Any()).Return(after, nil),
	)
	_, err = page.Rollback(ctx, "2024.05")
	require.NoError(t, err)

	v, _ = page.View()
	assert.Equal(t, "2024.05", v.RulePack.Current)
	assert.Equal(t, []string{"Rolled back to 2024.05"}, rec.Messages())
}

func TestRollbackUnknownOnBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSettingsAPI(ctrl)
	page := NewSettings(api, Deps{})

	api.EXPECT().RulePackStatus(gomock.Any()).Return(models.RulePackStatus{Available: []string{"v1"}}, nil)
	api.EXPECT().RollbackRulePack(gomock.Any(), "v1").
		Return(models.RulePackChange{}, fmt.Errorf("%w: 404", apiclient.ErrUnknownVersion))

	_, err := page.Rollback(context.Background(), "v1")
	var ferr *FormError
	assert.ErrorAs(t, err, &ferr)
}

func TestUploadRulePack(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSettingsAPI(ctrl)
	rec := &Recorder{}
	page := NewSettings(api, Deps{Notifier: rec})

	file := apiclient.File{Name: "pack.tar", Content: strings.NewReader("tar")}
	api.EXPECT().UploadRulePack(gomock.Any(), file, true).
		Return(models.RulePackChange{Version: "2024.07", ControlCount: 130, Frameworks: []string{"CIS", "SOC2"}}, nil)
	api.EXPECT().RulePackStatus(gomock.Any()).Return(models.RulePackStatus{Current: "2024.07"}, nil)

	_, err := page.UploadRulePack(context.Background(), file, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rule pack 2024.07 uploaded: 130 controls (CIS, SOC2)"}, rec.Messages())
	v, _ := page.View()
	assert.Equal(t, "2024.07", v.Change.Version)
}
