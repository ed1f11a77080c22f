package console

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rbconsole/internal/console/mocks"
	"rbconsole/internal/models"
)

func newExceptionsPage(t *testing.T) (*ExceptionsController, *mocks.MockExceptionsAPI, *Recorder) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockExceptionsAPI(ctrl)
	rec := &Recorder{}
	page := NewExceptions(api, Deps{Notifier: rec})
	page.clock = func() time.Time { return time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC) }
	return page, api, rec
}

func validForm() ExceptionForm {
	return ExceptionForm{
		ControlID: "S3_PUBLIC_READ",
		Selector:  `{"asset_id": "arn:aws:s3:::logs"}`,
		Reason:    "access logs bucket",
		ExpiresAt: "2024-06-01",
	}
}

func TestExceptionFormValidation(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*ExceptionForm)
		field string
		msg   string
	}{
		{"invalid selector json", func(f *ExceptionForm) { f.Selector = `{"asset_id":` }, "selector", "Selector must be valid JSON"},
		{"selector array", func(f *ExceptionForm) { f.Selector = `["a"]` }, "selector", "Selector must be valid JSON"},
		{"selector without match key", func(f *ExceptionForm) { f.Selector = `{"region":"eu-west-1"}` }, "selector", "Selector must include one of asset_id, type, env, cloud"},
		{"missing control", func(f *ExceptionForm) { f.ControlID = " " }, "control_id", "Control is required"},
		{"missing reason", func(f *ExceptionForm) { f.Reason = "" }, "reason", "Reason is required"},
		{"bad date", func(f *ExceptionForm) { f.ExpiresAt = "06/30/2024" }, "expires_at", "Expiry must be a date (YYYY-MM-DD)"},
		{"past date", func(f *ExceptionForm) { f.ExpiresAt = "2024-05-31" }, "expires_at", "Expiry must not be in the past"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, _, rec := newExceptionsPage(t)
			form := validForm()
			tc.edit(&form)

			_, err := page.Create(context.Background(), form)
			var ferr *FormError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, tc.field, ferr.Field)
			assert.Equal(t, tc.msg, ferr.Message)

			v, err := page.View()
			require.NoError(t, err)
			assert.Equal(t, form, v.Form, "input is kept as typed")
			assert.Equal(t, ferr, v.FormError)
			assert.Empty(t, rec.Messages())
		})
	}
}

func TestExceptionCreateRefreshesAndClearsForm(t *testing.T) {
	page, api, rec := newExceptionsPage(t)
	ctx := context.Background()

	api.EXPECT().ListExceptions(gomock.Any(), true).Return(nil, nil)
	_, err := page.Load(ctx, true)
	require.NoError(t, err)

	created := models.Exception{ID: "ex-1", ControlID: "S3_PUBLIC_READ"}
	api.EXPECT().CreateException(gomock.Any(), models.ExceptionCreate{
		ControlID: "S3_PUBLIC_READ",
		Selector:  map[string]any{"asset_id": "arn:aws:s3:::logs"},
		Reason:    "access logs bucket",
		ExpiresAt: "2024-06-01",
	}).Return(created, nil)
	api.EXPECT().ListExceptions(gomock.Any(), true).Return([]models.Exception{created}, nil)

	got, err := page.Create(ctx, validForm())
	require.NoError(t, err)
	assert.Equal(t, "ex-1", got.ID)

	v, err := page.View()
	require.NoError(t, err)
	assert.Equal(t, ExceptionForm{}, v.Form)
	assert.Nil(t, v.FormError)
	assert.Len(t, v.Exceptions, 1)
	assert.Equal(t, []string{"Exception created for S3_PUBLIC_READ"}, rec.Messages())
}

func TestExceptionDelete(t *testing.T) {
	page, api, _ := newExceptionsPage(t)
	gomock.InOrder(
		api.EXPECT().DeleteException(gomock.Any(), "ex-1").Return(nil),
		api.EXPECT().ListExceptions(gomock.Any(), false).Return([]models.Exception{}, nil),
	)
	require.NoError(t, page.Delete(context.Background(), "ex-1"))
}
