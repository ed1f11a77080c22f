package console

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/console/mocks"
	"rbconsole/internal/models"
)

func TestDetectCloud(t *testing.T) {
	cases := []struct {
		name string
		want models.Cloud
	}{
		{"aws_s3_inventory.csv", models.CloudAWS},
		{"exports/EC2-instances.json", models.CloudAWS},
		{"azure_vms.json", models.CloudAzure},
		{"az_storage_accounts.csv", models.CloudAzure},
		{"gcp-buckets.json", models.CloudGCP},
		{"google_projects.csv", models.CloudGCP},
		{"main.tf", models.CloudIaC},
		{"aws_cloudformation.yaml", models.CloudIaC},
		{"prod.tfstate", models.CloudIaC},
		{"inventory.csv", models.CloudGCP},
		{"awsome_things.csv", models.CloudGCP},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectCloud(tc.name, models.CloudGCP))
		})
	}
}

func TestPermissionLines(t *testing.T) {
	lines := PermissionLines(models.PermissionReport{
		Granted: []string{"s3:ListBuckets"},
		Missing: []string{"ec2:DescribeInstances"},
		Note:    "read-only role assumed",
	})
	assert.Equal(t, []string{
		"ec2:DescribeInstances: missing",
		"s3:ListBuckets: granted",
		"read-only role assumed",
	}, lines)
}

// =============================================================================
// Ingest Controller Test Suite
// =============================================================================
// The controller owns the upload-then-parse fan-out: files are uploaded in one
// request and each detected cloud gets exactly one parse call.

type IngestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	api   *mocks.MockIngestAPI
	toast *Recorder
	page  *IngestController
}

func TestIngestSuite(t *testing.T) {
	suite.Run(t, new(IngestSuite))
}

func (s *IngestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockIngestAPI(s.ctrl)
	s.toast = &Recorder{}
	s.page = NewIngest(s.api, models.CloudAWS, Deps{
		Notifier: s.toast,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func (s *IngestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func files(names ...string) []apiclient.File {
	out := make([]apiclient.File, 0, len(names))
	for _, n := range names {
		out = append(out, apiclient.File{Name: n, Content: strings.NewReader("x")})
	}
	return out
}

func (s *IngestSuite) TestSingleInventoryFile() {
	ctx := context.Background()
	s.api.EXPECT().UploadFiles(ctx, gomock.Len(1)).
		Return(models.UploadIDs{"aws_s3_inventory.csv": "1"}, nil)
	s.api.EXPECT().Parse(gomock.Any(), models.CloudAWS, "1").
		Return(models.IngestOutcome{Ingested: 1}, nil)

	view, err := s.page.Upload(ctx, files("aws_s3_inventory.csv"))
	s.Require().NoError(err)
	s.Equal(1, view.Ingested)
	s.Equal([]string{"1 files uploaded", "Ingested 1 assets"}, s.toast.Messages())
}

func (s *IngestSuite) TestOneParsePerCloudGroupAndSum() {
	ids := models.UploadIDs{
		"aws_ec2.json":   "1",
		"aws_s3.csv":     "2",
		"azure_vms.json": "3",
		"network.tf":     "4",
		"misc.csv":       "5", // no hint, falls back to aws
	}
	s.api.EXPECT().UploadFiles(gomock.Any(), gomock.Len(5)).Return(ids, nil)

	var mu sync.Mutex
	calls := map[models.Cloud][]string{}
	record := func(_ context.Context, cloud models.Cloud, uploadIDs ...string) (models.IngestOutcome, error) {
		mu.Lock()
		defer mu.Unlock()
		calls[cloud] = append(calls[cloud], uploadIDs...)
		return models.IngestOutcome{Ingested: len(uploadIDs) * 10}, nil
	}
	s.api.EXPECT().Parse(gomock.Any(), models.CloudAWS, gomock.Any(), gomock.Any(), gomock.Any()).Times(1).DoAndReturn(record)
	s.api.EXPECT().Parse(gomock.Any(), models.CloudAzure, gomock.Any()).Times(1).DoAndReturn(record)
	s.api.EXPECT().Parse(gomock.Any(), models.CloudIaC, gomock.Any()).Times(1).DoAndReturn(record)

	view, err := s.page.Upload(context.Background(), files("aws_ec2.json", "aws_s3.csv", "azure_vms.json", "network.tf", "misc.csv"))
	s.Require().NoError(err)

	s.ElementsMatch([]string{"1", "2", "5"}, calls[models.CloudAWS])
	s.Equal([]string{"3"}, calls[models.CloudAzure])
	s.Equal([]string{"4"}, calls[models.CloudIaC])
	s.Equal(50, view.Ingested)
	s.Len(view.Groups, 3)
	s.Contains(s.toast.Messages(), "Ingested 50 assets")
	s.Contains(s.toast.Messages(), "5 files uploaded")
}

func (s *IngestSuite) TestParseFailureFailsUpload() {
	s.api.EXPECT().UploadFiles(gomock.Any(), gomock.Any()).
		Return(models.UploadIDs{"aws.csv": "1", "gcp.csv": "2"}, nil)
	s.api.EXPECT().Parse(gomock.Any(), models.CloudAWS, "1").
		Return(models.IngestOutcome{Ingested: 3}, nil).AnyTimes()
	s.api.EXPECT().Parse(gomock.Any(), models.CloudGCP, "2").
		Return(models.IngestOutcome{}, &apiclient.APIError{Status: 422, Endpoint: "POST /ingest/parse", Detail: "bad csv"})

	_, err := s.page.Upload(context.Background(), files("aws.csv", "gcp.csv"))
	s.Require().Error(err)
	s.Contains(err.Error(), "parse gcp")
	s.Contains(s.toast.Messages()[len(s.toast.Messages())-1], "Upload failed: parse gcp")
}

func (s *IngestSuite) TestUploadWithoutFilesIsInline() {
	_, err := s.page.Upload(context.Background(), nil)
	var ferr *FormError
	s.Require().True(errors.As(err, &ferr))
	s.Equal("files", ferr.Field)
	s.Empty(s.toast.Messages())
}

func (s *IngestSuite) TestLivePartialFailure() {
	s.api.EXPECT().StartLive(gomock.Any(), models.CloudAzure).
		Return(models.IngestOutcome{Ingested: 7, Errors: []string{"vm-1: access denied", "vm-2: timeout"}}, nil)

	view, err := s.page.StartLive(context.Background(), models.CloudAzure)
	s.Require().NoError(err)
	s.Equal(7, view.Ingested)
	s.Len(view.Errors, 2)
	s.Equal([]string{"Ingested 7 assets", "2 assets failed"}, s.toast.Messages())
}

func (s *IngestSuite) TestLiveRejectsIaC() {
	_, err := s.page.StartLive(context.Background(), models.CloudIaC)
	var ferr *FormError
	s.True(errors.As(err, &ferr))
}

func (s *IngestSuite) TestCheckPermissions() {
	s.api.EXPECT().ValidatePermissions(gomock.Any(), models.CloudAWS).
		Return(models.PermissionReport{Granted: []string{"s3:List"}, Missing: []string{"iam:Get"}}, nil)

	lines, err := s.page.CheckPermissions(context.Background(), models.CloudAWS)
	s.Require().NoError(err)
	s.Equal([]string{"iam:Get: missing", "s3:List: granted"}, lines)

	view, err := s.page.View()
	s.Require().NoError(err)
	s.Equal(lines, view.Permissions)
	s.Equal([]string{"1 aws permissions missing"}, s.toast.Messages())
}

func (s *IngestSuite) TestLoadDemo() {
	s.api.EXPECT().LoadDemo(gomock.Any()).Return(models.IngestOutcome{Ingested: 42}, nil)
	view, err := s.page.LoadDemo(context.Background())
	s.Require().NoError(err)
	s.Equal(42, view.Ingested)
	s.Equal([]string{"Ingested 42 assets"}, s.toast.Messages())
}
