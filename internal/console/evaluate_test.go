package console

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/console/mocks"
	"rbconsole/internal/models"
)

func TestEvaluateRunPollsToCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockEvaluateAPI(ctrl)
	rec := &Recorder{}
	page := NewEvaluate(api, Deps{Notifier: rec})

	api.EXPECT().StartEvaluation(gomock.Any()).Return(models.Run{RunID: "r1", Status: models.RunQueued}, nil)
	api.EXPECT().WaitForRun(gomock.Any(), "r1", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, onTick func(models.Run)) (models.Run, error) {
			onTick(models.Run{RunID: id, Status: models.RunRunning})
			done := models.Run{RunID: id, Status: models.RunCompleted, AssetsCount: 12}
			onTick(done)
			return done, nil
		})

	var seen []models.RunStatus
	v, err := page.Run(context.Background(), func(r models.Run) { seen = append(seen, r.Status) })
	require.NoError(t, err)
	assert.Equal(t, []models.RunStatus{models.RunRunning, models.RunCompleted}, seen)
	assert.Equal(t, 12, v.Run.AssetsCount)
	assert.False(t, v.Exhausted)
	assert.Equal(t, []string{"Evaluation completed"}, rec.Messages())
}

func TestEvaluateReportsLastStatusWhenPollingGivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockEvaluateAPI(ctrl)
	rec := &Recorder{}
	page := NewEvaluate(api, Deps{Notifier: rec})

	last := models.Run{RunID: "r2", Status: models.RunRunning}
	api.EXPECT().WaitForRun(gomock.Any(), "r2", gomock.Any()).
		Return(last, fmt.Errorf("run r2 still running: %w", apiclient.ErrPollExhausted))

	v, err := page.Watch(context.Background(), "r2", nil)
	require.NoError(t, err)
	assert.True(t, v.Exhausted)
	assert.Equal(t, models.RunRunning, v.Run.Status)
	assert.Equal(t, []string{"Evaluation still running, check again later"}, rec.Messages())
}

func TestEvaluateFailedRunIsErrorToast(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockEvaluateAPI(ctrl)
	rec := &Recorder{}
	page := NewEvaluate(api, Deps{Notifier: rec})

	now := time.Now()
	api.EXPECT().StartEvaluation(gomock.Any()).Return(models.Run{RunID: "r3", Status: models.RunFailed, FinishedAt: &now}, nil)

	v, err := page.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.RunFailed, v.Run.Status)
	require.Len(t, rec.Notices(), 1)
	assert.Equal(t, Notice{Error: true, Message: "Evaluation failed"}, rec.Notices()[0])
}

func TestEvaluateLatestAndStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockEvaluateAPI(ctrl)
	page := NewEvaluate(api, Deps{})
	ctx := context.Background()

	api.EXPECT().LatestRun(gomock.Any()).Return(nil, nil)
	run, err := page.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, run)

	api.EXPECT().GetRun(gomock.Any(), "r9").Return(models.Run{RunID: "r9", Status: models.RunQueued}, nil)
	got, err := page.Status(ctx, "r9")
	require.NoError(t, err)
	assert.Equal(t, models.RunQueued, got.Status)
}

func TestEvaluateStartDoesNotPoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockEvaluateAPI(ctrl)
	rec := &Recorder{}
	page := NewEvaluate(api, Deps{Notifier: rec})

	api.EXPECT().StartEvaluation(gomock.Any()).Return(models.Run{RunID: "r5", Status: models.RunQueued}, nil)
	run, err := page.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "r5", run.RunID)
	assert.Equal(t, []string{"Evaluation r5 queued"}, rec.Messages())
}
