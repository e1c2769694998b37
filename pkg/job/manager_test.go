package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/pkg/logger"
)

func TestNewManager_NilPool(t *testing.T) {
	t.Parallel()

	_, err := NewManager(nil)
	require.ErrorIs(t, err, ErrPoolRequired)
}

func TestQueueConfig(t *testing.T) {
	t.Parallel()

	cfg := newConfig()
	cfg.maxWorkers = 4
	WithTask[testPayload](&queuedTestTask{testTask{name: "thumbs", queue: "files"}})(cfg)
	WithTask[testPayload](&queuedTestTask{testTask{name: "welcome", queue: "users"}})(cfg)
	WithQueue("files", 2)(cfg)

	queues := queueConfig(cfg)
	assert.Equal(t, 4, queues[river.QueueDefault].MaxWorkers)
	assert.Equal(t, 2, queues["files"].MaxWorkers)
	assert.Equal(t, 4, queues["users"].MaxWorkers)
}

type reportTask struct{ schedule string }

func (reportTask) Name() string                 { return "stats:report" }
func (r reportTask) Schedule() string           { return r.schedule }
func (reportTask) Handle(context.Context) error { return nil }

func TestRegisterSchedules(t *testing.T) {
	t.Parallel()

	t.Run("valid schedule registers task", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig()
		WithScheduledTask(reportTask{schedule: "@hourly"})(cfg)

		periodic, err := registerSchedules(cfg)
		require.NoError(t, err)
		assert.Len(t, periodic, 1)

		_, ok := cfg.registry.get("stats:report")
		assert.True(t, ok)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig()
		WithScheduledTask(reportTask{schedule: "61 * * * *"})(cfg)

		_, err := registerSchedules(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stats:report")
	})
}

func newTestJob(name string, payload []byte) *river.Job[taskArgs] {
	return &river.Job[taskArgs]{
		JobRow: &rivertype.JobRow{ID: 7, Attempt: 1},
		Args:   taskArgs{TaskName: name, Payload: payload},
	}
}

func TestTaskWorker_Work(t *testing.T) {
	t.Parallel()

	registry := newTaskRegistry()
	ok := &testTask{name: "ok"}
	transient := &testTask{name: "transient", err: errors.New("disk full")}
	permanent := &testTask{name: "permanent", err: Permanent(errors.New("missing fileId"))}
	for _, task := range []*testTask{ok, transient, permanent} {
		registry.register(task.name, registeredTask{executor: &taskWrapper[testPayload]{task: task}})
	}
	w := &taskWorker{registry: registry, logger: logger.NewNope()}
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		require.NoError(t, w.Work(ctx, newTestJob("ok", []byte(`{"fileId":"f1"}`))))
		assert.Equal(t, "f1", ok.payload.FileID)
	})

	t.Run("transient error is returned for retry", func(t *testing.T) {
		err := w.Work(ctx, newTestJob("transient", nil))
		require.Error(t, err)
		assert.Equal(t, "disk full", err.Error())
	})

	t.Run("permanent error cancels", func(t *testing.T) {
		err := w.Work(ctx, newTestJob("permanent", nil))
		require.ErrorIs(t, err, ErrPermanent)
		assert.NotEqual(t, permanent.err, err, "error must be wrapped as a cancellation")
	})

	t.Run("unknown task cancels", func(t *testing.T) {
		err := w.Work(ctx, newTestJob("nope", nil))
		require.ErrorIs(t, err, ErrUnknownTask)
	})
}

func TestParseCronSchedule(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"* * * * *", "0 * * * *", "*/15 * * * *", "@hourly"} {
		_, err := parseCronSchedule(expr)
		assert.NoError(t, err, expr)
	}
	for _, expr := range []string{"", "* * *", "* * * * * *", "60 * * * *", "garbage"} {
		_, err := parseCronSchedule(expr)
		assert.Error(t, err, expr)
	}

	schedule, err := parseCronSchedule("0 * * * *")
	require.NoError(t, err)
	base := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), schedule.Next(base))
}

func TestHealthcheck_NotStarted(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Healthcheck(nil)(context.Background()), ErrHealthcheckFailed)

	m := &Manager{}
	err := Healthcheck(m)(context.Background())
	require.ErrorIs(t, err, ErrHealthcheckFailed)
	require.ErrorIs(t, err, ErrNotStarted)
}
