package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcinfo/zbxlink/app/resumer"
	"github.com/parcinfo/zbxlink/app/schedule"
	"github.com/parcinfo/zbxlink/app/service/mocks"
	"github.com/parcinfo/zbxlink/app/store"
	syncer "github.com/parcinfo/zbxlink/app/sync"
)

func passthroughRepeater() *mocks.RepeaterMock {
	return &mocks.RepeaterMock{
		DoFunc: func(ctx context.Context, fun func() error, errs ...error) error { return fun() },
	}
}

func noopResumer() *mocks.ResumerMock {
	return &mocks.ResumerMock{
		OnStartFunc:  func(kind string) (string, error) { return "resume.file", nil },
		OnFinishFunc: func(fname string) error { return nil },
		ListFunc:     func() []resumer.Task { return nil },
		StringFunc:   func() string { return "test resumer" },
	}
}

func TestScheduler_RunTask(t *testing.T) {
	runner := &mocks.TaskRunnerMock{
		BulkSyncFunc: func(ctx context.Context) (syncer.BulkResult, error) {
			return syncer.BulkResult{SuccessCount: 2, Processed: []syncer.Result{
				{Name: "srv1", Action: "created"}, {Name: "srv2", Action: "updated"}}}, nil
		},
	}
	recorder := &mocks.RecorderMock{
		RecordRunFunc: func(ctx context.Context, run store.Run) error { return nil },
	}
	out := bytes.NewBuffer(nil)

	svc := Scheduler{
		TaskRunner:        runner,
		Resumer:           noopResumer(),
		Recorder:          recorder,
		DeDup:             NewDeDup(true),
		Stdout:            out,
		NotifyMaxLogLines: 100,
		NotifyTimeout:     time.Second,
	}

	err := svc.runTask(context.Background(), schedule.Task{Kind: schedule.KindBulkSync, Spec: "@every 5m"},
		passthroughRepeater())
	require.NoError(t, err)
	assert.Equal(t, 1, len(runner.BulkSyncCalls()))
	assert.Contains(t, out.String(), "srv1: created")
	assert.Contains(t, out.String(), "srv2: updated")

	require.Equal(t, 1, len(recorder.RecordRunCalls()))
	run := recorder.RecordRunCalls()[0].Run
	assert.Equal(t, "bulk-sync", run.Task)
	assert.Equal(t, "ok", run.Status)
	assert.Equal(t, 2, run.SuccessCount)
}

func TestScheduler_RunTaskFailed(t *testing.T) {
	runner := &mocks.TaskRunnerMock{
		CleanupFunc: func(ctx context.Context) (syncer.BulkResult, error) {
			return syncer.BulkResult{ErrorCount: 1, Processed: []syncer.Result{{Name: "srv1", Err: "boom"}}},
				errors.New("cleanup finished with 1 errors")
		},
	}
	recorder := &mocks.RecorderMock{
		RecordRunFunc: func(ctx context.Context, run store.Run) error { return nil },
	}
	notif := &mocks.NotifierMock{
		IsOnErrorFunc:     func() bool { return true },
		MakeErrorHTMLFunc: func(task, errorLog string) (string, error) { return "html: " + errorLog, nil },
		SendFunc:          func(ctx context.Context, subj, text string) error { return nil },
	}

	svc := Scheduler{
		TaskRunner:        runner,
		Resumer:           noopResumer(),
		Recorder:          recorder,
		Notifier:          notif,
		DeDup:             NewDeDup(true),
		HostName:          "host1",
		Stdout:            bytes.NewBuffer(nil),
		NotifyMaxLogLines: 100,
		NotifyTimeout:     time.Second,
	}

	err := svc.runTask(context.Background(), schedule.Task{Kind: schedule.KindCleanup, Spec: "@daily"},
		passthroughRepeater())
	require.Error(t, err)

	require.Equal(t, 1, len(recorder.RecordRunCalls()))
	assert.Equal(t, "failed", recorder.RecordRunCalls()[0].Run.Status)
	assert.Equal(t, 1, recorder.RecordRunCalls()[0].Run.ErrorCount)

	require.Equal(t, 1, len(notif.SendCalls()))
	assert.Equal(t, `failed "cleanup" on host1`, notif.SendCalls()[0].Subj)
	assert.Contains(t, notif.MakeErrorHTMLCalls()[0].ErrorLog, "srv1: boom", "captured output in notification")
}

func TestScheduler_RunTaskDeduplicated(t *testing.T) {
	runner := &mocks.TaskRunnerMock{
		BulkSyncFunc: func(ctx context.Context) (syncer.BulkResult, error) { return syncer.BulkResult{}, nil },
	}
	dedup := &mocks.DedupperMock{
		AddFunc:    func(key string) bool { return false },
		RemoveFunc: func(key string) {},
	}

	svc := Scheduler{
		TaskRunner: runner,
		Resumer:    noopResumer(),
		DeDup:      dedup,
		Stdout:     bytes.NewBuffer(nil),
	}

	err := svc.runTask(context.Background(), schedule.Task{Kind: schedule.KindBulkSync, Spec: "@every 5m"},
		passthroughRepeater())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicated task")
	assert.Equal(t, 0, len(runner.BulkSyncCalls()))
	assert.Equal(t, 1, len(dedup.AddCalls()))
	assert.Equal(t, "bulk-sync#@every 5m", dedup.AddCalls()[0].Key)
}

func TestScheduler_RunTaskCompletionNotification(t *testing.T) {
	runner := &mocks.TaskRunnerMock{
		CollectMetricsFunc: func(ctx context.Context, historyHours int) (syncer.BulkResult, error) {
			assert.Equal(t, 6, historyHours)
			return syncer.BulkResult{SuccessCount: 1}, nil
		},
	}
	notif := &mocks.NotifierMock{
		IsOnErrorFunc:          func() bool { return false },
		IsOnCompletionFunc:     func() bool { return true },
		MakeCompletionHTMLFunc: func(task string) (string, error) { return "done html", nil },
		SendFunc:               func(ctx context.Context, subj, text string) error { return nil },
	}

	svc := Scheduler{
		TaskRunner:    runner,
		Resumer:       noopResumer(),
		Notifier:      notif,
		DeDup:         NewDeDup(true),
		HostName:      "host1",
		Stdout:        bytes.NewBuffer(nil),
		NotifyTimeout: time.Second,
	}

	task := schedule.Task{Name: "metrics", Kind: schedule.KindCollectMetrics, Spec: "@every 1m", HistoryHours: 6}
	err := svc.runTask(context.Background(), task, passthroughRepeater())
	require.NoError(t, err)
	require.Equal(t, 1, len(notif.SendCalls()))
	assert.Equal(t, `completed "metrics" on host1`, notif.SendCalls()[0].Subj)
	assert.Equal(t, "done html", notif.SendCalls()[0].Text)
}

func TestScheduler_InvokeUnsupportedKind(t *testing.T) {
	svc := Scheduler{TaskRunner: &mocks.TaskRunnerMock{}}
	_, err := svc.invoke(context.Background(), schedule.Task{Kind: "restart-world"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported task kind")
}

func TestScheduler_LoadFromFileParser(t *testing.T) {
	parser := &mocks.TaskParserMock{
		ListFunc: func() ([]schedule.Task, error) {
			return []schedule.Task{
				{Kind: schedule.KindBulkSync, Spec: "@every 10m"},
				{Kind: schedule.KindCleanup, Spec: "@daily"},
			}, nil
		},
		StringFunc: func() string { return "tasks.yml" },
	}

	var removed []cron.EntryID
	cr := &mocks.CronMock{
		EntriesFunc: func() []cron.Entry { return []cron.Entry{{ID: 1}, {ID: 2}} },
		RemoveFunc:  func(id cron.EntryID) { removed = append(removed, id) },
		ScheduleFunc: func(sched cron.Schedule, cmd cron.Job) cron.EntryID {
			return cron.EntryID(len(removed))
		},
	}

	svc := Scheduler{Cron: cr, TaskParser: parser}
	err := svc.loadFromFileParser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []cron.EntryID{1, 2}, removed, "existing entries removed before reload")
	assert.Equal(t, 2, len(cr.ScheduleCalls()))
}

func TestScheduler_LoadFromFileParserBadSpec(t *testing.T) {
	parser := &mocks.TaskParserMock{
		ListFunc: func() ([]schedule.Task, error) {
			return []schedule.Task{{Kind: schedule.KindBulkSync, Spec: "not a cron"}}, nil
		},
		StringFunc: func() string { return "tasks.yml" },
	}
	cr := &mocks.CronMock{
		EntriesFunc: func() []cron.Entry { return nil },
		RemoveFunc:  func(id cron.EntryID) {},
		ScheduleFunc: func(sched cron.Schedule, cmd cron.Job) cron.EntryID {
			return 0
		},
	}

	svc := Scheduler{Cron: cr, TaskParser: parser}
	err := svc.loadFromFileParser(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't parse")
}

func TestScheduler_Do(t *testing.T) {
	parser := &mocks.TaskParserMock{
		ListFunc: func() ([]schedule.Task, error) {
			return []schedule.Task{{Kind: schedule.KindBulkSync, Spec: "@every 10m"}}, nil
		},
		StringFunc: func() string { return "tasks.yml" },
	}

	stopCtx, stopCancel := context.WithCancel(context.Background())
	cr := &mocks.CronMock{
		EntriesFunc:  func() []cron.Entry { return nil },
		RemoveFunc:   func(id cron.EntryID) {},
		ScheduleFunc: func(sched cron.Schedule, cmd cron.Job) cron.EntryID { return 1 },
		StartFunc:    func() {},
		StopFunc: func() context.Context {
			stopCancel()
			return stopCtx
		},
	}

	svc := Scheduler{
		Cron:       cr,
		TaskParser: parser,
		TaskRunner: &mocks.TaskRunnerMock{},
		Resumer:    noopResumer(),
		DeDup:      NewDeDup(true),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	svc.Do(ctx)

	assert.Equal(t, 1, len(cr.StartCalls()))
	assert.Equal(t, 1, len(cr.StopCalls()))
	assert.Equal(t, 1, len(cr.ScheduleCalls()))
}

func TestScheduler_DoFailedLoadAborts(t *testing.T) {
	parser := &mocks.TaskParserMock{
		ListFunc:   func() ([]schedule.Task, error) { return nil, errors.New("parse failed") },
		StringFunc: func() string { return "tasks.yml" },
	}
	cr := &mocks.CronMock{
		EntriesFunc: func() []cron.Entry { return nil },
		RemoveFunc:  func(id cron.EntryID) {},
		StartFunc:   func() {},
	}

	svc := Scheduler{
		Cron:       cr,
		TaskParser: parser,
		Resumer:    noopResumer(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	svc.Do(ctx) // returns without starting cron

	assert.Equal(t, 0, len(cr.StartCalls()))
}

func TestScheduler_ResumeInterrupted(t *testing.T) {
	var bulkCalls int32
	runner := &mocks.TaskRunnerMock{
		BulkSyncFunc: func(ctx context.Context) (syncer.BulkResult, error) {
			atomic.AddInt32(&bulkCalls, 1)
			return syncer.BulkResult{SuccessCount: 1}, nil
		},
	}
	var finished []string
	rsmr := &mocks.ResumerMock{
		ListFunc: func() []resumer.Task {
			return []resumer.Task{{Kind: "bulk-sync", Fname: "/tmp/1.zbxlink"}}
		},
		OnFinishFunc: func(fname string) error { finished = append(finished, fname); return nil },
		StringFunc:   func() string { return "test resumer" },
	}

	svc := Scheduler{
		TaskRunner:    runner,
		Resumer:       rsmr,
		Repeater:      passthroughRepeater(),
		Stdout:        bytes.NewBuffer(nil),
		NotifyTimeout: time.Second,
	}

	svc.resumeInterrupted(1)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&bulkCalls) == 1 },
		time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return len(finished) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "/tmp/1.zbxlink", finished[0])
}

func TestScheduler_ManualTrigger(t *testing.T) {
	var calls int32
	runner := &mocks.TaskRunnerMock{
		CollectMetricsFunc: func(ctx context.Context, historyHours int) (syncer.BulkResult, error) {
			atomic.AddInt32(&calls, 1)
			assert.Equal(t, 12, historyHours)
			return syncer.BulkResult{SuccessCount: 1}, nil
		},
	}

	trigger := make(chan ManualTaskRequest, 1)
	svc := Scheduler{
		TaskRunner:    runner,
		Resumer:       noopResumer(),
		Repeater:      passthroughRepeater(),
		DeDup:         NewDeDup(true),
		Stdout:        bytes.NewBuffer(nil),
		ManualTrigger: trigger,
		NotifyTimeout: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.listenForManualTriggers(ctx)

	trigger <- ManualTaskRequest{Kind: schedule.KindCollectMetrics, HistoryHours: 12}
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 },
		time.Second, 10*time.Millisecond)
}

func TestScheduler_ManualTriggerUnsupported(t *testing.T) {
	runner := &mocks.TaskRunnerMock{}
	trigger := make(chan ManualTaskRequest, 1)
	svc := Scheduler{
		TaskRunner:    runner,
		Resumer:       noopResumer(),
		Repeater:      passthroughRepeater(),
		DeDup:         NewDeDup(true),
		Stdout:        bytes.NewBuffer(nil),
		ManualTrigger: trigger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go svc.listenForManualTriggers(ctx)

	trigger <- ManualTaskRequest{Kind: "bad-kind"}
	time.Sleep(50 * time.Millisecond) // give listener a chance to reject it
	cancel()
	assert.Equal(t, 0, len(runner.BulkSyncCalls()))
	assert.Equal(t, 0, len(runner.CleanupCalls()))
	assert.Equal(t, 0, len(runner.CollectMetricsCalls()))
}

func TestScheduler_GetTaskRepeater(t *testing.T) {
	svc := Scheduler{Repeater: passthroughRepeater()}
	svc.RepeaterDefaults.Attempts = 3
	svc.RepeaterDefaults.Duration = time.Second
	svc.RepeaterDefaults.Factor = 2

	t.Run("no per-task config returns default", func(t *testing.T) {
		assert.Equal(t, svc.Repeater, svc.getTaskRepeater(nil))
	})

	t.Run("per-task overrides applied", func(t *testing.T) {
		attempts := 5
		r := svc.getTaskRepeater(&schedule.RepeaterConfig{Attempts: &attempts})
		require.NotNil(t, r)
		assert.NotEqual(t, svc.Repeater, r)
	})
}

func TestScheduler_WaitForConditions(t *testing.T) {
	t.Run("no checker executes", func(t *testing.T) {
		svc := Scheduler{}
		assert.True(t, svc.waitForConditions(context.Background(), schedule.ConditionsConfig{}, "task"))
	})

	t.Run("conditions met executes", func(t *testing.T) {
		svc := Scheduler{ConditionChecker: &mocks.ConditionCheckerMock{
			CheckFunc: func(conditions schedule.ConditionsConfig) (bool, string) { return true, "" },
		}}
		assert.True(t, svc.waitForConditions(context.Background(), schedule.ConditionsConfig{}, "task"))
	})

	t.Run("conditions not met, no postpone skips", func(t *testing.T) {
		svc := Scheduler{ConditionChecker: &mocks.ConditionCheckerMock{
			CheckFunc: func(conditions schedule.ConditionsConfig) (bool, string) { return false, "cpu too high" },
		}}
		assert.False(t, svc.waitForConditions(context.Background(), schedule.ConditionsConfig{}, "task"))
	})

	t.Run("postpone until conditions met", func(t *testing.T) {
		var checks int32
		svc := Scheduler{ConditionChecker: &mocks.ConditionCheckerMock{
			CheckFunc: func(conditions schedule.ConditionsConfig) (bool, string) {
				return atomic.AddInt32(&checks, 1) > 2, "cpu too high"
			},
		}}
		maxPostpone := 5 * time.Second
		checkInterval := 20 * time.Millisecond
		cond := schedule.ConditionsConfig{MaxPostpone: &maxPostpone, CheckInterval: &checkInterval}
		assert.True(t, svc.waitForConditions(context.Background(), cond, "task"))
		assert.GreaterOrEqual(t, atomic.LoadInt32(&checks), int32(3))
	})

	t.Run("postpone deadline executes anyway", func(t *testing.T) {
		svc := Scheduler{ConditionChecker: &mocks.ConditionCheckerMock{
			CheckFunc: func(conditions schedule.ConditionsConfig) (bool, string) { return false, "cpu too high" },
		}}
		maxPostpone := 50 * time.Millisecond
		checkInterval := 10 * time.Millisecond
		cond := schedule.ConditionsConfig{MaxPostpone: &maxPostpone, CheckInterval: &checkInterval}
		assert.True(t, svc.waitForConditions(context.Background(), cond, "task"))
	})

	t.Run("canceled context skips", func(t *testing.T) {
		svc := Scheduler{ConditionChecker: &mocks.ConditionCheckerMock{
			CheckFunc: func(conditions schedule.ConditionsConfig) (bool, string) { return false, "cpu too high" },
		}}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		maxPostpone := time.Minute
		cond := schedule.ConditionsConfig{MaxPostpone: &maxPostpone}
		assert.False(t, svc.waitForConditions(ctx, cond, "task"))
	})
}

func TestScheduler_ExecuteTaskPrefixed(t *testing.T) {
	runner := &mocks.TaskRunnerMock{
		BulkSyncFunc: func(ctx context.Context) (syncer.BulkResult, error) {
			return syncer.BulkResult{SuccessCount: 1, Processed: []syncer.Result{{Name: "srv1", Action: "created"}}}, nil
		},
	}
	out := bytes.NewBuffer(nil)
	svc := Scheduler{
		TaskRunner:        runner,
		EnableLogPrefix:   true,
		NotifyMaxLogLines: 10,
	}

	_, output, err := svc.executeTask(context.Background(),
		schedule.Task{Kind: schedule.KindBulkSync, Spec: "@every 1m"}, out, passthroughRepeater())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "{bulk-sync} "), "stdout lines prefixed with task name")
	assert.Equal(t, "srv1: created", output, "capture keeps unprefixed lines")
}
